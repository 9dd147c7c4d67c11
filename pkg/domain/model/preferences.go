package model

import (
	"encoding/json"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

// PreferencesKey is the storage key of the persisted preferences
const PreferencesKey = "alert_preferences"

// Preference keys accepted by Preferences.Set
const (
	PrefFilterMonths = "filterMonths"
	PrefSortOrder    = "sortOrder"
	PrefItemsPerPage = "itemsPerPage"
)

// Preferences holds the dashboard settings of the single user
type Preferences struct {
	FilterMonths types.MonthFilter `json:"filterMonths" yaml:"filterMonths"`
	SortOrder    types.SortOrder   `json:"sortOrder" yaml:"sortOrder"`
	ItemsPerPage int               `json:"itemsPerPage" yaml:"itemsPerPage"`
}

// DefaultPreferences returns the settings used when nothing is stored
func DefaultPreferences() Preferences {
	return Preferences{
		FilterMonths: 1,
		SortOrder:    types.SortOrderDesc,
		ItemsPerPage: 10,
	}
}

// ParsePreferences merges stored JSON over the defaults. Fields missing from
// data or holding an invalid value keep their default value.
func ParsePreferences(data []byte) (Preferences, error) {
	prefs := DefaultPreferences()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), goerr.Wrap(err, "failed to decode preferences")
	}
	prefs.repair()
	return prefs, nil
}

// repair resets every invalid field to its default
func (p *Preferences) repair() {
	def := DefaultPreferences()
	if !p.FilterMonths.IsValid() {
		p.FilterMonths = def.FilterMonths
	}
	if !p.SortOrder.IsValid() {
		p.SortOrder = def.SortOrder
	}
	if p.ItemsPerPage <= 0 {
		p.ItemsPerPage = def.ItemsPerPage
	}
}

// Validate checks every field
func (p Preferences) Validate() error {
	if err := p.FilterMonths.Validate(); err != nil {
		return err
	}
	if !p.SortOrder.IsValid() {
		return goerr.New("invalid sort order", goerr.V("sortOrder", p.SortOrder))
	}
	if p.ItemsPerPage <= 0 {
		return goerr.New("items per page must be positive", goerr.V("itemsPerPage", p.ItemsPerPage))
	}
	return nil
}

// Set updates one field from its string form and validates the result
func (p *Preferences) Set(key, value string) error {
	next := *p
	switch key {
	case PrefFilterMonths:
		n, err := strconv.Atoi(value)
		if err != nil {
			return goerr.Wrap(err, "filterMonths must be an integer", goerr.V("value", value))
		}
		next.FilterMonths = types.MonthFilter(n)
	case PrefSortOrder:
		next.SortOrder = types.SortOrder(value)
	case PrefItemsPerPage:
		n, err := strconv.Atoi(value)
		if err != nil {
			return goerr.Wrap(err, "itemsPerPage must be an integer", goerr.V("value", value))
		}
		next.ItemsPerPage = n
	default:
		return goerr.New("unknown preference key", goerr.V("key", key))
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}
