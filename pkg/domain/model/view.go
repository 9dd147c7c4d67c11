package model

import (
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

// DefaultSectionsPerPage is the number of date sections shown per dashboard page
const DefaultSectionsPerPage = 5

// AlertView is the state of the alert dashboard for one selected period.
// It is owned by its caller and is not safe for concurrent use.
type AlertView struct {
	FilterMonth    types.MonthFilter
	PeriodSelected bool
	CurrentPage    int
	Items          []AlertRecord
	Years          []int
	Loading        bool
	NoMoreData     bool
	Error          string
}

// NewAlertView returns an empty view with no period selected
func NewAlertView() *AlertView {
	return &AlertView{CurrentPage: 1}
}

// SelectMonth switches the period and clears everything loaded for the
// previous one
func (v *AlertView) SelectMonth(m types.MonthFilter) error {
	if err := m.Validate(); err != nil {
		return err
	}
	v.FilterMonth = m
	v.PeriodSelected = true
	v.CurrentPage = 1
	v.Items = nil
	v.Years = nil
	v.Error = ""
	v.NoMoreData = false
	return nil
}

// Begin marks a request in flight
func (v *AlertView) Begin() {
	v.Loading = true
	v.Error = ""
}

// Fulfill stores a successful result. An empty result marks the view as
// exhausted.
func (v *AlertView) Fulfill(result *AlertResult) {
	v.Loading = false
	v.Error = ""
	if result == nil {
		v.Items = []AlertRecord{}
		v.Years = nil
		v.NoMoreData = true
		return
	}
	v.Items = result.Items
	v.Years = result.Years
	if result.TotalCount == 0 {
		v.NoMoreData = true
	}
}

// Reject stores a failure message. A failed request also marks the view as
// exhausted.
func (v *AlertView) Reject(msg string) {
	v.Loading = false
	v.Error = msg
	v.NoMoreData = true
}

// Sections groups the loaded items for display
func (v *AlertView) Sections() []DateSection {
	return GroupCardsByDate(GroupByDateAndDistrict(v.Items))
}

// IsEmpty returns true when a loaded period has no advisories
func (v *AlertView) IsEmpty() bool {
	return v.PeriodSelected && !v.Loading && v.Error == "" && len(v.Items) == 0
}

// SetPage moves to page p, clamped to the available range
func (v *AlertView) SetPage(p, perPage int) {
	total := totalPages(len(v.Sections()), perPage)
	switch {
	case p < 1:
		p = 1
	case total > 0 && p > total:
		p = total
	}
	v.CurrentPage = p
}

// AlertPage is one rendered page of the dashboard. NoMoreData tells the
// caller that the period is exhausted and must not be fetched again until
// another period is selected.
type AlertPage struct {
	FilterMonth types.MonthFilter `json:"filterMonth" yaml:"filterMonth"`
	Years       []int             `json:"years" yaml:"years"`
	TotalCount  int               `json:"totalCount" yaml:"totalCount"`
	NoMoreData  bool              `json:"noMoreData" yaml:"noMoreData"`
	Empty       bool              `json:"empty" yaml:"empty"`
	SectionPage `yaml:",inline"`
}

// Snapshot renders the current page of the view
func (v *AlertView) Snapshot(perPage int) *AlertPage {
	years := v.Years
	if years == nil {
		years = []int{}
	}
	return &AlertPage{
		FilterMonth: v.FilterMonth,
		Years:       years,
		TotalCount:  len(v.Items),
		NoMoreData:  v.NoMoreData,
		Empty:       v.IsEmpty(),
		SectionPage: v.Page(perPage),
	}
}

// SectionPage is one page of date sections
type SectionPage struct {
	Page       int           `json:"page" yaml:"page"`
	TotalPages int           `json:"totalPages" yaml:"totalPages"`
	Sections   []DateSection `json:"sections" yaml:"sections"`
}

// Page returns the date sections of the current page. A non-positive perPage
// falls back to DefaultSectionsPerPage.
func (v *AlertView) Page(perPage int) SectionPage {
	return PaginateSections(v.Sections(), v.CurrentPage, perPage)
}

// PaginateSections slices sections into page p of perPage sections each
func PaginateSections(sections []DateSection, p, perPage int) SectionPage {
	if perPage <= 0 {
		perPage = DefaultSectionsPerPage
	}
	if p < 1 {
		p = 1
	}

	result := SectionPage{
		Page:       p,
		TotalPages: totalPages(len(sections), perPage),
		Sections:   []DateSection{},
	}

	start := (p - 1) * perPage
	if start >= len(sections) {
		return result
	}
	end := min(start+perPage, len(sections))
	result.Sections = sections[start:end]
	return result
}

func totalPages(n, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultSectionsPerPage
	}
	return (n + perPage - 1) / perPage
}
