package model

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/secmon-lab/misemon/pkg/domain/types"
)

// DistrictCard groups the advisories issued on one date for one district.
// Alerts keep the order of the sorted input, most recent issue first.
type DistrictCard struct {
	Date         string
	DistrictName string
	Alerts       []AlertRecord
}

// Representative returns the severity label of the most recent advisory
func (c *DistrictCard) Representative() types.IssueGbn {
	if len(c.Alerts) == 0 {
		return ""
	}
	return c.Alerts[0].IssueGbn
}

// Badge returns the display badge of the card
func (c *DistrictCard) Badge() types.Badge {
	return c.Representative().Badge()
}

type districtCardView struct {
	Date         string         `json:"date" yaml:"date"`
	DistrictName string         `json:"districtName" yaml:"districtName"`
	IssueGbn     types.IssueGbn `json:"issueGbn" yaml:"issueGbn"`
	Badge        types.Badge    `json:"badge" yaml:"badge"`
	Alerts       []AlertRecord  `json:"alerts" yaml:"alerts"`
}

func (c DistrictCard) view() districtCardView {
	alerts := c.Alerts
	if alerts == nil {
		alerts = []AlertRecord{}
	}
	return districtCardView{
		Date:         c.Date,
		DistrictName: c.DistrictName,
		IssueGbn:     c.Representative(),
		Badge:        c.Badge(),
		Alerts:       alerts,
	}
}

// MarshalJSON includes the derived badge
func (c DistrictCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.view())
}

// MarshalYAML includes the derived badge
func (c DistrictCard) MarshalYAML() (any, error) {
	return c.view(), nil
}

// DateSection groups the district cards of one date, ordered by district name
type DateSection struct {
	Date  string         `json:"date" yaml:"date"`
	Cards []DistrictCard `json:"cards" yaml:"cards"`
}

type cardKey struct {
	date     string
	district string
}

// GroupByDateAndDistrict partitions sorted advisories by (issue date, district).
// Items inside a card keep their input order. Cards are ordered by date
// descending, then by district name ascending.
func GroupByDateAndDistrict(items []AlertRecord) []DistrictCard {
	if len(items) == 0 {
		return []DistrictCard{}
	}

	index := make(map[cardKey]int)
	cards := make([]DistrictCard, 0)
	for _, item := range items {
		key := cardKey{date: item.IssueDate, district: item.DistrictName}
		i, ok := index[key]
		if !ok {
			i = len(cards)
			index[key] = i
			cards = append(cards, DistrictCard{
				Date:         item.IssueDate,
				DistrictName: item.DistrictName,
			})
		}
		cards[i].Alerts = append(cards[i].Alerts, item)
	}

	slices.SortStableFunc(cards, func(a, b DistrictCard) int {
		if c := compareDateDesc(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.DistrictName, b.DistrictName)
	})
	return cards
}

// GroupCardsByDate partitions district cards by date. Sections are ordered by
// date descending; cards inside a section keep their input order.
func GroupCardsByDate(cards []DistrictCard) []DateSection {
	if len(cards) == 0 {
		return []DateSection{}
	}

	index := make(map[string]int)
	sections := make([]DateSection, 0)
	for _, card := range cards {
		i, ok := index[card.Date]
		if !ok {
			i = len(sections)
			index[card.Date] = i
			sections = append(sections, DateSection{Date: card.Date})
		}
		sections[i].Cards = append(sections[i].Cards, card)
	}

	slices.SortStableFunc(sections, func(a, b DateSection) int {
		return compareDateDesc(a.Date, b.Date)
	})
	return sections
}

// compareDateDesc orders YYYY-MM-DD dates newest first. Unparseable dates
// sort after every valid date and compare among themselves as strings.
func compareDateDesc(a, b string) int {
	ta, errA := time.Parse(DateLayout, a)
	tb, errB := time.Parse(DateLayout, b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return tb.Compare(ta)
}
