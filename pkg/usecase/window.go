package usecase

import (
	"cmp"
	"slices"
	"time"

	"github.com/secmon-lab/misemon/pkg/domain/model"
)

// FilterRecent keeps the advisories whose issue date falls within
// [today - months, today] at day precision. Future dates are excluded.
func FilterRecent(items []model.AlertRecord, months int, today time.Time) []model.AlertRecord {
	loc := today.Location()
	y, m, d := today.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc)
	start := SubtractMonths(end, months)

	filtered := make([]model.AlertRecord, 0, len(items))
	for _, item := range items {
		day, err := item.IssueDay(loc)
		if err != nil {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// SortRecent orders advisories by issue instant descending, then by sequence
// number descending. The input is not modified.
func SortRecent(items []model.AlertRecord) []model.AlertRecord {
	type keyed struct {
		at   time.Time
		item model.AlertRecord
	}

	list := make([]keyed, len(items))
	for i, item := range items {
		// Unparseable instants keep the zero time and sort last
		at, _ := item.IssuedAt(time.UTC)
		list[i] = keyed{at: at, item: item}
	}

	slices.SortStableFunc(list, func(a, b keyed) int {
		if c := b.at.Compare(a.at); c != 0 {
			return c
		}
		return cmp.Compare(b.item.Sn, a.item.Sn)
	})

	sorted := make([]model.AlertRecord, len(list))
	for i, k := range list {
		sorted[i] = k.item
	}
	return sorted
}
