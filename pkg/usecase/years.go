package usecase

import (
	"time"
)

// SubtractMonths moves t back by n calendar months. When the target month is
// shorter, the day is clamped to its last day, so Mar 31 minus one month is
// the end of February.
func SubtractMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// ResolveYears returns every calendar year touched by the window of
// monthsBack months ending at now, ascending
func ResolveYears(now time.Time, monthsBack int) []int {
	if monthsBack < 0 {
		monthsBack = 0
	}
	start := SubtractMonths(now, monthsBack).Year()
	current := now.Year()

	years := make([]int, 0, current-start+1)
	for y := start; y <= current; y++ {
		years = append(years, y)
	}
	return years
}
