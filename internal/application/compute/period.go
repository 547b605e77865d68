// Package compute holds the pure derived-view computations. Every
// function here is a deterministic function of a raw event snapshot
// (and, where noted, the content catalog) so results are reproducible
// and safely parallelizable.
package compute

import "time"

// Recognized period filter values.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

var periodDays = map[string]int{
	PeriodDay:   1,
	PeriodWeek:  7,
	PeriodMonth: 30,
	PeriodYear:  365,
}

// PeriodCutoff returns the inclusive lower bound for a period relative
// to now. ok is false for "all", empty, or unrecognized periods, which
// all mean "no restriction".
func PeriodCutoff(period string, now time.Time) (time.Time, bool) {
	days, found := periodDays[period]
	if !found {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// FilterByPeriod keeps the items whose date is on or after the period
// cutoff. Items pass in their original order, so day ⊆ week ⊆ month ⊆
// year ⊆ all holds for any fixed dataset and reference now.
func FilterByPeriod[T any](items []T, period string, now time.Time, dateOf func(T) time.Time) []T {
	cutoff, bounded := PeriodCutoff(period, now)
	if !bounded {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if !dateOf(item).Before(cutoff) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
