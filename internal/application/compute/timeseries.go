package compute

import (
	"sort"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
)

const dateLayout = "2006-01-02"

// TimeSeries derives the daily time series: per calendar date (UTC),
// page views, content views, and distinct-session visitors. Buckets
// sort ascending by date, then the period filter applies.
func TimeSeries(snapshot *analytics.RawSnapshot, params analytics.Params, now time.Time) []analytics.DailyStats {
	type bucket struct {
		stats    analytics.DailyStats
		visitors map[string]struct{}
	}

	buckets := make(map[string]*bucket)
	for _, ev := range snapshot.Events {
		if ev.Timestamp.IsZero() {
			continue
		}
		date := ev.Timestamp.UTC().Format(dateLayout)

		b, exists := buckets[date]
		if !exists {
			b = &bucket{
				stats:    analytics.DailyStats{Date: date},
				visitors: make(map[string]struct{}),
			}
			buckets[date] = b
		}

		switch ev.EventType {
		case events.TypePageView:
			b.stats.PageViews++
		case events.TypeContentView:
			b.stats.ContentViews++
		}
		if ev.Data.SessionID != "" {
			b.visitors[ev.Data.SessionID] = struct{}{}
		}
	}

	series := make([]analytics.DailyStats, 0, len(buckets))
	for _, b := range buckets {
		b.stats.Visitors = len(b.visitors)
		series = append(series, b.stats)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return FilterByPeriod(series, params.Period, now, func(d analytics.DailyStats) time.Time {
		t, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return time.Time{}
		}
		return t
	})
}

// Hourly derives the fixed 24-bucket hour-of-day profile over all
// events, ignoring any period filter. Every hour 0..23 is present even
// when empty.
func Hourly(snapshot *analytics.RawSnapshot) []analytics.HourlyStats {
	visitors := make([]map[string]struct{}, 24)
	stats := make([]analytics.HourlyStats, 24)
	for hour := range stats {
		stats[hour].Hour = hour
		visitors[hour] = make(map[string]struct{})
	}

	for _, ev := range snapshot.Events {
		if ev.Timestamp.IsZero() {
			continue
		}
		hour := ev.Timestamp.UTC().Hour()

		switch ev.EventType {
		case events.TypePageView:
			stats[hour].PageViews++
		case events.TypeContentView:
			stats[hour].ContentViews++
		}
		if ev.Data.SessionID != "" {
			visitors[hour][ev.Data.SessionID] = struct{}{}
		}
	}

	for hour := range stats {
		stats[hour].Visitors = len(visitors[hour])
	}
	return stats
}
