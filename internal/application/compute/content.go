package compute

import (
	"sort"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
)

// Content derives the ranked content view. Catalog view counters win;
// the event-derived count only fills in when a record's own counter is
// zero. Ranking is views + 2*likes descending, then the period filter
// applies on createdAt.
func Content(snapshot *analytics.RawSnapshot, records []content.Record, params analytics.Params, now time.Time) []analytics.ContentStats {
	eventViews := make(map[string]int)
	for _, ev := range snapshot.Events {
		if ev.EventType == events.TypeContentView && ev.Data.ContentID != "" {
			eventViews[ev.Data.ContentID]++
		}
	}

	stats := make([]analytics.ContentStats, 0, len(records))
	for _, rec := range records {
		views := rec.Views
		if views == 0 {
			views = eventViews[rec.ID]
		}
		stats = append(stats, analytics.ContentStats{
			ID:        rec.ID,
			Title:     rec.Title,
			Author:    rec.Author,
			Category:  rec.Category,
			Views:     views,
			Likes:     rec.Likes,
			Tags:      rec.Tags,
			CreatedAt: rec.CreatedAt,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return EngagementScore(stats[i].Views, stats[i].Likes) > EngagementScore(stats[j].Views, stats[j].Likes)
	})

	return FilterByPeriod(stats, params.Period, now, func(s analytics.ContentStats) time.Time {
		return s.CreatedAt
	})
}
