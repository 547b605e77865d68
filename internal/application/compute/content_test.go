package compute

import (
	"testing"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
)

func TestContentRanksByEngagement(t *testing.T) {
	now := at(30, 12)
	records := []content.Record{
		{ID: "c1", Title: "First", Views: 10, Likes: 0, CreatedAt: at(1, 9)},
		{ID: "c2", Title: "Second", Views: 4, Likes: 5, CreatedAt: at(2, 9)}, // 4 + 2*5 = 14
		{ID: "c3", Title: "Third", Views: 12, Likes: 0, CreatedAt: at(3, 9)},
	}

	stats := Content(snapshotOf(), records, analytics.Params{}, now)
	if len(stats) != 3 {
		t.Fatalf("len(stats) = %d, want 3", len(stats))
	}

	wantOrder := []string{"c2", "c3", "c1"}
	for i, id := range wantOrder {
		if stats[i].ID != id {
			t.Errorf("stats[%d].ID = %q, want %q", i, stats[i].ID, id)
		}
	}
}

func TestContentEventFallbackForZeroCounters(t *testing.T) {
	now := at(30, 12)
	snapshot := snapshotOf(
		events.Event{EventType: events.TypeContentView, Timestamp: at(5, 9), Data: events.Data{SessionID: "s1", ContentID: "c1"}},
		events.Event{EventType: events.TypeContentView, Timestamp: at(5, 10), Data: events.Data{SessionID: "s2", ContentID: "c1"}},
		events.Event{EventType: events.TypeContentView, Timestamp: at(5, 11), Data: events.Data{SessionID: "s3", ContentID: "c2"}},
	)
	records := []content.Record{
		{ID: "c1", Views: 0, CreatedAt: at(1, 9)},  // falls back to 2 event views
		{ID: "c2", Views: 50, CreatedAt: at(2, 9)}, // catalog counter wins
	}

	stats := Content(snapshot, records, analytics.Params{}, now)

	byID := map[string]analytics.ContentStats{}
	for _, s := range stats {
		byID[s.ID] = s
	}
	if byID["c1"].Views != 2 {
		t.Errorf("c1 views = %d, want event-derived 2", byID["c1"].Views)
	}
	if byID["c2"].Views != 50 {
		t.Errorf("c2 views = %d, want catalog 50", byID["c2"].Views)
	}
}

func TestContentPeriodFilter(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	records := []content.Record{
		{ID: "recent", Views: 1, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "old", Views: 1, CreatedAt: now.AddDate(0, 0, -100)},
	}

	tests := []struct {
		period string
		want   []string
	}{
		{PeriodDay, nil},
		{PeriodWeek, []string{"recent"}},
		{PeriodMonth, []string{"recent"}},
		{PeriodYear, []string{"recent", "old"}},
		{PeriodAll, []string{"recent", "old"}},
		{"bogus", []string{"recent", "old"}}, // unrecognized means no restriction
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			stats := Content(snapshotOf(), records, analytics.Params{Period: tt.period}, now)
			if len(stats) != len(tt.want) {
				t.Fatalf("period %q returned %d items, want %d", tt.period, len(stats), len(tt.want))
			}
			got := map[string]bool{}
			for _, s := range stats {
				got[s.ID] = true
			}
			for _, id := range tt.want {
				if !got[id] {
					t.Errorf("period %q missing item %q", tt.period, id)
				}
			}
		})
	}
}

func TestContentPeriodMonotonicity(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	records := []content.Record{
		{ID: "a", CreatedAt: now.Add(-12 * time.Hour)},
		{ID: "b", CreatedAt: now.AddDate(0, 0, -5)},
		{ID: "c", CreatedAt: now.AddDate(0, 0, -20)},
		{ID: "d", CreatedAt: now.AddDate(0, 0, -200)},
	}

	periods := []string{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll}
	prev := -1
	for _, period := range periods {
		n := len(Content(snapshotOf(), records, analytics.Params{Period: period}, now))
		if n < prev {
			t.Errorf("period %q returned %d items, fewer than the narrower period's %d", period, n, prev)
		}
		prev = n
	}
}
