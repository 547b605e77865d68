package compute

import (
	"math"
	"sort"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
)

// NormalizePurpose maps a raw stated purpose into the fixed reporting
// set {aws-internal, customer-demo, other, Skipped}. Anything outside
// the set coalesces into "other". Unknown does not normalize; callers
// drop it before counting.
func NormalizePurpose(purpose string) string {
	switch purpose {
	case events.PurposeAWSInternal, events.PurposeCustomerDemo, events.PurposeSkipped:
		return purpose
	}
	return events.PurposeOther
}

// AccessPurposes derives the access-purpose distribution from
// visitor_purpose events. Unknown purposes are dropped entirely;
// percentages are integer, rounded half up over the counted total.
// Buckets order by count descending, then purpose for determinism.
func AccessPurposes(snapshot *analytics.RawSnapshot) []analytics.PurposeStats {
	counts := make(map[string]int)
	total := 0
	for _, ev := range snapshot.Events {
		if ev.EventType != events.TypeVisitorPurpose {
			continue
		}
		if ev.Data.Purpose == "" || ev.Data.Purpose == events.PurposeUnknown {
			continue
		}
		counts[NormalizePurpose(ev.Data.Purpose)]++
		total++
	}

	stats := make([]analytics.PurposeStats, 0, len(counts))
	for purpose, count := range counts {
		percentage := 0
		if total > 0 {
			percentage = int(math.Floor(float64(count)*100/float64(total) + 0.5))
		}
		stats = append(stats, analytics.PurposeStats{
			Purpose:    purpose,
			Count:      count,
			Percentage: percentage,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Purpose < stats[j].Purpose
	})
	return stats
}
