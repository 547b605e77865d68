package compute

import (
	"sort"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
)

// UncategorizedLabel is the bucket for catalog records without a category.
const UncategorizedLabel = "Uncategorized"

// Categories derives the per-category ranking from the content
// catalog, ordered by content count descending.
func Categories(records []content.Record) []analytics.CategoryStats {
	groups := make(map[string]*analytics.CategoryStats)
	order := make([]string, 0)

	for _, rec := range records {
		category := rec.Category
		if category == "" {
			category = UncategorizedLabel
		}

		g, exists := groups[category]
		if !exists {
			g = &analytics.CategoryStats{Category: category}
			groups[category] = g
			order = append(order, category)
		}
		g.ContentCount++
		g.TotalViews += rec.Views
		g.TotalLikes += rec.Likes
	}

	stats := make([]analytics.CategoryStats, 0, len(groups))
	for _, category := range order {
		g := groups[category]
		g.AvgViews = roundedAverage(g.TotalViews, g.ContentCount)
		g.AvgLikes = roundedAverage(g.TotalLikes, g.ContentCount)
		stats = append(stats, *g)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ContentCount > stats[j].ContentCount
	})
	return stats
}
