package compute

import (
	"math"
	"sort"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
)

// roundedAverage divides total by count rounding half away from zero,
// returning 0 for an empty group.
func roundedAverage(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// Authors derives the per-author ranking from the content catalog
// alone. Each author's content list is ordered by views descending and
// the final list by total views descending.
func Authors(records []content.Record) []analytics.AuthorStats {
	type group struct {
		stats      analytics.AuthorStats
		categories map[string]struct{}
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, rec := range records {
		g, exists := groups[rec.Author]
		if !exists {
			g = &group{
				stats:      analytics.AuthorStats{Author: rec.Author},
				categories: make(map[string]struct{}),
			}
			groups[rec.Author] = g
			order = append(order, rec.Author)
		}

		g.stats.ContentCount++
		g.stats.TotalViews += rec.Views
		g.stats.TotalLikes += rec.Likes
		g.stats.Content = append(g.stats.Content, analytics.AuthorContent{
			ID:    rec.ID,
			Title: rec.Title,
			Views: rec.Views,
			Likes: rec.Likes,
		})
		if rec.Category != "" {
			g.categories[rec.Category] = struct{}{}
		}
	}

	stats := make([]analytics.AuthorStats, 0, len(groups))
	for _, author := range order {
		g := groups[author]
		g.stats.AvgViews = roundedAverage(g.stats.TotalViews, g.stats.ContentCount)
		g.stats.AvgLikes = roundedAverage(g.stats.TotalLikes, g.stats.ContentCount)

		sort.SliceStable(g.stats.Content, func(i, j int) bool {
			return g.stats.Content[i].Views > g.stats.Content[j].Views
		})

		g.stats.Categories = make([]string, 0, len(g.categories))
		for category := range g.categories {
			g.stats.Categories = append(g.stats.Categories, category)
		}
		sort.Strings(g.stats.Categories)

		stats = append(stats, g.stats)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalViews > stats[j].TotalViews
	})
	return stats
}
