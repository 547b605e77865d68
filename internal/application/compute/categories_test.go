package compute

import (
	"testing"

	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
)

func TestCategoriesGrouping(t *testing.T) {
	records := []content.Record{
		{ID: "c1", Category: "ml", Views: 10, Likes: 1},
		{ID: "c2", Category: "ml", Views: 5, Likes: 0},
		{ID: "c3", Category: "infra", Views: 100, Likes: 9},
	}

	stats := Categories(records)
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	// Ordered by content count, not views.
	if stats[0].Category != "ml" {
		t.Fatalf("expected ml first by content count, got %q", stats[0].Category)
	}
	if stats[0].ContentCount != 2 || stats[0].TotalViews != 15 || stats[0].TotalLikes != 1 {
		t.Errorf("ml stats = %+v, want count=2 views=15 likes=1", stats[0])
	}
	// 15/2 rounds to 8, 1/2 rounds to 1.
	if stats[0].AvgViews != 8 || stats[0].AvgLikes != 1 {
		t.Errorf("ml averages = views %d likes %d, want 8 and 1", stats[0].AvgViews, stats[0].AvgLikes)
	}
}

func TestCategoriesUncategorizedFallback(t *testing.T) {
	records := []content.Record{
		{ID: "c1", Category: "", Views: 3},
		{ID: "c2", Category: "", Views: 4},
	}

	stats := Categories(records)
	if len(stats) != 1 {
		t.Fatalf("len(stats) = %d, want 1", len(stats))
	}
	if stats[0].Category != UncategorizedLabel {
		t.Errorf("category = %q, want %q", stats[0].Category, UncategorizedLabel)
	}
	if stats[0].ContentCount != 2 || stats[0].TotalViews != 7 {
		t.Errorf("uncategorized stats = %+v, want count=2 views=7", stats[0])
	}
}

func TestCategoriesEmptyCatalog(t *testing.T) {
	if stats := Categories(nil); len(stats) != 0 {
		t.Errorf("len(stats) = %d, want 0", len(stats))
	}
}
