package compute

// Heuristic scoring applied by the unified report collector. The
// lookup tables intentionally cover the full purpose taxonomy the
// portal has ever collected, including values the current normalizer
// no longer emits, so historical reports stay classifiable. Unmapped
// keys fall back to the documented defaults.

// Growth potential labels.
const (
	GrowthHigh   = "high"
	GrowthMedium = "medium"
	GrowthLow    = "low"
)

// Trend labels.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Defaults for purposes missing from the lookup tables.
const (
	DefaultBusinessValue       = "standard"
	DefaultStrategicImportance = "medium"
)

var businessValueByPurpose = map[string]string{
	"customer-demo":         "high",
	"technical-evaluation":  "high",
	"partner-collaboration": "high",
	"aws-internal":          "medium",
	"training-session":      "medium",
	"conference-demo":       "medium",
	"other":                 "low",
	"Skipped":               "low",
}

var strategicImportanceByPurpose = map[string]string{
	"customer-demo":         "critical",
	"partner-collaboration": "critical",
	"technical-evaluation":  "high",
	"aws-internal":          "high",
	"training-session":      "medium",
	"conference-demo":       "medium",
	"other":                 "low",
	"Skipped":               "low",
}

// EngagementScore ranks a content item by views plus double-weighted likes.
func EngagementScore(views, likes int) int {
	return views + 2*likes
}

// ProductivityScore ranks an author by catalog size and reach.
func ProductivityScore(contentCount, totalViews int) int {
	return contentCount*10 + totalViews
}

// AverageViewsPerContent is the rounded per-item view average, 0 for
// an empty catalog.
func AverageViewsPerContent(totalViews, contentCount int) int {
	return roundedAverage(totalViews, contentCount)
}

// CategoryPopularity blends catalog size and total views.
func CategoryPopularity(contentCount, totalViews int) int {
	return (contentCount + totalViews) / 2
}

// GrowthPotential classifies a category by its views-per-item ratio.
func GrowthPotential(contentCount, totalViews int) string {
	if contentCount == 0 {
		return GrowthHigh
	}
	ratio := float64(totalViews) / float64(contentCount)
	switch {
	case ratio > 5:
		return GrowthHigh
	case ratio > 2:
		return GrowthMedium
	default:
		return GrowthLow
	}
}

// Trend classifies one day against the series mean: more than 20%
// above is increasing, more than 20% below is decreasing.
func Trend(currentViews int, avgViews float64) string {
	current := float64(currentViews)
	switch {
	case current > 1.2*avgViews:
		return TrendIncreasing
	case current < 0.8*avgViews:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// BusinessValueFor maps a purpose to its business value class.
func BusinessValueFor(purpose string) string {
	if value, mapped := businessValueByPurpose[purpose]; mapped {
		return value
	}
	return DefaultBusinessValue
}

// StrategicImportanceFor maps a purpose to its strategic importance class.
func StrategicImportanceFor(purpose string) string {
	if value, mapped := strategicImportanceByPurpose[purpose]; mapped {
		return value
	}
	return DefaultStrategicImportance
}
