package analytics

import (
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/events"
)

// View names addressable through the aggregation facade.
const (
	ViewSummary       = "summary"
	ViewContent       = "content"
	ViewAuthors       = "authors"
	ViewCategories    = "categories"
	ViewTime          = "time"
	ViewHourly        = "hourly"
	ViewAccessPurpose = "accessPurpose"
)

// ViewNames lists all seven derived views in report order.
var ViewNames = []string{
	ViewSummary,
	ViewContent,
	ViewAuthors,
	ViewCategories,
	ViewTime,
	ViewHourly,
	ViewAccessPurpose,
}

// Params selects a variant of a derived view. Serialized params are
// part of the view cache key.
type Params struct {
	Period string `json:"period,omitempty"` // day|week|month|year|all
}

// RawSnapshot is one bulk fetch of the event log, reused across every
// view computed within its TTL window. It is replaced wholesale on
// refresh, never patched. Degraded marks a snapshot substituted for a
// failed source fetch; degraded snapshots are never cached.
type RawSnapshot struct {
	Events    []events.Event `json:"events"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Degraded  bool           `json:"-"`
}

// Summary is the site-wide visitor view.
type Summary struct {
	TotalVisitors     int            `json:"totalVisitors"`
	TotalPageViews    int            `json:"totalPageViews"`
	TotalContentViews int            `json:"totalContentViews"`
	AccessPurposes    map[string]int `json:"accessPurposes"`
}

// Clone returns a deep copy including the purpose counts map, so the
// copy can be annotated without touching cached state.
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	out := *s
	if s.AccessPurposes != nil {
		out.AccessPurposes = make(map[string]int, len(s.AccessPurposes))
		for purpose, count := range s.AccessPurposes {
			out.AccessPurposes[purpose] = count
		}
	}
	return &out
}

// HasData reports whether the summary carries at least one data point.
func (s *Summary) HasData() bool {
	if s == nil {
		return false
	}
	return s.TotalVisitors > 0 || s.TotalPageViews > 0 || s.TotalContentViews > 0 || len(s.AccessPurposes) > 0
}

// ContentStats is one ranked catalog item. EngagementScore is filled
// by the unified report collector, not the view computer.
type ContentStats struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	Views           int       `json:"views"`
	Likes           int       `json:"likes"`
	Tags            []string  `json:"tags,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	EngagementScore int       `json:"engagementScore,omitempty"`
}

// AuthorContent is one item in an author's ranked content list.
type AuthorContent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int    `json:"views"`
	Likes int    `json:"likes"`
}

// AuthorStats aggregates a single author's catalog. The last two
// fields are collector annotations.
type AuthorStats struct {
	Author                 string          `json:"author"`
	ContentCount           int             `json:"contentCount"`
	TotalViews             int             `json:"totalViews"`
	TotalLikes             int             `json:"totalLikes"`
	AvgViews               int             `json:"avgViews"`
	AvgLikes               int             `json:"avgLikes"`
	Categories             []string        `json:"categories"`
	Content                []AuthorContent `json:"content"`
	ProductivityScore      int             `json:"productivityScore,omitempty"`
	AverageViewsPerContent int             `json:"averageViewsPerContent,omitempty"`
}

// CategoryStats aggregates one catalog category. Popularity and
// GrowthPotential are collector annotations.
type CategoryStats struct {
	Category        string `json:"category"`
	ContentCount    int    `json:"contentCount"`
	TotalViews      int    `json:"totalViews"`
	TotalLikes      int    `json:"totalLikes"`
	AvgViews        int    `json:"avgViews"`
	AvgLikes        int    `json:"avgLikes"`
	Popularity      int    `json:"popularity,omitempty"`
	GrowthPotential string `json:"growthPotential,omitempty"`
}

// DailyStats is one calendar-day bucket of the time series. Trend is
// a collector annotation.
type DailyStats struct {
	Date         string `json:"date"` // YYYY-MM-DD
	PageViews    int    `json:"pageViews"`
	ContentViews int    `json:"contentViews"`
	Visitors     int    `json:"visitors"`
	Trend        string `json:"trend,omitempty"`
}

// HourlyStats is one fixed hour-of-day bucket (0..23).
type HourlyStats struct {
	Hour         int `json:"hour"`
	PageViews    int `json:"pageViews"`
	ContentViews int `json:"contentViews"`
	Visitors     int `json:"visitors"`
}

// PurposeStats is one normalized access-purpose bucket. BusinessValue
// and StrategicImportance are collector annotations.
type PurposeStats struct {
	Purpose             string `json:"purpose"`
	Count               int    `json:"count"`
	Percentage          int    `json:"percentage"`
	BusinessValue       string `json:"businessValue,omitempty"`
	StrategicImportance string `json:"strategicImportance,omitempty"`
}

// Report statuses surfaced on unified report metadata.
const (
	ReportStatusOK       = "ok"
	ReportStatusDegraded = "degraded"
)

// ReportMetadata annotates a unified report with provenance.
type ReportMetadata struct {
	GeneratedAt      time.Time `json:"generatedAt"`
	DataCompleteness int       `json:"dataCompleteness"`
	Status           string    `json:"status"`
	FailedSections   []string  `json:"failedSections,omitempty"`
}

// UnifiedReport composes all seven derived views plus collector
// annotations. It is assembled fresh per request from the per-view
// caches and is not itself cached.
type UnifiedReport struct {
	Summary        *Summary        `json:"summary"`
	Content        []ContentStats  `json:"content"`
	Authors        []AuthorStats   `json:"authors"`
	Categories     []CategoryStats `json:"categories"`
	Time           []DailyStats    `json:"time"`
	Hourly         []HourlyStats   `json:"hourly"`
	AccessPurposes []PurposeStats  `json:"accessPurposes"`
	Metadata       ReportMetadata  `json:"metadata"`
}
