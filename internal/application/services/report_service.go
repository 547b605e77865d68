package services

import (
	"context"
	"time"

	"github.com/bpradana/weave"

	"github.com/showcaseworks/showcase-go/internal/application/compute"
	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/performance"
)

// sectionWeights drive the completeness percentage of the unified
// report. Weights sum to 100.
var sectionWeights = map[string]int{
	analytics.ViewSummary:       20,
	analytics.ViewContent:       20,
	analytics.ViewAuthors:       15,
	analytics.ViewCategories:    15,
	analytics.ViewTime:          15,
	analytics.ViewHourly:        10,
	analytics.ViewAccessPurpose: 5,
}

// ReportService assembles the unified report by collecting all seven
// views concurrently and annotating the result.
type ReportService struct {
	analyticsService *AnalyticsService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewReportService creates the unified report collector.
func NewReportService(analyticsService *AnalyticsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ReportService {
	return &ReportService{
		analyticsService: analyticsService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// GatherAll computes every view against one pinned snapshot, tolerates
// per-section failures, and returns the annotated report. It never
// returns an error: failed sections appear empty and are listed in the
// metadata.
func (s *ReportService) GatherAll(ctx context.Context, params analytics.Params) *analytics.UnifiedReport {
	marker := s.perfTracker.StartOperation("gather_unified_report")
	defer marker.Complete()
	start := time.Now()

	// Pin the snapshot before fanning out so every section reads the
	// same raw data, and capture its degraded flag for the metadata.
	snapshot := s.analyticsService.Snapshot(ctx)

	graph := weave.NewGraph()
	handles := make(map[string]*weave.Handle[any], len(analytics.ViewNames))
	for _, viewName := range analytics.ViewNames {
		name := viewName
		handle, err := weave.AddTask(graph, name, func(ctx context.Context, _ weave.DependencyResolver) (any, error) {
			return s.analyticsService.Get(ctx, name, params)
		})
		if err != nil {
			// Only reachable on duplicate names; treat as a failed section.
			s.logger.Analytics().Error("Failed to register report section", "section", name, "error", err.Error())
			continue
		}
		handles[name] = handle
	}

	results, _, runErr := graph.Run(ctx, weave.WithErrorStrategy(weave.ContinueOnError))
	if runErr != nil {
		s.logger.Analytics().Warn("Report collection finished with failures", "error", runErr.Error())
	}

	report := &analytics.UnifiedReport{
		Summary:        &analytics.Summary{},
		Content:        []analytics.ContentStats{},
		Authors:        []analytics.AuthorStats{},
		Categories:     []analytics.CategoryStats{},
		Time:           []analytics.DailyStats{},
		Hourly:         []analytics.HourlyStats{},
		AccessPurposes: []analytics.PurposeStats{},
	}

	var failed []string
	for _, viewName := range analytics.ViewNames {
		handle, ok := handles[viewName]
		if !ok {
			failed = append(failed, viewName)
			continue
		}
		value, err := handle.Value(results)
		if err != nil {
			s.logger.Analytics().Error("Report section failed", "section", viewName, "error", err.Error())
			failed = append(failed, viewName)
			continue
		}
		s.assignSection(report, viewName, value)
	}

	// A section earns its weight only when it holds at least one data
	// point; an empty section counts the same as a failed one.
	completeness := 0
	for _, viewName := range analytics.ViewNames {
		if sectionHasData(report, viewName) {
			completeness += sectionWeights[viewName]
		}
	}

	s.annotate(report)

	status := analytics.ReportStatusOK
	if snapshot.Degraded || len(failed) > 0 {
		status = analytics.ReportStatusDegraded
	}
	report.Metadata = analytics.ReportMetadata{
		GeneratedAt:      time.Now().UTC(),
		DataCompleteness: completeness,
		Status:           status,
		FailedSections:   failed,
	}

	marker.SetSuccess(len(failed) == 0)
	s.logger.Analytics().Info("Unified report assembled",
		"completeness", completeness,
		"status", status,
		"failedSections", len(failed),
		"duration", time.Since(start))
	return report
}

func sectionHasData(report *analytics.UnifiedReport, viewName string) bool {
	switch viewName {
	case analytics.ViewSummary:
		return report.Summary.HasData()
	case analytics.ViewContent:
		return len(report.Content) > 0
	case analytics.ViewAuthors:
		return len(report.Authors) > 0
	case analytics.ViewCategories:
		return len(report.Categories) > 0
	case analytics.ViewTime:
		return len(report.Time) > 0
	case analytics.ViewHourly:
		// The hourly profile always has 24 buckets; it carries data
		// only when at least one bucket is non-empty.
		for _, h := range report.Hourly {
			if h.PageViews > 0 || h.ContentViews > 0 || h.Visitors > 0 {
				return true
			}
		}
		return false
	case analytics.ViewAccessPurpose:
		return len(report.AccessPurposes) > 0
	}
	return false
}

// assignSection places a deep copy of the view into the report. The
// values arriving here are shared with the view cache, and annotate
// writes into the report's elements, so copies keep cached views
// byte-stable across gathers.
func (s *ReportService) assignSection(report *analytics.UnifiedReport, viewName string, value any) {
	switch viewName {
	case analytics.ViewSummary:
		if v, ok := value.(*analytics.Summary); ok && v != nil {
			report.Summary = v.Clone()
		}
	case analytics.ViewContent:
		if v, ok := value.([]analytics.ContentStats); ok {
			report.Content = cloneContentStats(v)
		}
	case analytics.ViewAuthors:
		if v, ok := value.([]analytics.AuthorStats); ok {
			report.Authors = cloneAuthorStats(v)
		}
	case analytics.ViewCategories:
		if v, ok := value.([]analytics.CategoryStats); ok {
			report.Categories = append([]analytics.CategoryStats(nil), v...)
		}
	case analytics.ViewTime:
		if v, ok := value.([]analytics.DailyStats); ok {
			report.Time = append([]analytics.DailyStats(nil), v...)
		}
	case analytics.ViewHourly:
		if v, ok := value.([]analytics.HourlyStats); ok {
			report.Hourly = append([]analytics.HourlyStats(nil), v...)
		}
	case analytics.ViewAccessPurpose:
		if v, ok := value.([]analytics.PurposeStats); ok {
			report.AccessPurposes = append([]analytics.PurposeStats(nil), v...)
		}
	}
}

func cloneContentStats(in []analytics.ContentStats) []analytics.ContentStats {
	out := append([]analytics.ContentStats(nil), in...)
	for i := range out {
		out[i].Tags = append([]string(nil), out[i].Tags...)
	}
	return out
}

func cloneAuthorStats(in []analytics.AuthorStats) []analytics.AuthorStats {
	out := append([]analytics.AuthorStats(nil), in...)
	for i := range out {
		out[i].Categories = append([]string(nil), out[i].Categories...)
		out[i].Content = append([]analytics.AuthorContent(nil), out[i].Content...)
	}
	return out
}

// annotate layers the derived scoring fields onto each section. Base
// figures are never altered, only the annotation fields are filled.
func (s *ReportService) annotate(report *analytics.UnifiedReport) {
	for i := range report.Content {
		c := &report.Content[i]
		c.EngagementScore = compute.EngagementScore(c.Views, c.Likes)
	}

	for i := range report.Authors {
		a := &report.Authors[i]
		a.ProductivityScore = compute.ProductivityScore(a.ContentCount, a.TotalViews)
		a.AverageViewsPerContent = compute.AverageViewsPerContent(a.TotalViews, a.ContentCount)
	}

	for i := range report.Categories {
		c := &report.Categories[i]
		c.Popularity = compute.CategoryPopularity(c.ContentCount, c.TotalViews)
		c.GrowthPotential = compute.GrowthPotential(c.ContentCount, c.TotalViews)
	}

	if len(report.Time) > 0 {
		total := 0
		for _, d := range report.Time {
			total += d.PageViews + d.ContentViews
		}
		avg := float64(total) / float64(len(report.Time))
		for i := range report.Time {
			d := &report.Time[i]
			d.Trend = compute.Trend(d.PageViews+d.ContentViews, avg)
		}
	}

	for i := range report.AccessPurposes {
		p := &report.AccessPurposes[i]
		p.BusinessValue = compute.BusinessValueFor(p.Purpose)
		p.StrategicImportance = compute.StrategicImportanceFor(p.Purpose)
	}
}
