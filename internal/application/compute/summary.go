package compute

import (
	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
)

// Summary derives the site-wide visitor summary. A visitor is one
// distinct session seen on page_view, content_view, or a
// visitor_purpose event whose purpose is not Unknown; the purpose map
// excludes Unknown the same way.
func Summary(snapshot *analytics.RawSnapshot) *analytics.Summary {
	visitors := make(map[string]struct{})
	purposes := make(map[string]int)
	summary := &analytics.Summary{}

	for _, ev := range snapshot.Events {
		switch ev.EventType {
		case events.TypePageView:
			summary.TotalPageViews++
			if ev.Data.SessionID != "" {
				visitors[ev.Data.SessionID] = struct{}{}
			}
		case events.TypeContentView:
			summary.TotalContentViews++
			if ev.Data.SessionID != "" {
				visitors[ev.Data.SessionID] = struct{}{}
			}
		case events.TypeVisitorPurpose:
			if ev.Data.Purpose == events.PurposeUnknown {
				continue
			}
			purposes[ev.Data.Purpose]++
			if ev.Data.SessionID != "" {
				visitors[ev.Data.SessionID] = struct{}{}
			}
		}
	}

	summary.TotalVisitors = len(visitors)
	summary.AccessPurposes = purposes
	return summary
}
