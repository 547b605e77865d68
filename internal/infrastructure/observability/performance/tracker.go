// Package performance provides operation timing markers for the
// showcase analytics service.
package performance

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Marker tracks one operation from start to completion.
type Marker struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Duration  time.Duration  `json:"duration"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	tracker *Tracker
	mu      sync.Mutex
}

// Complete finalizes the marker and records its duration.
func (m *Marker) Complete() {
	m.mu.Lock()
	m.EndTime = time.Now().UTC()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.mu.Unlock()

	if m.tracker != nil {
		m.tracker.record(m)
	}
}

// SetSuccess marks the operation outcome.
func (m *Marker) SetSuccess(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Success = success
}

// SetError marks the operation failed and captures the error text.
func (m *Marker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Success = false
	if err != nil {
		m.Error = err.Error()
	}
}

// AddMetadata attaches arbitrary context to the marker.
func (m *Marker) AddMetadata(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// Tracker retains completed operation markers for inspection.
type Tracker struct {
	markers    []*Marker
	maxMarkers int
	started    time.Time
	mu         sync.RWMutex
}

// NewTracker creates a tracker retaining up to maxMarkers completed markers.
func NewTracker(maxMarkers int) *Tracker {
	if maxMarkers <= 0 {
		maxMarkers = 1000
	}
	return &Tracker{
		markers:    make([]*Marker, 0, maxMarkers),
		maxMarkers: maxMarkers,
		started:    time.Now().UTC(),
	}
}

// StartOperation begins tracking a named operation.
func (t *Tracker) StartOperation(operation string) *Marker {
	return &Marker{
		ID:        ulid.Make().String(),
		Operation: operation,
		StartTime: time.Now().UTC(),
		tracker:   t,
	}
}

func (t *Tracker) record(marker *Marker) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.markers = append(t.markers, marker)
	if len(t.markers) > t.maxMarkers {
		t.markers = t.markers[len(t.markers)-t.maxMarkers:]
	}
}

// RecentMetrics returns completed markers newer than the window.
func (t *Tracker) RecentMetrics(within time.Duration) []*Marker {
	cutoff := time.Now().UTC().Add(-within)

	t.mu.RLock()
	defer t.mu.RUnlock()

	recent := make([]*Marker, 0)
	for _, marker := range t.markers {
		if marker.EndTime.After(cutoff) {
			recent = append(recent, marker)
		}
	}
	return recent
}

// OverallStats summarizes retained markers.
func (t *Tracker) OverallStats() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := len(t.markers)
	succeeded := 0
	var totalDuration time.Duration
	for _, marker := range t.markers {
		if marker.Success {
			succeeded++
		}
		totalDuration += marker.Duration
	}

	stats := map[string]any{
		"totalOperations": total,
		"succeeded":       succeeded,
		"failed":          total - succeeded,
		"uptime":          time.Since(t.started).String(),
	}
	if total > 0 {
		stats["avgDuration"] = (totalDuration / time.Duration(total)).String()
	}
	return stats
}
