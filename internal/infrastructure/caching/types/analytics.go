// Package types defines the cache entry shapes shared by the cache stores.
package types

import (
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
)

// CachedSnapshot is the single raw-snapshot cache slot.
type CachedSnapshot struct {
	Data       *analytics.RawSnapshot `json:"data"`
	ComputedAt time.Time              `json:"computedAt"`
	TTL        time.Duration          `json:"ttl"`
}

// Expired reports whether the entry has outlived its TTL.
func (c *CachedSnapshot) Expired(now time.Time) bool {
	return now.Sub(c.ComputedAt) >= c.TTL
}

// CachedView is one computed derived view stored under its
// (viewName, params) key.
type CachedView struct {
	Data       any           `json:"data"`
	ComputedAt time.Time     `json:"computedAt"`
	TTL        time.Duration `json:"ttl"`
}

// Expired reports whether the entry has outlived its TTL.
func (c *CachedView) Expired(now time.Time) bool {
	return now.Sub(c.ComputedAt) >= c.TTL
}
