package stores

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/caching/types"
)

// ViewKey builds the cache key for a (viewName, params) pair.
func ViewKey(viewName string, params analytics.Params) string {
	serialized, err := json.Marshal(params)
	if err != nil {
		return viewName
	}
	return fmt.Sprintf("%s:%s", viewName, serialized)
}

// ViewStore is the per-(view, params) TTL cache of computed views,
// independent of the raw snapshot cache.
type ViewStore struct {
	entries map[string]*types.CachedView
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewViewStore creates an empty view cache with the given TTL.
func NewViewStore(ttl time.Duration) *ViewStore {
	return &ViewStore{
		entries: make(map[string]*types.CachedView),
		ttl:     ttl,
	}
}

// Get returns the cached view for key if present and younger than the TTL.
func (v *ViewStore) Get(key string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	entry, exists := v.entries[key]
	if !exists || entry.Expired(time.Now().UTC()) {
		return nil, false
	}
	return entry.Data, true
}

// Set stores a freshly computed view under key.
func (v *ViewStore) Set(key string, view any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.entries[key] = &types.CachedView{
		Data:       view,
		ComputedAt: time.Now().UTC(),
		TTL:        v.ttl,
	}
}

// Clear drops every cached view. No recomputation happens here;
// entries refill lazily on the next Get miss.
func (v *ViewStore) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = make(map[string]*types.CachedView)
}

// Len reports the number of cached entries, expired or not.
func (v *ViewStore) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}
