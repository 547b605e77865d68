package stores

import (
	"testing"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
)

func TestViewKeyDistinguishesParams(t *testing.T) {
	base := ViewKey("content", analytics.Params{})
	week := ViewKey("content", analytics.Params{Period: "week"})
	month := ViewKey("content", analytics.Params{Period: "month"})

	if base == week || week == month {
		t.Errorf("keys should differ per params: %q, %q, %q", base, week, month)
	}
	if ViewKey("content", analytics.Params{Period: "week"}) != week {
		t.Error("identical params should produce identical keys")
	}
	if ViewKey("summary", analytics.Params{}) == base {
		t.Error("different views should produce different keys")
	}
}

func TestViewStoreGetSet(t *testing.T) {
	store := NewViewStore(time.Hour)
	key := ViewKey("summary", analytics.Params{})

	if _, hit := store.Get(key); hit {
		t.Error("empty store should miss")
	}

	store.Set(key, "computed")
	got, hit := store.Get(key)
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if got != "computed" {
		t.Errorf("Get = %v, want cached value", got)
	}
}

func TestViewStoreExpiry(t *testing.T) {
	store := NewViewStore(time.Nanosecond)
	key := ViewKey("summary", analytics.Params{})

	store.Set(key, "stale")
	time.Sleep(time.Millisecond)

	if _, hit := store.Get(key); hit {
		t.Error("expired entry should miss")
	}
}

func TestViewStoreClear(t *testing.T) {
	store := NewViewStore(time.Hour)
	store.Set("a", 1)
	store.Set("b", 2)

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}

	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", store.Len())
	}
	if _, hit := store.Get("a"); hit {
		t.Error("cleared entry should miss")
	}
}
