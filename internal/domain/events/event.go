// Package events defines the interaction event wire types and the
// per-type payload validation applied at the ingestion boundary.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types emitted by portal instrumentation.
const (
	TypeVisitorPurpose = "visitor_purpose"
	TypePageView       = "page_view"
	TypeContentView    = "content_view"
	TypeCategoryView   = "category_view"
)

// Well-known visitor purpose values.
const (
	PurposeAWSInternal  = "aws-internal"
	PurposeCustomerDemo = "customer-demo"
	PurposeOther        = "other"
	PurposeSkipped      = "Skipped"
	PurposeUnknown      = "Unknown"
)

// Data carries the per-type event payload. The eventType field on the
// enclosing Event acts as the tag; Validate enforces the schema each
// tag requires. The wire format allows free-form extras beyond the
// typed fields; they are retained in Extra and round-trip through
// JSON unchanged. The relational stores persist the typed columns
// only, so extras do not survive storage.
type Data struct {
	SessionID    string `json:"sessionId,omitempty"`
	Purpose      string `json:"purpose,omitempty"`
	ContentID    string `json:"contentId,omitempty"`
	ContentTitle string `json:"contentTitle,omitempty"`
	Category     string `json:"category,omitempty"`
	Path         string `json:"path,omitempty"`

	Extra map[string]any `json:"-"`
}

var dataKnownKeys = []string{"sessionId", "purpose", "contentId", "contentTitle", "category", "path"}

// UnmarshalJSON decodes the typed fields and keeps any unrecognized
// keys in Extra.
func (d *Data) UnmarshalJSON(b []byte) error {
	type plain Data
	var known plain
	if err := json.Unmarshal(b, &known); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, key := range dataKnownKeys {
		delete(raw, key)
	}

	*d = Data(known)
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

// MarshalJSON re-emits the typed fields merged with the retained
// extras. A typed field wins on a key collision.
func (d Data) MarshalJSON() ([]byte, error) {
	type plain Data
	b, err := json.Marshal(plain(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return b, nil
	}

	merged := make(map[string]any, len(d.Extra)+len(dataKnownKeys))
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for key, value := range d.Extra {
		if _, taken := merged[key]; !taken {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Event is one immutable interaction record. The JSON shape
// {eventType, timestamp, data{...}} is the portal wire format and
// must not change.
type Event struct {
	ID        string    `json:"id,omitempty"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	Data      Data      `json:"data"`
}

// IsKnownType reports whether the event type belongs to the instrumentation taxonomy.
func IsKnownType(eventType string) bool {
	switch eventType {
	case TypeVisitorPurpose, TypePageView, TypeContentView, TypeCategoryView:
		return true
	}
	return false
}

// Validate checks the event against the schema its type requires.
// Aggregation assumes validated events, so this runs once at ingestion.
func (e *Event) Validate() error {
	if !IsKnownType(e.EventType) {
		return fmt.Errorf("unknown event type: %q", e.EventType)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event %q missing timestamp", e.EventType)
	}

	switch e.EventType {
	case TypeVisitorPurpose:
		if e.Data.Purpose == "" {
			return fmt.Errorf("visitor_purpose event missing purpose")
		}
	case TypeContentView:
		if e.Data.ContentID == "" {
			return fmt.Errorf("content_view event missing contentId")
		}
	case TypeCategoryView:
		if e.Data.Category == "" {
			return fmt.Errorf("category_view event missing category")
		}
	}
	return nil
}
