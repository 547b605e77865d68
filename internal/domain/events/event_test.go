package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	ts := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{
			name:  "valid page view",
			event: Event{EventType: TypePageView, Timestamp: ts, Data: Data{SessionID: "s1", Path: "/"}},
		},
		{
			name:  "valid visitor purpose",
			event: Event{EventType: TypeVisitorPurpose, Timestamp: ts, Data: Data{SessionID: "s1", Purpose: PurposeCustomerDemo}},
		},
		{
			name:  "valid content view",
			event: Event{EventType: TypeContentView, Timestamp: ts, Data: Data{SessionID: "s1", ContentID: "c1"}},
		},
		{
			name:  "valid category view",
			event: Event{EventType: TypeCategoryView, Timestamp: ts, Data: Data{SessionID: "s1", Category: "ml"}},
		},
		{
			name:    "unknown type",
			event:   Event{EventType: "click", Timestamp: ts},
			wantErr: true,
		},
		{
			name:    "missing timestamp",
			event:   Event{EventType: TypePageView, Data: Data{SessionID: "s1"}},
			wantErr: true,
		},
		{
			name:    "visitor purpose without purpose",
			event:   Event{EventType: TypeVisitorPurpose, Timestamp: ts, Data: Data{SessionID: "s1"}},
			wantErr: true,
		},
		{
			name:    "content view without content id",
			event:   Event{EventType: TypeContentView, Timestamp: ts, Data: Data{SessionID: "s1"}},
			wantErr: true,
		},
		{
			name:    "category view without category",
			event:   Event{EventType: TypeCategoryView, Timestamp: ts, Data: Data{SessionID: "s1"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventWireFormat(t *testing.T) {
	raw := `{
		"eventType": "visitor_purpose",
		"timestamp": "2026-08-10T09:00:00Z",
		"data": {"sessionId": "s1", "purpose": "customer-demo"}
	}`

	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if event.EventType != TypeVisitorPurpose {
		t.Errorf("EventType = %q", event.EventType)
	}
	if event.Data.Purpose != PurposeCustomerDemo {
		t.Errorf("Purpose = %q", event.Data.Purpose)
	}
	if err := event.Validate(); err != nil {
		t.Errorf("wire-format event failed validation: %v", err)
	}
}

func TestDataRetainsExtras(t *testing.T) {
	raw := `{"sessionId": "s1", "purpose": "customer-demo", "referrer": "email", "durationMs": 1200}`

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if data.SessionID != "s1" || data.Purpose != PurposeCustomerDemo {
		t.Errorf("typed fields = %+v", data)
	}
	if got := data.Extra["referrer"]; got != "email" {
		t.Errorf(`Extra["referrer"] = %v, want "email"`, got)
	}
	if got := data.Extra["durationMs"]; got != float64(1200) {
		t.Errorf(`Extra["durationMs"] = %v, want 1200`, got)
	}
	if _, leaked := data.Extra["sessionId"]; leaked {
		t.Error("typed keys must not appear in Extra")
	}

	out, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	if roundTrip["sessionId"] != "s1" || roundTrip["referrer"] != "email" {
		t.Errorf("round trip dropped keys: %v", roundTrip)
	}
}

func TestDataWithoutExtras(t *testing.T) {
	var data Data
	if err := json.Unmarshal([]byte(`{"sessionId": "s1"}`), &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if data.Extra != nil {
		t.Errorf("Extra = %v, want nil when no unrecognized keys", data.Extra)
	}
}
