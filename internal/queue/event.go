// Package queue defines message payloads exchanged over the message broker.
package queue

// ContentUpdatedQueue is the durable queue carrying admin content changes.
const ContentUpdatedQueue = "content.updated"

// Aggregate names used in ContentUpdatedEvent. They match the document keys
// so consumers can correlate events with stored data.
const (
	AggregateBusinessInfo   = "business_info"
	AggregateOperatingHours = "operating_hours"
	AggregateMenuItems      = "menu_items"
	AggregateBranding       = "branding"
	AggregateAll            = "all" // whole-bundle import
)

// ContentUpdatedEvent is published after every successful admin mutation.
// It contains enough information for downstream consumers to log the change
// or drop stale caches without querying the primary store.
type ContentUpdatedEvent struct {
	Aggregate  string `json:"aggregate"`          // which document changed
	Action     string `json:"action"`             // "update", "add", "delete" or "import"
	ItemID     int64  `json:"item_id,omitempty"`  // menu item id for menu actions
	Username   string `json:"username,omitempty"` // admin who made the change
	OccurredAt string `json:"occurred_at"`        // RFC3339 UTC timestamp
}
