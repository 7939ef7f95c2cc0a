// Package events records library activity in an append-only log and fans
// events out to in-process subscribers.
package events

import "time"

// Type is the closed set of activity event types.
type Type string

const (
	TypeGrabbed       Type = "grabbed"
	TypeDownloaded    Type = "downloaded"
	TypeImported      Type = "imported"
	TypeUnmonitored   Type = "unmonitored"
	TypeScanCompleted Type = "scan_completed"
	TypeFailed        Type = "failed"
	TypeDeleted       Type = "deleted"
	TypeItemAdded     Type = "item_added"
	TypeListSynced    Type = "list_synced"
)

// Activity is one entry of the activity log. IDs are assigned on append and
// increase monotonically.
type Activity struct {
	ID         int64     `json:"id"`
	Type       Type      `json:"type"`
	Label      string    `json:"label,omitempty"`
	Message    string    `json:"message"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   int64     `json:"entity_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// New creates an Activity with the current timestamp. The ID is assigned
// when the activity is appended to the log.
func New(eventType Type, message string) Activity {
	return Activity{
		Type:      eventType,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// WithEntity attaches an entity reference.
func (a Activity) WithEntity(entityType string, entityID int64) Activity {
	a.EntityType = entityType
	a.EntityID = entityID
	return a
}

// WithLabel attaches a human-readable label.
func (a Activity) WithLabel(label string) Activity {
	a.Label = label
	return a
}
