// Package notify turns activity log entries into a bounded, persisted
// notification feed. A poller watches the log behind a monotonic cursor so
// restarts and retries never replay old events.
package notify

import (
	"errors"
	"strings"
	"time"

	"github.com/vmunix/curarr/internal/events"
)

// ErrNotFound indicates the referenced notification is not in the feed.
var ErrNotFound = errors.New("not found")

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is one feed entry, derived from an activity event.
type Notification struct {
	ID         int64     `json:"id"`
	Severity   Severity  `json:"severity"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   int64     `json:"entity_id,omitempty"`
}

// notifiable is the set of event types worth surfacing to the user.
// Bookkeeping events (item_added, list_synced) stay in the activity log only.
var notifiable = map[events.Type]bool{
	events.TypeGrabbed:       true,
	events.TypeDownloaded:    true,
	events.TypeImported:      true,
	events.TypeUnmonitored:   true,
	events.TypeScanCompleted: true,
	events.TypeFailed:        true,
	events.TypeDeleted:       true,
}

var severityByType = map[events.Type]Severity{
	events.TypeImported:      SeveritySuccess,
	events.TypeDownloaded:    SeveritySuccess,
	events.TypeFailed:        SeverityError,
	events.TypeDeleted:       SeverityError,
	events.TypeUnmonitored:   SeverityWarning,
	events.TypeGrabbed:       SeverityInfo,
	events.TypeScanCompleted: SeverityInfo,
}

var titleByType = map[events.Type]string{
	events.TypeGrabbed:       "Grabbed",
	events.TypeDownloaded:    "Download Complete",
	events.TypeImported:      "Imported",
	events.TypeUnmonitored:   "Unmonitored",
	events.TypeScanCompleted: "Scan Completed",
	events.TypeFailed:        "Failed",
	events.TypeDeleted:       "Deleted",
}

func severityFor(t events.Type) Severity {
	if s, ok := severityByType[t]; ok {
		return s
	}
	return SeverityInfo
}

func titleFor(t events.Type) string {
	if title, ok := titleByType[t]; ok {
		return title
	}
	return humanize(string(t))
}

// humanize turns an event type like "scan_completed" into "Scan Completed".
func humanize(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// fromActivity maps an activity event to a notification. The notification
// inherits the event's id, so feed identity follows log identity.
func fromActivity(a events.Activity) Notification {
	title := a.Label
	if title == "" {
		title = titleFor(a.Type)
	}
	return Notification{
		ID:         a.ID,
		Severity:   severityFor(a.Type),
		Title:      title,
		Message:    a.Message,
		Timestamp:  a.CreatedAt,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
	}
}
