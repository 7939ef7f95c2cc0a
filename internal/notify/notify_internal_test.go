package notify

import (
	"testing"
	"time"

	"github.com/vmunix/curarr/internal/events"
)

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		eventType events.Type
		want      Severity
	}{
		{events.TypeImported, SeveritySuccess},
		{events.TypeDownloaded, SeveritySuccess},
		{events.TypeFailed, SeverityError},
		{events.TypeDeleted, SeverityError},
		{events.TypeUnmonitored, SeverityWarning},
		{events.TypeGrabbed, SeverityInfo},
		{events.TypeScanCompleted, SeverityInfo},
		{events.Type("something_else"), SeverityInfo},
	}
	for _, tt := range tests {
		if got := severityFor(tt.eventType); got != tt.want {
			t.Errorf("severityFor(%s) = %s, want %s", tt.eventType, got, tt.want)
		}
	}
}

func TestTitleFor(t *testing.T) {
	if got := titleFor(events.TypeDownloaded); got != "Download Complete" {
		t.Errorf("titleFor(downloaded) = %q", got)
	}
	// Unknown types fall back to a humanized type name.
	if got := titleFor(events.Type("library_refresh")); got != "Library Refresh" {
		t.Errorf("titleFor(library_refresh) = %q", got)
	}
}

func TestFromActivity(t *testing.T) {
	now := time.Now()
	a := events.Activity{
		ID:         7,
		Type:       events.TypeFailed,
		Message:    "download failed",
		EntityType: "item",
		EntityID:   3,
		CreatedAt:  now,
	}

	n := fromActivity(a)
	if n.ID != 7 || n.Severity != SeverityError || n.Title != "Failed" {
		t.Errorf("fromActivity = %+v", n)
	}
	if n.Read {
		t.Error("new notification must start unread")
	}
	if !n.Timestamp.Equal(now) || n.EntityID != 3 {
		t.Errorf("fromActivity carried wrong metadata: %+v", n)
	}

	// An explicit label wins over the type table.
	a.Label = "Add Failed"
	if got := fromActivity(a).Title; got != "Add Failed" {
		t.Errorf("Title with label = %q, want Add Failed", got)
	}
}
