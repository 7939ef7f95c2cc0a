package notify_test

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/migrations"
	"github.com/vmunix/curarr/internal/notify"
	_ "modernc.org/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// fakeSource is an in-memory ActivitySource holding events newest-first.
type fakeSource struct {
	activities []events.Activity
	err        error
	calls      int
}

func (f *fakeSource) Recent(limit int) ([]events.Activity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.activities) > limit {
		return f.activities[:limit], nil
	}
	return f.activities, nil
}

// push adds an event as the newest entry.
func (f *fakeSource) push(id int64, eventType events.Type) {
	a := events.Activity{
		ID:        id,
		Type:      eventType,
		Message:   "event",
		CreatedAt: time.Now(),
	}
	f.activities = append([]events.Activity{a}, f.activities...)
}

func newPoller(t *testing.T, source notify.ActivitySource) *notify.Poller {
	t.Helper()
	store := notify.NewStateStore(setupTestDB(t))
	return notify.NewPoller(source, store, nil, time.Second, testLogger())
}

// alwaysDeny is an Authorizer with no valid session.
type alwaysDeny struct{}

func (alwaysDeny) Authorized() bool { return false }
