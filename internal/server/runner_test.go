package server

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/importlist"
	"github.com/vmunix/curarr/internal/library"
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
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)
	return db
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	db := setupTestDB(t)
	log := testLogger()

	lib := library.NewStore(db)
	lists := importlist.NewStore(db)
	eventLog := events.NewLog(db)
	bus := events.NewBus(eventLog, log)
	t.Cleanup(func() { _ = bus.Close() })

	trigger := importlist.NewQueueTrigger(8, lib, bus, log)
	syncer := importlist.NewSyncer(lists, lib, bus, trigger, time.Second, log)
	scheduler := importlist.NewScheduler(lists, syncer, 50*time.Millisecond, log)
	poller := notify.NewPoller(eventLog, notify.NewStateStore(db), nil, 50*time.Millisecond, log)

	return NewRunner(scheduler, poller, trigger, bus, eventLog, log)
}

func TestRunner_StartsAndStops(t *testing.T) {
	runner := newTestRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	// Give components time to start
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		// context.Canceled is expected
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for runner to stop")
	}
}

func TestNewRunner_DefaultLogger(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil, nil, nil)
	require.NotNil(t, runner)
	require.NotNil(t, runner.logger)
}

func TestRunner_NoComponents(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil, nil, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// With no components errgroup has nothing to wait for.
	require.NoError(t, runner.Run(ctx))
}

func TestRunner_WakesPollerOnPublish(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()
	eventLog := events.NewLog(db)
	bus := events.NewBus(eventLog, log)
	t.Cleanup(func() { _ = bus.Close() })

	// The hour-long interval means only the bus wake-up can fold the event
	// into the feed within the test deadline.
	poller := notify.NewPoller(eventLog, notify.NewStateStore(db), nil, time.Hour, log)
	poller.Poll() // establish the cursor

	runner := NewRunner(nil, poller, nil, bus, nil, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = runner.Run(ctx) }()

	bus.Publish(ctx, events.New(events.TypeImported, "fresh import"))

	require.Eventually(t, func() bool {
		return poller.UnreadCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunner_PrunesActivityLog(t *testing.T) {
	db := setupTestDB(t)
	eventLog := events.NewLog(db)

	stale := events.New(events.TypeImported, "ancient history")
	stale.CreatedAt = time.Now().Add(-48 * time.Hour)
	_, err := eventLog.Append(stale)
	require.NoError(t, err)

	runner := NewRunner(nil, nil, nil, nil, eventLog, testLogger())
	runner.pruneEvery = 20 * time.Millisecond
	runner.retention = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = runner.Run(ctx) }()

	require.Eventually(t, func() bool {
		recent, err := eventLog.Recent(10)
		return err == nil && len(recent) == 0
	}, 2*time.Second, 20*time.Millisecond)
}
