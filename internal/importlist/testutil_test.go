package importlist_test

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/importlist"
	"github.com/vmunix/curarr/internal/importlist/mocks"
	"github.com/vmunix/curarr/internal/library"
	"github.com/vmunix/curarr/internal/migrations"
	"go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"
)

// testLogger returns a discard logger for tests.
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

// env bundles a syncer with its collaborators against one test database.
type env struct {
	db       *sql.DB
	lists    *importlist.Store
	lib      *library.Store
	bus      *events.Bus
	syncer   *importlist.Syncer
	provider *mocks.MockProvider
}

func setupSyncer(t *testing.T, ctrl *gomock.Controller, trigger importlist.SearchTrigger) *env {
	t.Helper()
	db := setupTestDB(t)
	lib := library.NewStore(db)
	lists := importlist.NewStore(db)
	bus := events.NewBus(events.NewLog(db), testLogger())
	t.Cleanup(func() { _ = bus.Close() })

	provider := mocks.NewMockProvider(ctrl)
	syncer := importlist.NewSyncer(lists, lib, bus, trigger, time.Second, testLogger())
	syncer.RegisterProvider("http", provider)

	return &env{db: db, lists: lists, lib: lib, bus: bus, syncer: syncer, provider: provider}
}

func addConfig(t *testing.T, s *importlist.Store, mutate func(*importlist.Config)) *importlist.Config {
	t.Helper()
	cfg := &importlist.Config{
		Name:            "trending",
		Provider:        "http",
		MediaType:       library.MediaMovie,
		Enabled:         true,
		AutoAdd:         true,
		ListURL:         "http://lists.example.com/trending.json",
		RefreshInterval: 6 * time.Hour,
	}
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, s.Add(cfg))
	return cfg
}

func itemCount(t *testing.T, lib *library.Store) int {
	t.Helper()
	_, total, err := lib.ListItems(library.ItemFilter{})
	require.NoError(t, err)
	return total
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}
