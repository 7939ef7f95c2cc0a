package filter

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/vmunix/curarr/internal/library"
	"github.com/vmunix/curarr/internal/migrations"
	_ "modernc.org/sqlite"
)

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

// fakeProfiles is an in-memory ProfileSource.
type fakeProfiles map[int64]*library.QualityProfile

func (f fakeProfiles) GetProfile(id int64) (*library.QualityProfile, error) {
	p, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("profile %d: %w", id, library.ErrNotFound)
	}
	return p, nil
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}
