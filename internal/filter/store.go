package filter

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates the requested filter doesn't exist.
var ErrNotFound = errors.New("not found")

// Store persists custom filters.
type Store struct {
	db *sql.DB
}

// NewStore creates a new custom filter store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const filterColumns = `id, name, position, monitored, has_file, cutoff_met,
	quality_profile_id, quality, min_year, max_year, created_at, updated_at`

func scanFilter(row interface{ Scan(...any) error }) (*CustomFilter, error) {
	f := &CustomFilter{}
	err := row.Scan(&f.ID, &f.Name, &f.Position, &f.Monitored, &f.HasFile, &f.CutoffMet,
		&f.QualityProfileID, &f.Quality, &f.MinYear, &f.MaxYear, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Add inserts a new custom filter. Sets ID, CreatedAt, and UpdatedAt.
func (s *Store) Add(f *CustomFilter) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO custom_filters (name, position, monitored, has_file, cutoff_met,
			quality_profile_id, quality, min_year, max_year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Name, f.Position, f.Monitored, f.HasFile, f.CutoffMet,
		f.QualityProfileID, f.Quality, f.MinYear, f.MaxYear, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert filter: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	f.ID = id
	f.CreatedAt = now
	f.UpdatedAt = now
	return nil
}

// Get retrieves a custom filter by ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) Get(id int64) (*CustomFilter, error) {
	f, err := scanFilter(s.db.QueryRow(`SELECT `+filterColumns+` FROM custom_filters WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get filter %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get filter %d: %w", id, err)
	}
	return f, nil
}

// List returns all custom filters in user-defined order.
func (s *Store) List() ([]*CustomFilter, error) {
	rows, err := s.db.Query(`SELECT ` + filterColumns + ` FROM custom_filters ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*CustomFilter
	for rows.Next() {
		f, err := scanFilter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan filter: %w", err)
		}
		results = append(results, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filters: %w", err)
	}
	return results, nil
}

// Update replaces an existing custom filter. Sets UpdatedAt.
// Returns ErrNotFound if the filter does not exist.
func (s *Store) Update(f *CustomFilter) error {
	now := time.Now()
	result, err := s.db.Exec(`
		UPDATE custom_filters SET name = ?, position = ?, monitored = ?, has_file = ?,
			cutoff_met = ?, quality_profile_id = ?, quality = ?, min_year = ?, max_year = ?,
			updated_at = ?
		WHERE id = ?`,
		f.Name, f.Position, f.Monitored, f.HasFile, f.CutoffMet,
		f.QualityProfileID, f.Quality, f.MinYear, f.MaxYear, now, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update filter %d: %w", f.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update filter %d: %w", f.ID, ErrNotFound)
	}
	f.UpdatedAt = now
	return nil
}

// Delete removes a custom filter by ID. Idempotent.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM custom_filters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete filter %d: %w", id, err)
	}
	return nil
}
