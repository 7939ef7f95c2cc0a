package library

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// IsExcluded reports whether (externalID, mediaType) is marked never-auto-add.
func (s *Store) IsExcluded(mediaType MediaType, externalID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM exclusions WHERE media_type = ? AND external_id = ?`,
		mediaType, externalID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check exclusion %s/%s: %w", mediaType, externalID, err)
	}
	return n > 0, nil
}

// AddExclusion inserts an exclusion record. Sets ID and CreatedAt on the
// struct. Adding an already-present (externalID, mediaType) pair is a no-op.
func (s *Store) AddExclusion(e *Exclusion) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO exclusions (external_id, media_type, title, year, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (external_id, media_type) DO NOTHING`,
		e.ExternalID, e.MediaType, e.Title, e.Year, now,
	)
	if err != nil {
		return fmt.Errorf("insert exclusion: %w", mapSQLiteError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// Pair already excluded; leave the existing record untouched.
		return nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	return nil
}

// GetExclusion retrieves an exclusion by ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) GetExclusion(id int64) (*Exclusion, error) {
	e := &Exclusion{}
	err := s.db.QueryRow(`
		SELECT id, external_id, media_type, title, year, created_at
		FROM exclusions WHERE id = ?`, id,
	).Scan(&e.ID, &e.ExternalID, &e.MediaType, &e.Title, &e.Year, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get exclusion %d: %w", id, mapSQLiteError(err))
	}
	return e, nil
}

// ListExclusions returns exclusions matching the filter with pagination.
func (s *Store) ListExclusions(f ExclusionFilter) ([]*Exclusion, int, error) {
	var conditions []string
	var args []any

	if f.MediaType != nil {
		conditions = append(conditions, "media_type = ?")
		args = append(args, *f.MediaType)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM exclusions "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count exclusions: %w", err)
	}

	query := "SELECT id, external_id, media_type, title, year, created_at FROM exclusions " +
		whereClause + " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list exclusions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Exclusion
	for rows.Next() {
		e := &Exclusion{}
		if err := rows.Scan(&e.ID, &e.ExternalID, &e.MediaType, &e.Title, &e.Year, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan exclusion: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate exclusions: %w", err)
	}
	return results, total, nil
}

// RemoveExclusion deletes an exclusion by ID. Idempotent.
func (s *Store) RemoveExclusion(id int64) error {
	_, err := s.db.Exec("DELETE FROM exclusions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete exclusion %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// ClearExclusions removes all exclusions, or only those for the given media
// type when mediaType is non-nil. Returns the number of rows removed.
func (s *Store) ClearExclusions(mediaType *MediaType) (int64, error) {
	var result sql.Result
	var err error
	if mediaType != nil {
		result, err = s.db.Exec("DELETE FROM exclusions WHERE media_type = ?", *mediaType)
	} else {
		result, err = s.db.Exec("DELETE FROM exclusions")
	}
	if err != nil {
		return 0, fmt.Errorf("clear exclusions: %w", err)
	}
	return result.RowsAffected()
}
