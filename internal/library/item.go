package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

const itemColumns = `id, type, external_id, title, year, monitored, quality, quality_profile_id,
	downloaded_count, expected_count, root_path, monitor, minimum_availability, added_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	it := &Item{}
	err := row.Scan(&it.ID, &it.Type, &it.ExternalID, &it.Title, &it.Year, &it.Monitored,
		&it.Quality, &it.QualityProfileID, &it.DownloadedCount, &it.ExpectedCount,
		&it.RootPath, &it.Monitor, &it.MinimumAvailability, &it.AddedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func addItem(q querier, it *Item) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO items (type, external_id, title, year, monitored, quality, quality_profile_id,
			downloaded_count, expected_count, root_path, monitor, minimum_availability, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.Type, it.ExternalID, it.Title, it.Year, it.Monitored, it.Quality, it.QualityProfileID,
		it.DownloadedCount, it.ExpectedCount, it.RootPath, it.Monitor, it.MinimumAvailability, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	it.ID = id
	it.AddedAt = now
	it.UpdatedAt = now
	return nil
}

// AddItem inserts a new library item.
// Sets ID, AddedAt, and UpdatedAt on the struct.
// Returns ErrDuplicate if an item with the same (type, external_id) exists.
func (s *Store) AddItem(it *Item) error { return addItem(s.db, it) }

// AddItem inserts a new library item within a transaction.
func (t *Tx) AddItem(it *Item) error { return addItem(t.tx, it) }

// CreateIfAbsent inserts the item unless one with the same (type, external_id)
// already exists, in which case the existing item is returned. The insert
// relies on the unique index, so two writers racing on the same external id
// cannot both create a row.
func (s *Store) CreateIfAbsent(it *Item) (existing *Item, err error) {
	err = addItem(s.db, it)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return nil, err
	}
	existing, err = s.GetByExternalID(it.Type, it.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("fetch existing after duplicate: %w", err)
	}
	return existing, nil
}

func getItem(q querier, id int64) (*Item, error) {
	it, err := scanItem(q.QueryRow(`SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, mapSQLiteError(err))
	}
	return it, nil
}

// GetItem retrieves a library item by ID.
// Returns ErrNotFound if the item does not exist.
func (s *Store) GetItem(id int64) (*Item, error) { return getItem(s.db, id) }

// GetItem retrieves a library item by ID within a transaction.
func (t *Tx) GetItem(id int64) (*Item, error) { return getItem(t.tx, id) }

// GetByExternalID finds an item by media type and external id.
// Returns ErrNotFound if no such item exists.
func (s *Store) GetByExternalID(mediaType MediaType, externalID string) (*Item, error) {
	it, err := scanItem(s.db.QueryRow(
		`SELECT `+itemColumns+` FROM items WHERE type = ? AND external_id = ?`,
		mediaType, externalID))
	if err != nil {
		return nil, fmt.Errorf("get item %s/%s: %w", mediaType, externalID, mapSQLiteError(err))
	}
	return it, nil
}

// GetByTitleYear finds an item by exact title and year.
// Returns nil, nil if not found.
func (s *Store) GetByTitleYear(mediaType MediaType, title string, year int) (*Item, error) {
	items, _, err := s.ListItems(ItemFilter{Type: &mediaType, Title: &title, Year: &year, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func listItems(q querier, f ItemFilter) ([]*Item, int, error) {
	var conditions []string
	var args []any

	if f.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *f.Type)
	}
	if f.Monitored != nil {
		conditions = append(conditions, "monitored = ?")
		args = append(args, *f.Monitored)
	}
	if f.QualityProfileID != nil {
		conditions = append(conditions, "quality_profile_id = ?")
		args = append(args, *f.QualityProfileID)
	}
	if f.ExternalID != nil {
		conditions = append(conditions, "external_id = ?")
		args = append(args, *f.ExternalID)
	}
	if f.Title != nil {
		conditions = append(conditions, "title = ?")
		args = append(args, *f.Title)
	}
	if f.Year != nil {
		conditions = append(conditions, "year = ?")
		args = append(args, *f.Year)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM items "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := "SELECT " + itemColumns + " FROM items " + whereClause + " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}

	return results, total, nil
}

// ListItems returns library items matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(s.db, f) }

// ListItems returns library items matching the filter within a transaction.
func (t *Tx) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(t.tx, f) }

func updateItem(q querier, it *Item) error {
	now := time.Now()
	result, err := q.Exec(`
		UPDATE items SET type = ?, external_id = ?, title = ?, year = ?, monitored = ?, quality = ?,
			quality_profile_id = ?, downloaded_count = ?, expected_count = ?, root_path = ?,
			monitor = ?, minimum_availability = ?, updated_at = ?
		WHERE id = ?`,
		it.Type, it.ExternalID, it.Title, it.Year, it.Monitored, it.Quality,
		it.QualityProfileID, it.DownloadedCount, it.ExpectedCount, it.RootPath,
		it.Monitor, it.MinimumAvailability, now, it.ID,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", it.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update item %d: %w", it.ID, ErrNotFound)
	}
	it.UpdatedAt = now
	return nil
}

// UpdateItem updates an existing library item.
// Sets UpdatedAt on the struct.
// Returns ErrNotFound if the item does not exist.
func (s *Store) UpdateItem(it *Item) error { return updateItem(s.db, it) }

// UpdateItem updates an existing library item within a transaction.
func (t *Tx) UpdateItem(it *Item) error { return updateItem(t.tx, it) }

func deleteItem(q querier, id int64) error {
	_, err := q.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteItem removes a library item by ID.
// This operation is idempotent - no error is returned if the item does not exist.
func (s *Store) DeleteItem(id int64) error { return deleteItem(s.db, id) }

// DeleteItem removes a library item by ID within a transaction.
func (t *Tx) DeleteItem(id int64) error { return deleteItem(t.tx, id) }
