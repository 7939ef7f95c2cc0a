package importlist

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store persists import list configurations.
type Store struct {
	db *sql.DB
}

// NewStore creates a new import list store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const listColumns = `id, name, provider, media_type, enabled, auto_add, search_on_add,
	quality_profile_id, root_folder, monitor, minimum_availability, list_url,
	refresh_interval_minutes, last_sync_at`

func scanList(row interface{ Scan(...any) error }) (*Config, error) {
	c := &Config{}
	var intervalMinutes int64
	err := row.Scan(&c.ID, &c.Name, &c.Provider, &c.MediaType, &c.Enabled, &c.AutoAdd,
		&c.SearchOnAdd, &c.QualityProfileID, &c.RootFolder, &c.Monitor,
		&c.MinimumAvailability, &c.ListURL, &intervalMinutes, &c.LastSyncAt)
	if err != nil {
		return nil, err
	}
	c.RefreshInterval = time.Duration(intervalMinutes) * time.Minute
	return c, nil
}

// Add inserts a new list config. Sets ID on the struct.
func (s *Store) Add(c *Config) error {
	result, err := s.db.Exec(`
		INSERT INTO import_lists (name, provider, media_type, enabled, auto_add, search_on_add,
			quality_profile_id, root_folder, monitor, minimum_availability, list_url,
			refresh_interval_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Provider, c.MediaType, c.Enabled, c.AutoAdd, c.SearchOnAdd,
		c.QualityProfileID, c.RootFolder, c.Monitor, c.MinimumAvailability, c.ListURL,
		int64(c.RefreshInterval/time.Minute),
	)
	if err != nil {
		return fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	c.ID = id
	return nil
}

// Get retrieves a list config by ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) Get(id int64) (*Config, error) {
	c, err := scanList(s.db.QueryRow(`SELECT `+listColumns+` FROM import_lists WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get list %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get list %d: %w", id, err)
	}
	return c, nil
}

// List returns all list configs. Pass enabledOnly to restrict to enabled ones.
func (s *Store) List(enabledOnly bool) ([]*Config, error) {
	query := `SELECT ` + listColumns + ` FROM import_lists`
	if enabledOnly {
		query += ` WHERE enabled = 1`
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Config
	for rows.Next() {
		c, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}
	return results, nil
}

// Update replaces an existing list config.
// Returns ErrNotFound if it does not exist.
func (s *Store) Update(c *Config) error {
	result, err := s.db.Exec(`
		UPDATE import_lists SET name = ?, provider = ?, media_type = ?, enabled = ?,
			auto_add = ?, search_on_add = ?, quality_profile_id = ?, root_folder = ?,
			monitor = ?, minimum_availability = ?, list_url = ?, refresh_interval_minutes = ?
		WHERE id = ?`,
		c.Name, c.Provider, c.MediaType, c.Enabled, c.AutoAdd, c.SearchOnAdd,
		c.QualityProfileID, c.RootFolder, c.Monitor, c.MinimumAvailability, c.ListURL,
		int64(c.RefreshInterval/time.Minute), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update list %d: %w", c.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update list %d: %w", c.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a list config by ID. Idempotent.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM import_lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete list %d: %w", id, err)
	}
	return nil
}

// TouchLastSync records a completed sync. Only called when a sync run
// reaches its terminal Done phase.
func (s *Store) TouchLastSync(id int64, at time.Time) error {
	result, err := s.db.Exec("UPDATE import_lists SET last_sync_at = ? WHERE id = ?", at, id)
	if err != nil {
		return fmt.Errorf("touch last sync %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("touch last sync %d: %w", id, ErrNotFound)
	}
	return nil
}
