package library

import (
	"fmt"
)

func addProfile(q querier, p *QualityProfile) error {
	result, err := q.Exec(`
		INSERT INTO quality_profiles (name, cutoff, media_type)
		VALUES (?, ?, ?)`,
		p.Name, p.Cutoff, p.MediaType,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// AddProfile inserts a new quality profile. Sets ID on the struct.
func (s *Store) AddProfile(p *QualityProfile) error { return addProfile(s.db, p) }

// AddProfile inserts a new quality profile within a transaction.
func (t *Tx) AddProfile(p *QualityProfile) error { return addProfile(t.tx, p) }

func getProfile(q querier, id int64) (*QualityProfile, error) {
	p := &QualityProfile{}
	err := q.QueryRow(`
		SELECT id, name, cutoff, media_type FROM quality_profiles WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Cutoff, &p.MediaType)
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", id, mapSQLiteError(err))
	}
	return p, nil
}

// GetProfile retrieves a quality profile by ID.
// Returns ErrNotFound if the profile does not exist.
func (s *Store) GetProfile(id int64) (*QualityProfile, error) { return getProfile(s.db, id) }

// GetProfile retrieves a quality profile by ID within a transaction.
func (t *Tx) GetProfile(id int64) (*QualityProfile, error) { return getProfile(t.tx, id) }

// ListProfiles returns all quality profiles ordered by name.
func (s *Store) ListProfiles() ([]*QualityProfile, error) {
	rows, err := s.db.Query(`SELECT id, name, cutoff, media_type FROM quality_profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*QualityProfile
	for rows.Next() {
		p := &QualityProfile{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Cutoff, &p.MediaType); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return results, nil
}

// UpdateProfile updates an existing quality profile.
// Returns ErrNotFound if the profile does not exist.
func (s *Store) UpdateProfile(p *QualityProfile) error {
	result, err := s.db.Exec(`
		UPDATE quality_profiles SET name = ?, cutoff = ?, media_type = ? WHERE id = ?`,
		p.Name, p.Cutoff, p.MediaType, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile %d: %w", p.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update profile %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeleteProfile removes a quality profile by ID. Idempotent.
func (s *Store) DeleteProfile(id int64) error {
	_, err := s.db.Exec("DELETE FROM quality_profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete profile %d: %w", id, mapSQLiteError(err))
	}
	return nil
}
