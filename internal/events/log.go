package events

import (
	"database/sql"
	"fmt"
	"time"
)

// Log persists activity events to SQLite.
type Log struct {
	db *sql.DB
}

// NewLog creates a new activity log.
func NewLog(db *sql.DB) *Log {
	return &Log{db: db}
}

// Append persists an activity event and returns its assigned ID.
func (l *Log) Append(a Activity) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	result, err := l.db.Exec(`
		INSERT INTO activity_events (event_type, label, message, entity_type, entity_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Type, a.Label, a.Message, a.EntityType, a.EntityID, a.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert activity: %w", err)
	}
	return result.LastInsertId()
}

// Recent returns the most recent events, newest first.
func (l *Log) Recent(limit int) ([]Activity, error) {
	rows, err := l.db.Query(`
		SELECT id, event_type, label, message, entity_type, entity_id, created_at
		FROM activity_events
		ORDER BY id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanActivities(rows)
}

// Since returns all events with an id greater than afterID, oldest first.
func (l *Log) Since(afterID int64) ([]Activity, error) {
	rows, err := l.db.Query(`
		SELECT id, event_type, label, message, entity_type, entity_id, created_at
		FROM activity_events
		WHERE id > ?
		ORDER BY id ASC`, afterID,
	)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanActivities(rows)
}

// Prune removes events older than the given duration.
func (l *Log) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := l.db.Exec(`DELETE FROM activity_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune activity: %w", err)
	}
	return result.RowsAffected()
}

func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var events []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Label, &a.Message, &a.EntityType, &a.EntityID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		events = append(events, a)
	}
	return events, rows.Err()
}
