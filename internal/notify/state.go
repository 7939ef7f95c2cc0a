package notify

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// cursorUninitialized marks a state that has never observed the activity
// log. The first poll after it suppresses backlog instead of notifying.
const cursorUninitialized = -1

// PollState is the poller's working memory: the watermark cursor, the
// defensive seen-id set, and the feed itself. It is persisted as a unit.
type PollState struct {
	Cursor int64
	Seen   map[int64]struct{}
	Feed   []Notification
}

func newPollState() *PollState {
	return &PollState{
		Cursor: cursorUninitialized,
		Seen:   make(map[int64]struct{}),
	}
}

// StateStore persists the single poll state row.
type StateStore struct {
	db *sql.DB
}

// NewStateStore creates a notification state store.
func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

// Load restores the persisted state. A missing row yields a fresh state
// with an uninitialized cursor.
func (s *StateStore) Load() (*PollState, error) {
	var (
		st      = newPollState()
		seenRaw []byte
		feedRaw []byte
	)
	err := s.db.QueryRow(`SELECT cursor, seen_ids, feed FROM notification_state WHERE id = 1`).
		Scan(&st.Cursor, &seenRaw, &feedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load notification state: %w", err)
	}

	var seen []int64
	if err := json.Unmarshal(seenRaw, &seen); err != nil {
		return nil, fmt.Errorf("decode seen ids: %w", err)
	}
	for _, id := range seen {
		st.Seen[id] = struct{}{}
	}
	if err := json.Unmarshal(feedRaw, &st.Feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return st, nil
}

// Save writes the full state in one statement, so cursor, seen set, and
// feed can never drift apart across a crash.
func (s *StateStore) Save(st *PollState) error {
	seen := make([]int64, 0, len(st.Seen))
	for id := range st.Seen {
		seen = append(seen, id)
	}
	seenRaw, err := json.Marshal(seen)
	if err != nil {
		return fmt.Errorf("encode seen ids: %w", err)
	}

	feed := st.Feed
	if feed == nil {
		feed = []Notification{}
	}
	feedRaw, err := json.Marshal(feed)
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO notification_state (id, cursor, seen_ids, feed, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cursor = excluded.cursor,
			seen_ids = excluded.seen_ids,
			feed = excluded.feed,
			updated_at = excluded.updated_at`,
		st.Cursor, string(seenRaw), string(feedRaw), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save notification state: %w", err)
	}
	return nil
}
