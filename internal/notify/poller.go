package notify

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vmunix/curarr/internal/events"
)

const (
	defaultInterval = 5 * time.Second
	defaultWindow   = 30
	defaultCapacity = 50
)

// ActivitySource supplies the most recent activity events, newest first.
type ActivitySource interface {
	Recent(limit int) ([]events.Activity, error)
}

// Authorizer gates polling. When no valid credential exists nothing may be
// fetched, so no events leak pre-authentication.
type Authorizer interface {
	Authorized() bool
}

// Poller maintains the notification feed from the activity log. Only the
// poll loop mutates state; feed reads may interleave and see a slightly
// stale snapshot.
type Poller struct {
	source   ActivitySource
	store    *StateStore
	auth     Authorizer
	interval time.Duration
	window   int
	capacity int
	log      *slog.Logger

	mu    sync.Mutex
	state *PollState
}

// NewPoller creates a poller, restoring persisted state. A corrupt or
// unreadable state row degrades to a fresh cold start rather than failing:
// the persisted feed is a warm cache, the activity log is the truth.
func NewPoller(source ActivitySource, store *StateStore, auth Authorizer,
	interval time.Duration, log *slog.Logger) *Poller {

	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = defaultInterval
	}

	state, err := store.Load()
	if err != nil {
		log.Warn("restore notification state failed, starting fresh", "error", err)
		state = newPollState()
	}

	return &Poller{
		source:   source,
		store:    store,
		auth:     auth,
		interval: interval,
		window:   defaultWindow,
		capacity: defaultCapacity,
		log:      log.With("component", "notify"),
		state:    state,
	}
}

// Run polls on a fixed cadence until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info("notification poller started", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("notification poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll fetches recent activity and folds new events into the feed,
// returning the notifications created this round. Fetch errors are
// swallowed: the cursor stays put and the next tick retries.
func (p *Poller) Poll() []Notification {
	if p.auth != nil && !p.auth.Authorized() {
		return nil
	}

	activities, err := p.source.Recent(p.window)
	if err != nil {
		p.log.Warn("activity fetch failed", "error", err)
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	maxID := p.state.Cursor
	for _, a := range activities {
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	// Cold start: swallow the backlog, start watching from here.
	if p.state.Cursor == cursorUninitialized {
		if maxID < 0 {
			maxID = 0
		}
		p.state.Cursor = maxID
		p.persistLocked()
		return nil
	}

	var fresh []events.Activity
	for _, a := range activities {
		if !notifiable[a.Type] || a.ID <= p.state.Cursor {
			continue
		}
		if _, seen := p.state.Seen[a.ID]; seen {
			continue
		}
		fresh = append(fresh, a)
	}

	advanced := maxID > p.state.Cursor
	if advanced {
		p.state.Cursor = maxID
	}
	if len(fresh) == 0 {
		if advanced {
			p.persistLocked()
		}
		return nil
	}

	// Prepend oldest-of-the-batch first so the feed stays newest-first.
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].ID < fresh[j].ID })
	batch := make([]Notification, 0, len(fresh))
	for _, a := range fresh {
		p.state.Seen[a.ID] = struct{}{}
		n := fromActivity(a)
		batch = append([]Notification{n}, batch...)
	}
	p.state.Feed = append(batch, p.state.Feed...)
	if len(p.state.Feed) > p.capacity {
		p.state.Feed = p.state.Feed[:p.capacity]
	}

	p.pruneSeenLocked()
	p.persistLocked()
	return batch
}

// pruneSeenLocked drops seen ids that trail the cursor by more than the
// fetch window; they can no longer appear in a Recent call.
func (p *Poller) pruneSeenLocked() {
	horizon := p.state.Cursor - int64(p.window)
	for id := range p.state.Seen {
		if id <= horizon {
			delete(p.state.Seen, id)
		}
	}
}

func (p *Poller) persistLocked() {
	if err := p.store.Save(p.state); err != nil {
		p.log.Error("persist notification state", "error", err)
	}
}

// Feed returns a snapshot of the feed, newest first.
func (p *Poller) Feed() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, len(p.state.Feed))
	copy(out, p.state.Feed)
	return out
}

// UnreadCount returns the number of unread notifications.
func (p *Poller) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, n := range p.state.Feed {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read.
// Returns ErrNotFound if it is not in the feed.
func (p *Poller) MarkRead(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.state.Feed {
		if p.state.Feed[i].ID == id {
			p.state.Feed[i].Read = true
			p.persistLocked()
			return nil
		}
	}
	return ErrNotFound
}

// MarkAllRead marks every notification in the feed read.
func (p *Poller) MarkAllRead() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.state.Feed {
		p.state.Feed[i].Read = true
	}
	p.persistLocked()
}

// Remove drops one notification from the feed. Its id stays in the seen
// set, so it will not reappear on the next poll.
// Returns ErrNotFound if it is not in the feed.
func (p *Poller) Remove(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.state.Feed {
		if p.state.Feed[i].ID == id {
			p.state.Feed = append(p.state.Feed[:i], p.state.Feed[i+1:]...)
			p.persistLocked()
			return nil
		}
	}
	return ErrNotFound
}

// ClearAll forgets everything: feed, seen set, and cursor. The next poll
// behaves like a cold start and swallows the backlog again.
func (p *Poller) ClearAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = newPollState()
	p.persistLocked()
}
