package events

import (
	"context"
	"log/slog"
	"sync"
)

// Bus is the central activity bus for pub/sub.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Type][]chan Activity // event type -> channels
	allSubs     []chan Activity          // subscribers to all events
	log         *Log                     // SQLite persistence (may be nil)
	logger      *slog.Logger
	closed      bool
}

// NewBus creates a new activity bus.
// The Log is optional - pass nil to disable persistence.
func NewBus(log *Log, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[Type][]chan Activity),
		log:         log,
		logger:      logger,
	}
}

// Publish persists the activity and delivers it to all subscribers.
// Returns the activity with its log-assigned ID set.
func (b *Bus) Publish(ctx context.Context, a Activity) Activity {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return a
	}

	if b.log != nil {
		id, err := b.log.Append(a)
		if err != nil {
			b.logger.Error("failed to persist activity", "type", a.Type, "error", err)
			// Continue - delivery is more important than persistence
		} else {
			a.ID = id
		}
	}

	// Deliver while holding the read lock. Close and Unsubscribe take the
	// write lock before closing a channel, so no channel can be closed
	// between the closed recheck and a send. Sends never block, so the
	// lock is held only briefly.
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return a
	}

	for _, ch := range b.subscribers[a.Type] {
		select {
		case ch <- a:
		default:
			b.logger.Warn("subscriber channel full, dropping activity",
				"type", a.Type,
				"entity_type", a.EntityType,
				"entity_id", a.EntityID)
		}
	}

	for _, ch := range b.allSubs {
		select {
		case ch <- a:
		default:
			b.logger.Warn("all-subscriber channel full, dropping activity",
				"type", a.Type)
		}
	}

	return a
}

// Subscribe returns a channel for activity of a specific type.
func (b *Bus) Subscribe(eventType Type, bufferSize int) <-chan Activity {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Activity, bufferSize)
	b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	return ch
}

// SubscribeAll returns a channel for all activity.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Activity {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Activity, bufferSize)
	b.allSubs = append(b.allSubs, ch)
	return ch
}

// Unsubscribe removes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Activity) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscribers {
		for i, sub := range subs {
			if sub == ch {
				b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				close(sub)
				return
			}
		}
	}

	for i, sub := range b.allSubs {
		if sub == ch {
			b.allSubs = append(b.allSubs[:i], b.allSubs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	b.subscribers = nil

	for _, ch := range b.allSubs {
		close(ch)
	}
	b.allSubs = nil

	return nil
}
