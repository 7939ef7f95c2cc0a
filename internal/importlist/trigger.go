package importlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/library"
)

// SearchTrigger requests a search for a newly added item. Enqueue is
// one-way: it never blocks and its failure never affects the caller.
type SearchTrigger interface {
	Enqueue(itemID int64)
}

// QueueTrigger is a channel-backed SearchTrigger. A single consumer loop
// records a grab activity for each queued item; when the queue is full the
// request is dropped and logged.
type QueueTrigger struct {
	ch  chan int64
	lib *library.Store
	bus *events.Bus
	log *slog.Logger
}

// NewQueueTrigger creates a trigger with the given queue capacity.
func NewQueueTrigger(capacity int, lib *library.Store, bus *events.Bus, log *slog.Logger) *QueueTrigger {
	if log == nil {
		log = slog.Default()
	}
	if capacity <= 0 {
		capacity = 64
	}
	return &QueueTrigger{
		ch:  make(chan int64, capacity),
		lib: lib,
		bus: bus,
		log: log.With("component", "searchtrigger"),
	}
}

// Enqueue requests a search for the item. Non-blocking: a full queue drops
// the request with a warning.
func (t *QueueTrigger) Enqueue(itemID int64) {
	select {
	case t.ch <- itemID:
	default:
		t.log.Warn("search queue full, dropping request", "item_id", itemID)
	}
}

// Run consumes the queue until the context is canceled.
func (t *QueueTrigger) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case itemID := <-t.ch:
			t.handle(ctx, itemID)
		}
	}
}

func (t *QueueTrigger) handle(ctx context.Context, itemID int64) {
	it, err := t.lib.GetItem(itemID)
	if err != nil {
		t.log.Warn("search trigger for unknown item", "item_id", itemID, "error", err)
		return
	}

	t.log.Info("search queued", "item_id", itemID, "title", it.Title)
	t.bus.Publish(ctx, events.New(events.TypeGrabbed,
		fmt.Sprintf("Search started for %s (%d)", it.Title, it.Year)).
		WithEntity("item", itemID))
}
