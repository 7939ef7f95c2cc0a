// Package server runs the daemon's background components under one
// lifecycle: the list sync scheduler, the notification poller, the search
// queue consumer, and the activity log housekeeping.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/importlist"
	"github.com/vmunix/curarr/internal/notify"
	"golang.org/x/sync/errgroup"
)

const (
	// wakeBuffer sizes the bus subscription channels. A full channel only
	// costs wake latency; the poll ticker still covers dropped wakes.
	wakeBuffer = 16

	defaultPruneEvery = time.Hour
	defaultRetention  = 30 * 24 * time.Hour
)

// Runner manages the background components. Each runs until the shared
// context is canceled; one failing cancels the rest.
type Runner struct {
	scheduler *importlist.Scheduler
	poller    *notify.Poller
	trigger   *importlist.QueueTrigger
	bus       *events.Bus
	eventLog  *events.Log
	logger    *slog.Logger

	pruneEvery time.Duration
	retention  time.Duration
}

// NewRunner creates a runner. Nil components are skipped, so a stripped
// deployment (or test) can run a subset.
func NewRunner(scheduler *importlist.Scheduler, poller *notify.Poller,
	trigger *importlist.QueueTrigger, bus *events.Bus, eventLog *events.Log,
	logger *slog.Logger) *Runner {

	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		scheduler:  scheduler,
		poller:     poller,
		trigger:    trigger,
		bus:        bus,
		eventLog:   eventLog,
		logger:     logger.With("component", "runner"),
		pruneEvery: defaultPruneEvery,
		retention:  defaultRetention,
	}
}

// Run starts all background components and blocks until the context is
// canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if r.scheduler != nil {
		g.Go(func() error { return r.scheduler.Run(ctx) })
	}
	if r.poller != nil {
		g.Go(func() error { return r.poller.Run(ctx) })
	}
	if r.trigger != nil {
		g.Go(func() error { return r.trigger.Run(ctx) })
	}
	if r.poller != nil && r.bus != nil {
		ch := r.bus.SubscribeAll(wakeBuffer)
		g.Go(func() error { return r.wakePoller(ctx, ch) })
	}
	if r.bus != nil {
		ch := r.bus.Subscribe(events.TypeFailed, wakeBuffer)
		g.Go(func() error { return r.logFailures(ctx, ch) })
	}
	if r.eventLog != nil {
		g.Go(func() error { return r.pruneActivity(ctx) })
	}

	r.logger.Info("background components started")
	return g.Wait()
}

// wakePoller polls as soon as activity is published instead of waiting out
// the poll interval, so notifications land right after the event.
func (r *Runner) wakePoller(ctx context.Context, ch <-chan events.Activity) error {
	defer r.bus.Unsubscribe(ch)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			r.poller.Poll()
		}
	}
}

// logFailures surfaces failure events in the daemon log, so operators see
// them without opening the notification feed.
func (r *Runner) logFailures(ctx context.Context, ch <-chan events.Activity) error {
	defer r.bus.Unsubscribe(ch)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a, ok := <-ch:
			if !ok {
				return nil
			}
			r.logger.Warn("failure event",
				"message", a.Message,
				"entity_type", a.EntityType,
				"entity_id", a.EntityID)
		}
	}
}

// pruneActivity trims aged-out rows from the activity log on a fixed
// cadence. The notification cursor only moves forward, so dropping old
// rows never resurfaces anything.
func (r *Runner) pruneActivity(ctx context.Context) error {
	ticker := time.NewTicker(r.pruneEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := r.eventLog.Prune(r.retention)
			if err != nil {
				r.logger.Error("prune activity log", "error", err)
			} else if removed > 0 {
				r.logger.Info("pruned activity log", "removed", removed)
			}
		}
	}
}
