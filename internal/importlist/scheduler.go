package importlist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Scheduler keeps one refresh loop per enabled list config. It reconciles
// the loop set against the store periodically, so configs added, removed,
// or retimed at runtime take effect without a restart.
type Scheduler struct {
	store             *Store
	syncer            *Syncer
	reconcileInterval time.Duration
	log               *slog.Logger

	mu    sync.Mutex
	loops map[int64]*listLoop
}

type listLoop struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewScheduler creates a scheduler that re-reads the config set every
// reconcileInterval.
func NewScheduler(store *Store, syncer *Syncer, reconcileInterval time.Duration, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if reconcileInterval <= 0 {
		reconcileInterval = time.Minute
	}
	return &Scheduler{
		store:             store,
		syncer:            syncer,
		reconcileInterval: reconcileInterval,
		log:               log.With("component", "listscheduler"),
		loops:             make(map[int64]*listLoop),
	}
}

// Run reconciles refresh loops until the context is canceled, then stops
// every loop and waits for them to drain.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("list scheduler started", "reconcile_interval", s.reconcileInterval)

	ticker := time.NewTicker(s.reconcileInterval)
	defer ticker.Stop()

	s.reconcile(ctx)
	for {
		select {
		case <-ctx.Done():
			s.stopAll()
			s.log.Info("list scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.reconcile(ctx)
		}
	}
}

// reconcile aligns running loops with enabled configs. A changed interval
// restarts the loop; the next tick uses the new timing.
func (s *Scheduler) reconcile(ctx context.Context) {
	configs, err := s.store.List(true)
	if err != nil {
		s.log.Error("load list configs", "error", err)
		return
	}

	want := make(map[int64]time.Duration, len(configs))
	for _, cfg := range configs {
		if cfg.RefreshInterval > 0 {
			want[cfg.ID] = cfg.RefreshInterval
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, loop := range s.loops {
		interval, keep := want[id]
		if keep && interval == loop.interval {
			continue
		}
		close(loop.stop)
		<-loop.done
		delete(s.loops, id)
	}

	for id, interval := range want {
		if _, running := s.loops[id]; running {
			continue
		}
		loop := &listLoop{
			interval: interval,
			stop:     make(chan struct{}),
			done:     make(chan struct{}),
		}
		s.loops[id] = loop
		// Syncs run against the scheduler's root context: disabling a
		// config stops future ticks but never aborts a run in flight.
		go s.runLoop(ctx, id, loop)
		s.log.Info("list refresh scheduled", "config_id", id, "interval", interval)
	}
}

func (s *Scheduler) runLoop(ctx context.Context, configID int64, loop *listLoop) {
	defer close(loop.done)

	ticker := time.NewTicker(loop.interval)
	defer ticker.Stop()

	for {
		select {
		case <-loop.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncOnce(ctx, configID)
		}
	}
}

func (s *Scheduler) syncOnce(ctx context.Context, configID int64) {
	result, err := s.syncer.Sync(ctx, configID)
	switch {
	case errors.Is(err, ErrSyncInFlight):
		s.log.Debug("sync already running, skipping tick", "config_id", configID)
	case errors.Is(err, ErrNotFound):
		s.log.Debug("config gone, awaiting reconcile", "config_id", configID)
	case err != nil:
		s.log.Error("scheduled sync failed", "config_id", configID, "error", err)
	default:
		s.log.Debug("scheduled sync done", "config_id", configID,
			"added", result.Added, "existing", result.Existing, "failed", result.Failed)
	}
}

func (s *Scheduler) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, loop := range s.loops {
		close(loop.stop)
		<-loop.done
		delete(s.loops, id)
	}
}
