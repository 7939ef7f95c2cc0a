package importlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/library"
)

// Syncer runs list synchronization: fetch candidates, diff them against the
// library and exclusion set, and apply the add policy. At most one sync per
// config id runs at a time.
type Syncer struct {
	store        *Store
	lib          *library.Store
	bus          *events.Bus
	trigger      SearchTrigger
	providers    map[string]Provider
	fetchTimeout time.Duration
	log          *slog.Logger

	mu     sync.Mutex
	phases map[int64]Phase
}

// NewSyncer creates a syncer. Providers are registered separately.
func NewSyncer(store *Store, lib *library.Store, bus *events.Bus, trigger SearchTrigger,
	fetchTimeout time.Duration, log *slog.Logger) *Syncer {

	if log == nil {
		log = slog.Default()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Syncer{
		store:        store,
		lib:          lib,
		bus:          bus,
		trigger:      trigger,
		providers:    make(map[string]Provider),
		fetchTimeout: fetchTimeout,
		log:          log.With("component", "importlist"),
		phases:       make(map[int64]Phase),
	}
}

// RegisterProvider makes a provider available under the given type name.
func (s *Syncer) RegisterProvider(name string, p Provider) {
	s.providers[name] = p
}

// Status returns the phase of the most recent sync for a config.
func (s *Syncer) Status(configID int64) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.phases[configID]; ok {
		return p
	}
	return PhaseIdle
}

// acquire reserves the config for a sync run. Fails with ErrSyncInFlight if
// a run is already between Fetching and Applying. Reservation and the phase
// check happen under one lock: a successful acquire moves the config straight
// to Fetching, so a concurrent acquire can never slip in between.
func (s *Syncer) acquire(configID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.phases[configID]; ok && p != PhaseIdle && !p.Terminal() {
		return ErrSyncInFlight
	}
	s.phases[configID] = PhaseFetching
	return nil
}

func (s *Syncer) setPhase(configID int64, next Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.phases[configID]
	if !ok {
		cur = PhaseIdle
	}
	if !cur.CanTransitionTo(next) {
		s.log.Error("invalid sync phase transition", "config_id", configID, "from", cur, "to", next)
		return
	}
	s.phases[configID] = next
}

// Sync runs one full synchronization for the config. Individual item
// failures are collected in the result; only a provider or storage failure
// before the apply step fails the run as a whole.
func (s *Syncer) Sync(ctx context.Context, configID int64) (*SyncResult, error) {
	cfg, err := s.store.Get(configID)
	if err != nil {
		return nil, err
	}
	if err := s.acquire(configID); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := s.log.With("run_id", runID, "list", cfg.Name)
	result := &SyncResult{RunID: runID, ListID: configID}

	entries, err := s.collect(ctx, cfg)
	if err != nil {
		s.setPhase(configID, PhaseFailed)
		result.Message = err.Error()
		log.Error("sync failed", "error", err)
		s.bus.Publish(ctx, events.New(events.TypeFailed,
			fmt.Sprintf("List %s sync failed: %v", cfg.Name, err)).
			WithEntity("list", configID).
			WithLabel("List Sync Failed"))
		return result, err
	}

	// Diff outcome: existing items count, excluded candidates vanish
	// silently, the rest are pending adds.
	var pending []Candidate
	for _, e := range entries {
		switch {
		case e.existing:
			result.Existing++
		case e.excluded:
			// No counter at all; permanently suppressed.
		default:
			pending = append(pending, e.Candidate)
		}
	}

	if cfg.AutoAdd {
		s.setPhase(configID, PhaseApplying)
		s.apply(ctx, cfg, pending, result, log)
	} else if len(pending) > 0 {
		result.Message = fmt.Sprintf("auto-add disabled; %d candidates not in library", len(pending))
	}

	s.setPhase(configID, PhaseDone)
	if err := s.store.TouchLastSync(configID, time.Now()); err != nil {
		log.Error("record last sync", "error", err)
	}

	log.Info("sync finished",
		"added", result.Added, "existing", result.Existing, "failed", result.Failed)
	s.bus.Publish(ctx, events.New(events.TypeListSynced,
		fmt.Sprintf("List %s synced: %d added, %d existing, %d failed",
			cfg.Name, result.Added, result.Existing, result.Failed)).
		WithEntity("list", configID).
		WithLabel("List Synced"))

	return result, nil
}

// Preview fetches and diffs without applying. It shares the fetch+diff path
// with Sync but has no way to reach the apply step, and takes no part in
// the in-flight phase tracking since it mutates nothing.
func (s *Syncer) Preview(ctx context.Context, configID int64) ([]PreviewItem, error) {
	cfg, err := s.store.Get(configID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.fetch(ctx, cfg)
	if err != nil {
		return nil, err
	}
	entries, err := s.diff(cfg, candidates)
	if err != nil {
		return nil, err
	}

	preview := make([]PreviewItem, len(entries))
	for i, e := range entries {
		preview[i] = PreviewItem{Candidate: e.Candidate, InLibrary: e.existing, Excluded: e.excluded}
	}
	return preview, nil
}

// collect runs the fetch and diff steps for a sync run. The config is
// already in Fetching when this is called; acquire put it there.
func (s *Syncer) collect(ctx context.Context, cfg *Config) ([]diffEntry, error) {
	candidates, err := s.fetch(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s.setPhase(cfg.ID, PhaseDiffing)
	return s.diff(cfg, candidates)
}

func (s *Syncer) fetch(ctx context.Context, cfg *Config) ([]Candidate, error) {
	provider, ok := s.providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	candidates, err := provider.Fetch(fctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFetch, err)
	}
	return candidates, nil
}

type diffEntry struct {
	Candidate
	existing bool
	excluded bool
}

// diff classifies candidates in provider order: present in the library
// (external id first, title+year fallback), excluded, or pending add.
func (s *Syncer) diff(cfg *Config, candidates []Candidate) ([]diffEntry, error) {
	entries := make([]diffEntry, 0, len(candidates))
	for _, cand := range candidates {
		if cand.MediaType == "" {
			cand.MediaType = cfg.MediaType
		}

		inLibrary, err := s.inLibrary(cand)
		if err != nil {
			return nil, fmt.Errorf("diff %q: %w", cand.Title, err)
		}
		entry := diffEntry{Candidate: cand, existing: inLibrary}

		if !inLibrary {
			excluded, err := s.lib.IsExcluded(cand.MediaType, cand.ExternalID)
			if err != nil {
				return nil, fmt.Errorf("diff %q: %w", cand.Title, err)
			}
			entry.excluded = excluded
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Syncer) inLibrary(cand Candidate) (bool, error) {
	_, err := s.lib.GetByExternalID(cand.MediaType, cand.ExternalID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, library.ErrNotFound) {
		return false, err
	}

	// Fallback: title and year, exact first, then fuzzy against same-year
	// items. Lists from different providers rarely agree on external ids.
	if cand.Year == 0 {
		return false, nil
	}
	it, err := s.lib.GetByTitleYear(cand.MediaType, cand.Title, cand.Year)
	if err != nil {
		return false, err
	}
	if it != nil {
		return true, nil
	}

	sameYear, _, err := s.lib.ListItems(library.ItemFilter{Type: &cand.MediaType, Year: &cand.Year})
	if err != nil {
		return false, err
	}
	for _, existing := range sameYear {
		if titlesMatch(cand.Title, existing.Title) {
			return true, nil
		}
	}
	return false, nil
}

// apply creates library entries for pending candidates. Items are applied
// independently, in order; one failure never rolls back or blocks others.
func (s *Syncer) apply(ctx context.Context, cfg *Config, pending []Candidate,
	result *SyncResult, log *slog.Logger) {

	for _, cand := range pending {
		it := newItem(cfg, cand)
		existing, err := s.lib.CreateIfAbsent(it)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", cand.Title, err))
			log.Warn("add failed", "title", cand.Title, "error", err)
			s.bus.Publish(ctx, events.New(events.TypeFailed,
				fmt.Sprintf("Failed to add %s from list %s: %v", cand.Title, cfg.Name, err)).
				WithLabel("Add Failed"))
			continue
		}
		if existing != nil {
			// Another config won the race for this external id.
			result.Existing++
			continue
		}

		result.Added++
		log.Info("item added", "title", cand.Title, "item_id", it.ID)
		s.bus.Publish(ctx, events.New(events.TypeItemAdded,
			fmt.Sprintf("Added %s (%d) from list %s", cand.Title, cand.Year, cfg.Name)).
			WithEntity("item", it.ID).
			WithLabel("Item Added"))

		if cfg.SearchOnAdd && s.trigger != nil {
			s.trigger.Enqueue(it.ID)
		}
	}
}

func newItem(cfg *Config, cand Candidate) *library.Item {
	expected := 0
	if cand.MediaType == library.MediaMovie {
		expected = 1
	}
	return &library.Item{
		Type:                cand.MediaType,
		ExternalID:          cand.ExternalID,
		Title:               cand.Title,
		Year:                cand.Year,
		Monitored:           cfg.Monitor != "none",
		QualityProfileID:    cfg.QualityProfileID,
		ExpectedCount:       expected,
		RootPath:            cfg.RootFolder,
		Monitor:             cfg.Monitor,
		MinimumAvailability: cfg.MinimumAvailability,
	}
}
