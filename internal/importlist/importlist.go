// Package importlist synchronizes external reference lists against the
// library: fetch, diff against library and exclusions, and apply add policy.
package importlist

import (
	"errors"
	"time"

	"github.com/vmunix/curarr/internal/library"
)

var (
	// ErrNotFound indicates the requested list config doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrSyncInFlight indicates a sync is already running for this config.
	ErrSyncInFlight = errors.New("sync already in flight")

	// ErrProviderFetch indicates the external list provider failed; nothing
	// was applied.
	ErrProviderFetch = errors.New("provider fetch failed")

	// ErrUnknownProvider indicates the config names a provider type that
	// has not been registered.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Config describes one external list subscription.
type Config struct {
	ID                  int64
	Name                string
	Provider            string // provider type, e.g. "http"
	MediaType           library.MediaType
	Enabled             bool
	AutoAdd             bool
	SearchOnAdd         bool
	QualityProfileID    *int64
	RootFolder          string
	Monitor             string // series monitor policy
	MinimumAvailability string
	ListURL             string
	RefreshInterval     time.Duration
	LastSyncAt          *time.Time
}

// Candidate is a normalized entry from an external list provider, not yet
// reconciled against the library.
type Candidate struct {
	ExternalID string            `json:"external_id"`
	Title      string            `json:"title"`
	Year       int               `json:"year"`
	MediaType  library.MediaType `json:"media_type,omitempty"`
}

// SyncResult summarizes one sync invocation. It is reported, not persisted.
type SyncResult struct {
	RunID    string   `json:"run_id"`
	ListID   int64    `json:"list_id"`
	Added    int      `json:"added"`
	Existing int      `json:"existing"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// PreviewItem annotates a candidate for display without mutating anything.
type PreviewItem struct {
	Candidate
	InLibrary bool `json:"in_library"`
	Excluded  bool `json:"excluded"`
}

// Phase is the state of one sync invocation.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseFetching Phase = "fetching"
	PhaseDiffing  Phase = "diffing"
	PhaseApplying Phase = "applying"
	PhaseDone     Phase = "done"
	PhaseFailed   Phase = "failed"
)

// validTransitions defines allowed phase transitions.
// Key is the "from" phase, value is list of valid "to" phases.
var validTransitions = map[Phase][]Phase{
	PhaseIdle:     {PhaseFetching},
	PhaseFetching: {PhaseDiffing, PhaseFailed},
	PhaseDiffing:  {PhaseApplying, PhaseDone, PhaseFailed},
	PhaseApplying: {PhaseDone, PhaseFailed},
	PhaseDone:     {},
	PhaseFailed:   {},
}

// CanTransitionTo returns true if transitioning from p to target is valid.
func (p Phase) CanTransitionTo(target Phase) bool {
	valid, ok := validTransitions[p]
	if !ok {
		return false
	}
	for _, v := range valid {
		if v == target {
			return true
		}
	}
	return false
}

// Terminal returns true if the phase has no outgoing transitions.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}
