package filter

import (
	"strings"
	"time"

	"github.com/vmunix/curarr/internal/library"
	"github.com/vmunix/curarr/pkg/quality"
)

// Conditions holds the optional predicates of a custom filter. A nil field
// is a wildcard: the condition is skipped entirely.
type Conditions struct {
	Monitored        *bool
	HasFile          *bool
	CutoffMet        *bool
	QualityProfileID *int64
	Quality          *string // exact label, or a bare resolution token like "1080p"
	MinYear          *int
	MaxYear          *int
}

// CustomFilter is a user-defined, ordered filter over library items.
type CustomFilter struct {
	ID       int64
	Name     string
	Position int
	Conditions
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches evaluates every present condition conjunctively. It is total:
// items with missing optional fields fail only the conditions that
// reference those fields.
func Matches(it *library.Item, f *CustomFilter, profiles ProfileSource) bool {
	if it == nil || f == nil {
		return false
	}
	c := f.Conditions

	if c.Monitored != nil && it.Monitored != *c.Monitored {
		return false
	}
	if c.HasFile != nil && it.HasFile() != *c.HasFile {
		return false
	}
	if c.CutoffMet != nil {
		// Cutoff status is undefined for items with nothing on disk, so a
		// cutoff condition of either polarity excludes them.
		if !it.HasFile() {
			return false
		}
		if CutoffMet(it, profiles) != *c.CutoffMet {
			return false
		}
	}
	if c.QualityProfileID != nil {
		if it.QualityProfileID == nil || *it.QualityProfileID != *c.QualityProfileID {
			return false
		}
	}
	if c.Quality != nil && !qualityMatches(it.Quality, *c.Quality) {
		return false
	}
	if c.MinYear != nil && (it.Year == 0 || it.Year < *c.MinYear) {
		return false
	}
	if c.MaxYear != nil && (it.Year == 0 || it.Year > *c.MaxYear) {
		return false
	}
	return true
}

// resolutionTokens are the filter values treated as resolution groups
// rather than exact labels.
var resolutionTokens = map[string]int{
	"2160p": quality.Res2160p,
	"4k":    quality.Res2160p,
	"uhd":   quality.Res2160p,
	"1080p": quality.Res1080p,
	"720p":  quality.Res720p,
	"480p":  quality.Res480p,
	"sd":    quality.Res480p,
}

// qualityMatches compares an item's quality label against a filter value.
// A bare resolution token matches any label in that resolution group;
// anything else must match the label exactly (case-insensitive).
func qualityMatches(label, want string) bool {
	if strings.EqualFold(label, want) {
		return true
	}
	if tier, ok := resolutionTokens[strings.ToLower(strings.TrimSpace(want))]; ok {
		return label != "" && quality.ResolutionTier(label) == tier
	}
	return false
}

// Apply returns the items matching the filter, preserving input order.
func Apply(items []*library.Item, f *CustomFilter, profiles ProfileSource) []*library.Item {
	var out []*library.Item
	for _, it := range items {
		if Matches(it, f, profiles) {
			out = append(out, it)
		}
	}
	return out
}
