// Package filter evaluates quality cutoff policy and user-defined filter
// conditions against library items.
package filter

import (
	"github.com/vmunix/curarr/internal/library"
	"github.com/vmunix/curarr/pkg/quality"
)

// ProfileSource resolves quality profiles by id.
type ProfileSource interface {
	GetProfile(id int64) (*library.QualityProfile, error)
}

// CutoffMet reports whether the item's acquired quality satisfies its
// profile's cutoff.
//
// The evaluation deliberately leans toward "met" whenever there is nothing
// to compare: no profile assigned, nothing downloaded, no cutoff configured,
// or no quality label recorded on the item. Flagging such items as
// upgrade-needed would generate noise the user cannot act on.
func CutoffMet(it *library.Item, profiles ProfileSource) bool {
	if it == nil {
		return true
	}
	if it.QualityProfileID == nil || !it.HasFile() {
		return true
	}
	p, err := profiles.GetProfile(*it.QualityProfileID)
	if err != nil || p == nil || p.Cutoff == "" {
		return true
	}
	if it.Quality == "" {
		return true
	}
	return quality.AtLeast(it.Quality, p.Cutoff)
}
