// Package quality classifies free-form quality labels into comparable ranks.
//
// Labels arrive from metadata providers and release names as arbitrary text
// ("Bluray-1080p", "WEBDL 2160p", "HDTV"); there is no closed vocabulary to
// validate against, so classification is heuristic by design.
package quality

import "strings"

// Rank is a comparable quality score. Higher is strictly equal-or-better.
// Computed as resolution tier * 100 + source tier, so resolution dominates
// and source breaks ties within a resolution.
type Rank int

// Resolution tiers.
const (
	ResUnknown = 0
	Res480p    = 1
	Res720p    = 2
	Res1080p   = 3
	Res2160p   = 4
)

// Source tiers. Gaps are intentional so new sources can slot between
// existing ones without renumbering.
const (
	SrcUnknown = 0
	SrcDVD     = 10
	SrcHDTV    = 20
	SrcWEBRip  = 25
	SrcWEBDL   = 30
	SrcBluray  = 40
	SrcRemux   = 50
)

// marker maps a lowercase substring to a tier. Tables are evaluated in
// order; the first matching marker wins.
type marker struct {
	substr string
	tier   int
}

var resolutionMarkers = []marker{
	{"2160", Res2160p},
	{"4k", Res2160p},
	{"uhd", Res2160p},
	{"1080", Res1080p},
	{"720", Res720p},
	{"480", Res480p},
	{"sd", Res480p},
}

// Bare "web" sits after the webrip markers so "WEBRip" is not swallowed by
// the more generic WEB-DL bucket.
var sourceMarkers = []marker{
	{"remux", SrcRemux},
	{"bluray", SrcBluray},
	{"blu-ray", SrcBluray},
	{"bdrip", SrcBluray},
	{"brrip", SrcBluray},
	{"web-dl", SrcWEBDL},
	{"webdl", SrcWEBDL},
	{"web dl", SrcWEBDL},
	{"webrip", SrcWEBRip},
	{"web-rip", SrcWEBRip},
	{"web", SrcWEBDL},
	{"hdtv", SrcHDTV},
	{"dvd", SrcDVD},
	{"sdtv", SrcDVD},
}

func classify(label string, table []marker) int {
	label = strings.ToLower(label)
	for _, m := range table {
		if strings.Contains(label, m.substr) {
			return m.tier
		}
	}
	return 0
}

// ResolutionTier returns the resolution tier for a label, 0 if unknown.
func ResolutionTier(label string) int {
	return classify(label, resolutionMarkers)
}

// SourceTier returns the source tier for a label, 0 if unknown.
func SourceTier(label string) int {
	return classify(label, sourceMarkers)
}

// RankLabel scores a quality label. Total over any input: empty or
// unrecognized labels rank 0.
func RankLabel(label string) Rank {
	return Rank(ResolutionTier(label)*100 + SourceTier(label))
}

// Better reports whether label a is strictly better than label b.
func Better(a, b string) bool {
	return RankLabel(a) > RankLabel(b)
}

// AtLeast reports whether label a meets or exceeds label b. Equal ranks
// count as met.
func AtLeast(a, b string) bool {
	return RankLabel(a) >= RankLabel(b)
}
