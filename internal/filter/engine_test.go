package filter

import (
	"testing"

	"github.com/vmunix/curarr/internal/library"
)

func TestMatches_Conjunctive(t *testing.T) {
	f := &CustomFilter{Name: "recent monitored", Conditions: Conditions{
		Monitored: ptr(true),
		MinYear:   ptr(2010),
	}}

	match := &library.Item{Type: library.MediaMovie, Monitored: true, Year: 2015}
	if !Matches(match, f, fakeProfiles{}) {
		t.Error("monitored 2015 item should match")
	}

	unmonitored := &library.Item{Type: library.MediaMovie, Monitored: false, Year: 2015}
	if Matches(unmonitored, f, fakeProfiles{}) {
		t.Error("unmonitored item should not match")
	}

	tooOld := &library.Item{Type: library.MediaMovie, Monitored: true, Year: 2005}
	if Matches(tooOld, f, fakeProfiles{}) {
		t.Error("2005 item should not match minYear 2010")
	}
}

func TestMatches_EmptyFilterIsWildcard(t *testing.T) {
	f := &CustomFilter{Name: "everything"}
	it := &library.Item{Type: library.MediaSeries}
	if !Matches(it, f, fakeProfiles{}) {
		t.Error("filter with no conditions should match any item")
	}
}

func TestMatches_CutoffMetUndefinedWithoutFile(t *testing.T) {
	profiles := fakeProfiles{
		1: {ID: 1, Name: "HD", Cutoff: "Bluray-1080p"},
	}
	noFile := &library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1))}

	// Either polarity of the cutoffMet condition excludes items with
	// nothing downloaded.
	wantMet := &CustomFilter{Conditions: Conditions{CutoffMet: ptr(true)}}
	if Matches(noFile, wantMet, profiles) {
		t.Error("cutoffMet=true should not match item without file")
	}
	wantUnmet := &CustomFilter{Conditions: Conditions{CutoffMet: ptr(false)}}
	if Matches(noFile, wantUnmet, profiles) {
		t.Error("cutoffMet=false should not match item without file")
	}
}

func TestMatches_CutoffMet(t *testing.T) {
	profiles := fakeProfiles{
		1: {ID: 1, Name: "HD", Cutoff: "Bluray-1080p"},
	}
	met := &library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1)),
		DownloadedCount: 1, Quality: "Remux-1080p"}
	unmet := &library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1)),
		DownloadedCount: 1, Quality: "HDTV-720p"}

	wantMet := &CustomFilter{Conditions: Conditions{CutoffMet: ptr(true)}}
	wantUnmet := &CustomFilter{Conditions: Conditions{CutoffMet: ptr(false)}}

	if !Matches(met, wantMet, profiles) {
		t.Error("met item should match cutoffMet=true")
	}
	if Matches(met, wantUnmet, profiles) {
		t.Error("met item should not match cutoffMet=false")
	}
	if !Matches(unmet, wantUnmet, profiles) {
		t.Error("unmet item should match cutoffMet=false")
	}
	if Matches(unmet, wantMet, profiles) {
		t.Error("unmet item should not match cutoffMet=true")
	}
}

func TestMatches_QualityExactAndGroup(t *testing.T) {
	it := &library.Item{Type: library.MediaMovie, Quality: "Bluray-1080p"}

	exact := &CustomFilter{Conditions: Conditions{Quality: ptr("bluray-1080p")}}
	if !Matches(it, exact, fakeProfiles{}) {
		t.Error("exact label should match case-insensitively")
	}

	group := &CustomFilter{Conditions: Conditions{Quality: ptr("1080p")}}
	if !Matches(it, group, fakeProfiles{}) {
		t.Error("resolution token should match any 1080p label")
	}

	otherLabel := &CustomFilter{Conditions: Conditions{Quality: ptr("WEBDL-1080p")}}
	if Matches(it, otherLabel, fakeProfiles{}) {
		t.Error("a full label value must match exactly, not by resolution group")
	}

	wrongGroup := &CustomFilter{Conditions: Conditions{Quality: ptr("720p")}}
	if Matches(it, wrongGroup, fakeProfiles{}) {
		t.Error("720p token should not match a 1080p label")
	}

	noLabel := &library.Item{Type: library.MediaMovie}
	if Matches(noLabel, group, fakeProfiles{}) {
		t.Error("item without a quality label should fail quality conditions")
	}
}

func TestMatches_QualityProfileID(t *testing.T) {
	f := &CustomFilter{Conditions: Conditions{QualityProfileID: ptr(int64(2))}}

	assigned := &library.Item{QualityProfileID: ptr(int64(2))}
	if !Matches(assigned, f, fakeProfiles{}) {
		t.Error("matching profile id should match")
	}
	other := &library.Item{QualityProfileID: ptr(int64(3))}
	if Matches(other, f, fakeProfiles{}) {
		t.Error("different profile id should not match")
	}
	unassigned := &library.Item{}
	if Matches(unassigned, f, fakeProfiles{}) {
		t.Error("item without profile should fail the profile condition")
	}
}

func TestMatches_YearBoundsInclusive(t *testing.T) {
	f := &CustomFilter{Conditions: Conditions{MinYear: ptr(2010), MaxYear: ptr(2020)}}

	for year, want := range map[int]bool{2010: true, 2020: true, 2015: true, 2009: false, 2021: false} {
		it := &library.Item{Year: year}
		if got := Matches(it, f, fakeProfiles{}); got != want {
			t.Errorf("year %d: Matches = %v, want %v", year, got, want)
		}
	}

	// Missing year fails year conditions, nothing else.
	noYear := &library.Item{Monitored: true}
	if Matches(noYear, f, fakeProfiles{}) {
		t.Error("item without year should fail year conditions")
	}
	onlyMonitored := &CustomFilter{Conditions: Conditions{Monitored: ptr(true)}}
	if !Matches(noYear, onlyMonitored, fakeProfiles{}) {
		t.Error("item without year should still match non-year conditions")
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	items := []*library.Item{
		{ID: 1, Monitored: true},
		{ID: 2, Monitored: false},
		{ID: 3, Monitored: true},
	}
	f := &CustomFilter{Conditions: Conditions{Monitored: ptr(true)}}

	got := Apply(items, f, fakeProfiles{})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("Apply returned wrong items: %+v", got)
	}
}
