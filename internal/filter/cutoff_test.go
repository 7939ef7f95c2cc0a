package filter

import (
	"testing"

	"github.com/vmunix/curarr/internal/library"
)

func TestCutoffMet(t *testing.T) {
	profiles := fakeProfiles{
		1: {ID: 1, Name: "HD", Cutoff: "Bluray-1080p", MediaType: library.MediaMovie},
		2: {ID: 2, Name: "Any", Cutoff: "", MediaType: library.MediaMovie},
		3: {ID: 3, Name: "SD+", Cutoff: "Bluray-720p", MediaType: library.MediaMovie},
	}

	tests := []struct {
		name string
		item library.Item
		want bool
	}{
		{
			"no profile and no file",
			library.Item{Type: library.MediaMovie},
			true,
		},
		{
			"no profile with file",
			library.Item{Type: library.MediaMovie, DownloadedCount: 1, Quality: "HDTV-720p"},
			true,
		},
		{
			"nothing downloaded",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1))},
			true,
		},
		{
			"profile without cutoff",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(2)),
				DownloadedCount: 1, Quality: "HDTV-480p"},
			true,
		},
		{
			"no recorded quality label",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1)),
				DownloadedCount: 1, Quality: ""},
			true,
		},
		{
			"quality above cutoff",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1)),
				DownloadedCount: 1, Quality: "Remux-1080p"},
			true,
		},
		{
			"quality at cutoff",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1)),
				DownloadedCount: 1, Quality: "Bluray-1080p"},
			true,
		},
		{
			"quality below cutoff",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(1)),
				DownloadedCount: 1, Quality: "HDTV-1080p"},
			false,
		},
		{
			"resolution beats cutoff source",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(3)),
				DownloadedCount: 1, Quality: "HDTV-1080p"},
			true,
		},
		{
			"missing profile record",
			library.Item{Type: library.MediaMovie, QualityProfileID: ptr(int64(99)),
				DownloadedCount: 1, Quality: "HDTV-480p"},
			true,
		},
		{
			"series incomplete counts as no file",
			library.Item{Type: library.MediaSeries, QualityProfileID: ptr(int64(1)),
				DownloadedCount: 3, ExpectedCount: 10, Quality: "HDTV-720p"},
			true,
		},
		{
			"series complete below cutoff",
			library.Item{Type: library.MediaSeries, QualityProfileID: ptr(int64(1)),
				DownloadedCount: 10, ExpectedCount: 10, Quality: "HDTV-720p"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CutoffMet(&tt.item, profiles); got != tt.want {
				t.Errorf("CutoffMet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCutoffMet_NilItem(t *testing.T) {
	if !CutoffMet(nil, fakeProfiles{}) {
		t.Error("nil item should evaluate as met")
	}
}
