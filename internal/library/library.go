// Package library tracks curated media items, quality profiles, and the
// never-auto-add exclusion set.
package library

import (
	"time"
)

// MediaType distinguishes movies from series.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
)

// Item represents one library entry, movie or series.
type Item struct {
	ID                  int64
	Type                MediaType
	ExternalID          string // provider id, unique per media type
	Title               string
	Year                int
	Monitored           bool
	Quality             string // last acquired quality label, "" if none recorded
	QualityProfileID    *int64 // nil = no profile assigned
	DownloadedCount     int
	ExpectedCount       int // series: episode count; movies: 1
	RootPath            string
	Monitor             string // series monitor policy
	MinimumAvailability string
	AddedAt             time.Time
	UpdatedAt           time.Time
}

// HasFile reports whether the item's expected content is on disk. Series
// are complete only when every expected episode is downloaded; movies when
// anything is.
func (i *Item) HasFile() bool {
	if i.Type == MediaSeries {
		return i.ExpectedCount > 0 && i.DownloadedCount >= i.ExpectedCount
	}
	return i.DownloadedCount > 0
}

// QualityProfile names a cutoff policy for items assigned to it.
type QualityProfile struct {
	ID        int64
	Name      string
	Cutoff    string // quality label; "" = no cutoff, always satisfied
	MediaType MediaType
}

// Exclusion marks an external item as never-auto-add. Title and year are
// kept for display only.
type Exclusion struct {
	ID         int64
	ExternalID string
	MediaType  MediaType
	Title      string
	Year       int
	CreatedAt  time.Time
}
