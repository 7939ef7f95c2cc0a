package v1

import "time"

type itemResponse struct {
	ID                  int64     `json:"id"`
	Type                string    `json:"type"`
	ExternalID          string    `json:"external_id"`
	Title               string    `json:"title"`
	Year                int       `json:"year,omitempty"`
	Monitored           bool      `json:"monitored"`
	Quality             string    `json:"quality,omitempty"`
	QualityRank         int       `json:"quality_rank"`
	QualityProfileID    *int64    `json:"quality_profile_id,omitempty"`
	HasFile             bool      `json:"has_file"`
	CutoffMet           bool      `json:"cutoff_met"`
	DownloadedCount     int       `json:"downloaded_count"`
	ExpectedCount       int       `json:"expected_count"`
	RootPath            string    `json:"root_path,omitempty"`
	Monitor             string    `json:"monitor,omitempty"`
	MinimumAvailability string    `json:"minimum_availability,omitempty"`
	AddedAt             time.Time `json:"added_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type listItemsResponse struct {
	Items  []itemResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type addItemRequest struct {
	Type             string `json:"type"`
	ExternalID       string `json:"external_id"`
	Title            string `json:"title"`
	Year             int    `json:"year"`
	Monitored        *bool  `json:"monitored"`
	QualityProfileID *int64 `json:"quality_profile_id"`
	RootPath         string `json:"root_path"`
}

type updateItemRequest struct {
	Monitored        *bool   `json:"monitored"`
	Quality          *string `json:"quality"`
	QualityProfileID *int64  `json:"quality_profile_id"`
	DownloadedCount  *int    `json:"downloaded_count"`
	ExpectedCount    *int    `json:"expected_count"`
}

type profileRequest struct {
	Name      string `json:"name"`
	Cutoff    string `json:"cutoff"`
	MediaType string `json:"media_type"`
}

type profileResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Cutoff    string `json:"cutoff,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

// filterConditions mirrors filter.Conditions with an explicit JSON shape so
// the wire format stays stable independently of the engine's internals.
type filterConditions struct {
	Monitored        *bool   `json:"monitored,omitempty"`
	HasFile          *bool   `json:"has_file,omitempty"`
	CutoffMet        *bool   `json:"cutoff_met,omitempty"`
	QualityProfileID *int64  `json:"quality_profile_id,omitempty"`
	Quality          *string `json:"quality,omitempty"`
	MinYear          *int    `json:"min_year,omitempty"`
	MaxYear          *int    `json:"max_year,omitempty"`
}

type filterRequest struct {
	Name       string           `json:"name"`
	Position   *int             `json:"position"`
	Conditions filterConditions `json:"conditions"`
}

type filterResponse struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Position   int              `json:"position"`
	Conditions filterConditions `json:"conditions"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type exclusionRequest struct {
	ExternalID string `json:"external_id"`
	MediaType  string `json:"media_type"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
}

type exclusionResponse struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	MediaType  string    `json:"media_type"`
	Title      string    `json:"title,omitempty"`
	Year       int       `json:"year,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type listExclusionsResponse struct {
	Items []exclusionResponse `json:"items"`
	Total int                 `json:"total"`
}

type listConfigRequest struct {
	Name                   string `json:"name"`
	Provider               string `json:"provider"`
	MediaType              string `json:"media_type"`
	Enabled                *bool  `json:"enabled"`
	AutoAdd                *bool  `json:"auto_add"`
	SearchOnAdd            *bool  `json:"search_on_add"`
	QualityProfileID       *int64 `json:"quality_profile_id"`
	RootFolder             string `json:"root_folder"`
	Monitor                string `json:"monitor"`
	MinimumAvailability    string `json:"minimum_availability"`
	ListURL                string `json:"list_url"`
	RefreshIntervalMinutes int    `json:"refresh_interval_minutes"`
}

type listConfigResponse struct {
	ID                     int64      `json:"id"`
	Name                   string     `json:"name"`
	Provider               string     `json:"provider"`
	MediaType              string     `json:"media_type"`
	Enabled                bool       `json:"enabled"`
	AutoAdd                bool       `json:"auto_add"`
	SearchOnAdd            bool       `json:"search_on_add"`
	QualityProfileID       *int64     `json:"quality_profile_id,omitempty"`
	RootFolder             string     `json:"root_folder,omitempty"`
	Monitor                string     `json:"monitor,omitempty"`
	MinimumAvailability    string     `json:"minimum_availability,omitempty"`
	ListURL                string     `json:"list_url"`
	RefreshIntervalMinutes int        `json:"refresh_interval_minutes"`
	LastSyncAt             *time.Time `json:"last_sync_at,omitempty"`
}

type syncStatusResponse struct {
	ListID int64  `json:"list_id"`
	Phase  string `json:"phase"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
