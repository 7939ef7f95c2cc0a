package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the curarr server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new curarr API client.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		baseURL: serverURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.do(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ItemResponse struct {
	ID               int64  `json:"id"`
	Type             string `json:"type"`
	ExternalID       string `json:"external_id"`
	Title            string `json:"title"`
	Year             int    `json:"year"`
	Monitored        bool   `json:"monitored"`
	Quality          string `json:"quality,omitempty"`
	QualityRank      int    `json:"quality_rank"`
	QualityProfileID *int64 `json:"quality_profile_id,omitempty"`
	HasFile          bool   `json:"has_file"`
	CutoffMet        bool   `json:"cutoff_met"`
	DownloadedCount  int    `json:"downloaded_count"`
	ExpectedCount    int    `json:"expected_count"`
	AddedAt          string `json:"added_at"`
}

type ListItemsResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type ProfileResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Cutoff    string `json:"cutoff,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

type FilterConditions struct {
	Monitored        *bool   `json:"monitored,omitempty"`
	HasFile          *bool   `json:"has_file,omitempty"`
	CutoffMet        *bool   `json:"cutoff_met,omitempty"`
	QualityProfileID *int64  `json:"quality_profile_id,omitempty"`
	Quality          *string `json:"quality,omitempty"`
	MinYear          *int    `json:"min_year,omitempty"`
	MaxYear          *int    `json:"max_year,omitempty"`
}

type FilterResponse struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Position   int              `json:"position"`
	Conditions FilterConditions `json:"conditions"`
}

type ListConfigResponse struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	Provider               string  `json:"provider"`
	MediaType              string  `json:"media_type"`
	Enabled                bool    `json:"enabled"`
	AutoAdd                bool    `json:"auto_add"`
	SearchOnAdd            bool    `json:"search_on_add"`
	ListURL                string  `json:"list_url"`
	RefreshIntervalMinutes int     `json:"refresh_interval_minutes"`
	LastSyncAt             *string `json:"last_sync_at,omitempty"`
}

type SyncResultResponse struct {
	RunID    string   `json:"run_id"`
	ListID   int64    `json:"list_id"`
	Added    int      `json:"added"`
	Existing int      `json:"existing"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
	Message  string   `json:"message,omitempty"`
}

type PreviewItemResponse struct {
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	MediaType  string `json:"media_type,omitempty"`
	InLibrary  bool   `json:"in_library"`
	Excluded   bool   `json:"excluded"`
}

type SyncStatusResponse struct {
	ListID int64  `json:"list_id"`
	Phase  string `json:"phase"`
}

type NotificationResponse struct {
	ID        int64  `json:"id"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

type ExclusionResponse struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	MediaType  string `json:"media_type"`
	Title      string `json:"title,omitempty"`
	Year       int    `json:"year,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type ListExclusionsResponse struct {
	Items []ExclusionResponse `json:"items"`
	Total int                 `json:"total"`
}

type ActivityResponse struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Label      string `json:"label,omitempty"`
	Message    string `json:"message"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   int64  `json:"entity_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Items(mediaType string, limit int) (*ListItemsResponse, error) {
	params := url.Values{}
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var resp ListItemsResponse
	if err := c.get("/api/v1/items?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddItem(mediaType, externalID, title string, year int, profileID *int64) (*ItemResponse, error) {
	req := map[string]any{
		"type":        mediaType,
		"external_id": externalID,
		"title":       title,
		"year":        year,
	}
	if profileID != nil {
		req["quality_profile_id"] = *profileID
	}

	var resp ItemResponse
	if err := c.post("/api/v1/items", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteItem(id int64, exclude bool) error {
	path := fmt.Sprintf("/api/v1/items/%d", id)
	if exclude {
		path += "?exclude=true"
	}
	return c.delete(path)
}

func (c *Client) Profiles() ([]ProfileResponse, error) {
	var resp []ProfileResponse
	if err := c.get("/api/v1/profiles", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Filters() ([]FilterResponse, error) {
	var resp []FilterResponse
	if err := c.get("/api/v1/filters", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) FilterItems(id int64) (*ListItemsResponse, error) {
	var resp ListItemsResponse
	if err := c.get(fmt.Sprintf("/api/v1/filters/%d/items", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Lists() ([]ListConfigResponse, error) {
	var resp []ListConfigResponse
	if err := c.get("/api/v1/lists", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) SyncList(id int64) (*SyncResultResponse, error) {
	var resp SyncResultResponse
	if err := c.post(fmt.Sprintf("/api/v1/lists/%d/sync", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PreviewList(id int64) ([]PreviewItemResponse, error) {
	var resp []PreviewItemResponse
	if err := c.get(fmt.Sprintf("/api/v1/lists/%d/preview", id), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ListSyncStatus(id int64) (*SyncStatusResponse, error) {
	var resp SyncStatusResponse
	if err := c.get(fmt.Sprintf("/api/v1/lists/%d/status", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Notifications(unreadOnly bool) ([]NotificationResponse, error) {
	path := "/api/v1/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	var resp []NotificationResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UnreadCount() (int, error) {
	var resp map[string]int
	if err := c.get("/api/v1/notifications/unread-count", &resp); err != nil {
		return 0, err
	}
	return resp["unread"], nil
}

func (c *Client) MarkNotificationRead(id int64) error {
	return c.post(fmt.Sprintf("/api/v1/notifications/%d/read", id), nil, nil)
}

func (c *Client) MarkAllNotificationsRead() error {
	return c.post("/api/v1/notifications/read-all", nil, nil)
}

func (c *Client) ClearNotifications() error {
	return c.delete("/api/v1/notifications")
}

func (c *Client) Exclusions() (*ListExclusionsResponse, error) {
	var resp ListExclusionsResponse
	if err := c.get("/api/v1/exclusions", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddExclusion(mediaType, externalID, title string, year int) error {
	req := map[string]any{
		"external_id": externalID,
		"media_type":  mediaType,
		"title":       title,
		"year":        year,
	}
	return c.post("/api/v1/exclusions", req, nil)
}

func (c *Client) RemoveExclusion(id int64) error {
	return c.delete(fmt.Sprintf("/api/v1/exclusions/%d", id))
}

func (c *Client) ClearExclusions() error {
	var resp map[string]int64
	return c.do(http.MethodDelete, "/api/v1/exclusions", nil, &resp)
}

// Activity fetches recent activity. A non-negative afterID switches to the
// incremental form: events after that id, oldest first.
func (c *Client) Activity(limit int, afterID int64) ([]ActivityResponse, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if afterID >= 0 {
		params.Set("after_id", fmt.Sprintf("%d", afterID))
	}

	var resp []ActivityResponse
	if err := c.get("/api/v1/activity?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
