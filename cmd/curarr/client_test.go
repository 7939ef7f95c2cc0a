package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Status(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		ExpectGET().
		RespondJSON(StatusResponse{Status: "ok", Version: "1.2.3"}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "")
	resp, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestClient_SendsAPIKey(t *testing.T) {
	var receivedKey string
	srv := newMockServer(t).
		Handler(func(w http.ResponseWriter, r *http.Request) {
			receivedKey = r.Header.Get("X-Api-Key")
			respondJSON(t, w, StatusResponse{Status: "ok"})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	_, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, "secret", receivedKey)
}

func TestClient_Items_QueryParams(t *testing.T) {
	var receivedPath string
	srv := newMockServer(t).
		ExpectGET().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			receivedPath = r.URL.String()
			respondJSON(t, w, ListItemsResponse{
				Items: []ItemResponse{{ID: 1, Title: "The Matrix", Year: 1999}},
				Total: 1,
			})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "")
	resp, err := client.Items("movie", 25)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/items?limit=25&type=movie", receivedPath)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "The Matrix", resp.Items[0].Title)
}

func TestClient_SyncList(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/lists/3/sync").
		ExpectPOST().
		RespondJSON(SyncResultResponse{
			ListID:   3,
			Added:    5,
			Existing: 12,
			Failed:   1,
			Failures: []string{"Broken Entry: constraint violation"},
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "")
	result, err := client.SyncList(3)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Added)
	assert.Equal(t, 12, result.Existing)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
}

func TestClient_SyncList_Conflict(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/lists/3/sync").
		ExpectPOST().
		RespondError(http.StatusConflict, `{"error":"A sync for this list is already running","code":"SYNC_IN_FLIGHT"}`).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.SyncList(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "SYNC_IN_FLIGHT")
}

func TestClient_DeleteItem_WithExclude(t *testing.T) {
	var receivedPath string
	srv := newMockServer(t).
		ExpectDELETE().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			receivedPath = r.URL.String()
			w.WriteHeader(http.StatusNoContent)
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "")
	require.NoError(t, client.DeleteItem(7, true))
	assert.Equal(t, "/api/v1/items/7?exclude=true", receivedPath)
}

func TestClient_UnreadCount(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/notifications/unread-count").
		ExpectGET().
		RespondJSON(map[string]int{"unread": 4}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "")
	count, err := client.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestClient_MarkAllNotificationsRead_NoContent(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/notifications/read-all").
		ExpectPOST().
		RespondStatus(http.StatusNoContent).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL, "")
	require.NoError(t, client.MarkAllNotificationsRead())
}
