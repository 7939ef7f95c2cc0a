// Package v1 implements the native REST API.
package v1

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/filter"
	"github.com/vmunix/curarr/internal/importlist"
	"github.com/vmunix/curarr/internal/library"
	"github.com/vmunix/curarr/internal/notify"
)

// Config holds API server configuration.
type Config struct {
	// APIKey protects every route when set. Empty disables authentication.
	APIKey  string
	Version string
}

// Server is the v1 API server.
type Server struct {
	library  *library.Store
	filters  *filter.Store
	events   *events.Log
	lists    *importlist.Store
	syncer   *importlist.Syncer
	notifier *notify.Poller
	cfg      Config
}

// New creates a new v1 API server over the shared database.
func New(db *sql.DB, cfg Config) *Server {
	return &Server{
		library: library.NewStore(db),
		filters: filter.NewStore(db),
		events:  events.NewLog(db),
		lists:   importlist.NewStore(db),
		cfg:     cfg,
	}
}

// SetSyncer configures the list syncer (built with providers and bus).
func (s *Server) SetSyncer(syncer *importlist.Syncer) {
	s.syncer = syncer
}

// SetNotifier configures the notification poller.
func (s *Server) SetNotifier(poller *notify.Poller) {
	s.notifier = poller
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Items
	mux.HandleFunc("GET /api/v1/items", s.listItems)
	mux.HandleFunc("GET /api/v1/items/{id}", s.getItem)
	mux.HandleFunc("POST /api/v1/items", s.addItem)
	mux.HandleFunc("PUT /api/v1/items/{id}", s.updateItem)
	mux.HandleFunc("DELETE /api/v1/items/{id}", s.deleteItem)

	// Quality profiles
	mux.HandleFunc("GET /api/v1/profiles", s.listProfiles)
	mux.HandleFunc("GET /api/v1/profiles/{id}", s.getProfile)
	mux.HandleFunc("POST /api/v1/profiles", s.addProfile)
	mux.HandleFunc("PUT /api/v1/profiles/{id}", s.updateProfile)
	mux.HandleFunc("DELETE /api/v1/profiles/{id}", s.deleteProfile)

	// Custom filters
	mux.HandleFunc("GET /api/v1/filters", s.listFilters)
	mux.HandleFunc("GET /api/v1/filters/{id}", s.getFilter)
	mux.HandleFunc("POST /api/v1/filters", s.addFilter)
	mux.HandleFunc("PUT /api/v1/filters/{id}", s.updateFilter)
	mux.HandleFunc("DELETE /api/v1/filters/{id}", s.deleteFilter)
	mux.HandleFunc("GET /api/v1/filters/{id}/items", s.evaluateFilter)

	// Exclusions
	mux.HandleFunc("GET /api/v1/exclusions", s.listExclusions)
	mux.HandleFunc("POST /api/v1/exclusions", s.addExclusion)
	mux.HandleFunc("DELETE /api/v1/exclusions/{id}", s.removeExclusion)
	mux.HandleFunc("DELETE /api/v1/exclusions", s.clearExclusions)

	// Import lists
	mux.HandleFunc("GET /api/v1/lists", s.listLists)
	mux.HandleFunc("GET /api/v1/lists/{id}", s.getList)
	mux.HandleFunc("POST /api/v1/lists", s.addList)
	mux.HandleFunc("PUT /api/v1/lists/{id}", s.updateList)
	mux.HandleFunc("DELETE /api/v1/lists/{id}", s.deleteList)
	mux.HandleFunc("POST /api/v1/lists/{id}/sync", s.requireSyncer(s.syncList))
	mux.HandleFunc("GET /api/v1/lists/{id}/preview", s.requireSyncer(s.previewList))
	mux.HandleFunc("GET /api/v1/lists/{id}/status", s.requireSyncer(s.listSyncStatus))

	// Notifications
	mux.HandleFunc("GET /api/v1/notifications", s.requireNotifier(s.listNotifications))
	mux.HandleFunc("GET /api/v1/notifications/unread-count", s.requireNotifier(s.unreadCount))
	mux.HandleFunc("POST /api/v1/notifications/{id}/read", s.requireNotifier(s.markNotificationRead))
	mux.HandleFunc("POST /api/v1/notifications/read-all", s.requireNotifier(s.markAllNotificationsRead))
	mux.HandleFunc("DELETE /api/v1/notifications/{id}", s.requireNotifier(s.removeNotification))
	mux.HandleFunc("DELETE /api/v1/notifications", s.requireNotifier(s.clearNotifications))

	// Activity & system
	mux.HandleFunc("GET /api/v1/activity", s.listActivity)
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// queryString extracts an optional string from query string.
func queryString(r *http.Request, name string) *string {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	return &val
}

// queryBool extracts an optional boolean from query string.
func queryBool(r *http.Request, name string) *bool {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}
	return &b
}

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	var activities []events.Activity
	var err error
	if after := queryInt(r, "after_id", -1); after >= 0 {
		// Incremental tail for polling clients: events after the given
		// id, oldest first.
		activities, err = s.events.Since(int64(after))
		if len(activities) > limit {
			activities = activities[:limit]
		}
	} else {
		activities, err = s.events.Recent(limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if activities == nil {
		activities = []events.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Version: s.cfg.Version,
	})
}
