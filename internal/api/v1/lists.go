package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vmunix/curarr/internal/importlist"
	"github.com/vmunix/curarr/internal/library"
)

func listConfigToResponse(c *importlist.Config) listConfigResponse {
	return listConfigResponse{
		ID:                     c.ID,
		Name:                   c.Name,
		Provider:               c.Provider,
		MediaType:              string(c.MediaType),
		Enabled:                c.Enabled,
		AutoAdd:                c.AutoAdd,
		SearchOnAdd:            c.SearchOnAdd,
		QualityProfileID:       c.QualityProfileID,
		RootFolder:             c.RootFolder,
		Monitor:                c.Monitor,
		MinimumAvailability:    c.MinimumAvailability,
		ListURL:                c.ListURL,
		RefreshIntervalMinutes: int(c.RefreshInterval / time.Minute),
		LastSyncAt:             c.LastSyncAt,
	}
}

func (s *Server) listLists(w http.ResponseWriter, r *http.Request) {
	enabledOnly := false
	if b := queryBool(r, "enabled"); b != nil {
		enabledOnly = *b
	}
	configs, err := s.lists.List(enabledOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	resp := make([]listConfigResponse, len(configs))
	for i, c := range configs {
		resp[i] = listConfigToResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	c, err := s.lists.Get(id)
	if err != nil {
		if errors.Is(err, importlist.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "List not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listConfigToResponse(c))
}

func (s *Server) addList(w http.ResponseWriter, r *http.Request) {
	var req listConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	mediaType := library.MediaType(req.MediaType)
	if req.Name == "" || req.Provider == "" || req.ListURL == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", "name, provider, and list_url are required")
		return
	}
	if mediaType != library.MediaMovie && mediaType != library.MediaSeries {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", "media_type must be 'movie' or 'series'")
		return
	}

	c := &importlist.Config{
		Name:                req.Name,
		Provider:            req.Provider,
		MediaType:           mediaType,
		Enabled:             true,
		AutoAdd:             true,
		QualityProfileID:    req.QualityProfileID,
		RootFolder:          req.RootFolder,
		Monitor:             req.Monitor,
		MinimumAvailability: req.MinimumAvailability,
		ListURL:             req.ListURL,
		RefreshInterval:     time.Duration(req.RefreshIntervalMinutes) * time.Minute,
	}
	if req.Enabled != nil {
		c.Enabled = *req.Enabled
	}
	if req.AutoAdd != nil {
		c.AutoAdd = *req.AutoAdd
	}
	if req.SearchOnAdd != nil {
		c.SearchOnAdd = *req.SearchOnAdd
	}

	if err := s.lists.Add(c); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, listConfigToResponse(c))
}

func (s *Server) updateList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req listConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	c, err := s.lists.Get(id)
	if err != nil {
		if errors.Is(err, importlist.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "List not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Provider != "" {
		c.Provider = req.Provider
	}
	if req.MediaType != "" {
		c.MediaType = library.MediaType(req.MediaType)
	}
	if req.Enabled != nil {
		c.Enabled = *req.Enabled
	}
	if req.AutoAdd != nil {
		c.AutoAdd = *req.AutoAdd
	}
	if req.SearchOnAdd != nil {
		c.SearchOnAdd = *req.SearchOnAdd
	}
	if req.QualityProfileID != nil {
		c.QualityProfileID = req.QualityProfileID
	}
	if req.RootFolder != "" {
		c.RootFolder = req.RootFolder
	}
	if req.Monitor != "" {
		c.Monitor = req.Monitor
	}
	if req.MinimumAvailability != "" {
		c.MinimumAvailability = req.MinimumAvailability
	}
	if req.ListURL != "" {
		c.ListURL = req.ListURL
	}
	if req.RefreshIntervalMinutes > 0 {
		c.RefreshInterval = time.Duration(req.RefreshIntervalMinutes) * time.Minute
	}

	if err := s.lists.Update(c); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listConfigToResponse(c))
}

func (s *Server) deleteList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.lists.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// syncList triggers an immediate sync. A run already in flight for the same
// list maps to 409 so clients can back off instead of stacking runs.
func (s *Server) syncList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	result, err := s.syncer.Sync(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, importlist.ErrNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "List not found")
		case errors.Is(err, importlist.ErrSyncInFlight):
			writeError(w, http.StatusConflict, "SYNC_IN_FLIGHT", "A sync for this list is already running")
		case errors.Is(err, importlist.ErrUnknownProvider):
			writeError(w, http.StatusBadRequest, "UNKNOWN_PROVIDER", err.Error())
		case errors.Is(err, importlist.ErrProviderFetch):
			writeError(w, http.StatusBadGateway, "PROVIDER_ERROR", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "SYNC_ERROR", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) previewList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	items, err := s.syncer.Preview(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, importlist.ErrNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "List not found")
		case errors.Is(err, importlist.ErrUnknownProvider):
			writeError(w, http.StatusBadRequest, "UNKNOWN_PROVIDER", err.Error())
		case errors.Is(err, importlist.ErrProviderFetch):
			writeError(w, http.StatusBadGateway, "PROVIDER_ERROR", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "PREVIEW_ERROR", err.Error())
		}
		return
	}
	if items == nil {
		items = []importlist.PreviewItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) listSyncStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if _, err := s.lists.Get(id); err != nil {
		if errors.Is(err, importlist.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "List not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, syncStatusResponse{
		ListID: id,
		Phase:  string(s.syncer.Status(id)),
	})
}
