package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/curarr/internal/filter"
	"github.com/vmunix/curarr/internal/library"
	"github.com/vmunix/curarr/pkg/quality"
)

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	f := library.ItemFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if typeStr := queryString(r, "type"); typeStr != nil {
		t := library.MediaType(*typeStr)
		f.Type = &t
	}
	f.Monitored = queryBool(r, "monitored")
	if r.URL.Query().Get("profile_id") != "" {
		id := int64(queryInt(r, "profile_id", 0))
		f.QualityProfileID = &id
	}

	items, total, err := s.library.ListItems(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listItemsResponse{
		Items:  make([]itemResponse, len(items)),
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	}
	for i, it := range items {
		resp.Items[i] = s.itemToResponse(it)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	it, err := s.library.GetItem(id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.itemToResponse(it))
}

// itemToResponse annotates an item with its derived quality verdicts, so
// clients never re-implement the ranking rules.
func (s *Server) itemToResponse(it *library.Item) itemResponse {
	return itemResponse{
		ID:                  it.ID,
		Type:                string(it.Type),
		ExternalID:          it.ExternalID,
		Title:               it.Title,
		Year:                it.Year,
		Monitored:           it.Monitored,
		Quality:             it.Quality,
		QualityRank:         int(quality.RankLabel(it.Quality)),
		QualityProfileID:    it.QualityProfileID,
		HasFile:             it.HasFile(),
		CutoffMet:           filter.CutoffMet(it, s.library),
		DownloadedCount:     it.DownloadedCount,
		ExpectedCount:       it.ExpectedCount,
		RootPath:            it.RootPath,
		Monitor:             it.Monitor,
		MinimumAvailability: it.MinimumAvailability,
		AddedAt:             it.AddedAt,
		UpdatedAt:           it.UpdatedAt,
	}
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	mediaType := library.MediaType(req.Type)
	if mediaType != library.MediaMovie && mediaType != library.MediaSeries {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", "type must be 'movie' or 'series'")
		return
	}
	if req.ExternalID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", "external_id and title are required")
		return
	}

	it := &library.Item{
		Type:             mediaType,
		ExternalID:       req.ExternalID,
		Title:            req.Title,
		Year:             req.Year,
		Monitored:        true,
		QualityProfileID: req.QualityProfileID,
		RootPath:         req.RootPath,
	}
	if req.Monitored != nil {
		it.Monitored = *req.Monitored
	}
	if mediaType == library.MediaMovie {
		it.ExpectedCount = 1
	}

	if err := s.library.AddItem(it); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			writeError(w, http.StatusConflict, "DUPLICATE", "Item already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.itemToResponse(it))
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	it, err := s.library.GetItem(id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if req.Monitored != nil {
		it.Monitored = *req.Monitored
	}
	if req.Quality != nil {
		it.Quality = *req.Quality
	}
	if req.QualityProfileID != nil {
		it.QualityProfileID = req.QualityProfileID
	}
	if req.DownloadedCount != nil {
		it.DownloadedCount = *req.DownloadedCount
	}
	if req.ExpectedCount != nil {
		it.ExpectedCount = *req.ExpectedCount
	}

	if err := s.library.UpdateItem(it); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.itemToResponse(it))
}

// deleteItem removes an item; with ?exclude=true it also records an
// exclusion so no list sync ever re-adds it.
func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	exclude := queryBool(r, "exclude")
	if exclude != nil && *exclude {
		it, err := s.library.GetItem(id)
		if err != nil {
			if errors.Is(err, library.ErrNotFound) {
				writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
		excl := &library.Exclusion{
			ExternalID: it.ExternalID,
			MediaType:  it.Type,
			Title:      it.Title,
			Year:       it.Year,
		}
		if err := s.library.AddExclusion(excl); err != nil {
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
	}

	if err := s.library.DeleteItem(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quality profiles

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.library.ListProfiles()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := make([]profileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = profileToResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func profileToResponse(p *library.QualityProfile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Cutoff:    p.Cutoff,
		MediaType: string(p.MediaType),
	}
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	p, err := s.library.GetProfile(id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

func (s *Server) addProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", "name is required")
		return
	}

	p := &library.QualityProfile{
		Name:      req.Name,
		Cutoff:    req.Cutoff,
		MediaType: library.MediaType(req.MediaType),
	}
	if err := s.library.AddProfile(p); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, profileToResponse(p))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	p, err := s.library.GetProfile(id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	p.Cutoff = req.Cutoff
	if req.MediaType != "" {
		p.MediaType = library.MediaType(req.MediaType)
	}

	if err := s.library.UpdateProfile(p); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.library.DeleteProfile(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Exclusions

func (s *Server) listExclusions(w http.ResponseWriter, r *http.Request) {
	f := library.ExclusionFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if typeStr := queryString(r, "media_type"); typeStr != nil {
		t := library.MediaType(*typeStr)
		f.MediaType = &t
	}

	exclusions, total, err := s.library.ListExclusions(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listExclusionsResponse{
		Items: make([]exclusionResponse, len(exclusions)),
		Total: total,
	}
	for i, e := range exclusions {
		resp.Items[i] = exclusionResponse{
			ID:         e.ID,
			ExternalID: e.ExternalID,
			MediaType:  string(e.MediaType),
			Title:      e.Title,
			Year:       e.Year,
			CreatedAt:  e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) addExclusion(w http.ResponseWriter, r *http.Request) {
	var req exclusionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	mediaType := library.MediaType(req.MediaType)
	if req.ExternalID == "" || (mediaType != library.MediaMovie && mediaType != library.MediaSeries) {
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", "external_id and a valid media_type are required")
		return
	}

	e := &library.Exclusion{
		ExternalID: req.ExternalID,
		MediaType:  mediaType,
		Title:      req.Title,
		Year:       req.Year,
	}
	if err := s.library.AddExclusion(e); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, exclusionResponse{
		ID:         e.ID,
		ExternalID: e.ExternalID,
		MediaType:  string(e.MediaType),
		Title:      e.Title,
		Year:       e.Year,
		CreatedAt:  e.CreatedAt,
	})
}

func (s *Server) removeExclusion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.library.RemoveExclusion(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearExclusions bulk-removes exclusions, optionally scoped by media type.
func (s *Server) clearExclusions(w http.ResponseWriter, r *http.Request) {
	var mediaType *library.MediaType
	if typeStr := queryString(r, "media_type"); typeStr != nil {
		t := library.MediaType(*typeStr)
		mediaType = &t
	}

	removed, err := s.library.ClearExclusions(mediaType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}
