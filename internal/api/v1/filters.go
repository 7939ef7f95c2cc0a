package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/curarr/internal/filter"
	"github.com/vmunix/curarr/internal/library"
)

func filterToResponse(f *filter.CustomFilter) filterResponse {
	return filterResponse{
		ID:       f.ID,
		Name:     f.Name,
		Position: f.Position,
		Conditions: filterConditions{
			Monitored:        f.Monitored,
			HasFile:          f.HasFile,
			CutoffMet:        f.CutoffMet,
			QualityProfileID: f.QualityProfileID,
			Quality:          f.Quality,
			MinYear:          f.MinYear,
			MaxYear:          f.MaxYear,
		},
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (c filterConditions) toEngine() filter.Conditions {
	return filter.Conditions{
		Monitored:        c.Monitored,
		HasFile:          c.HasFile,
		CutoffMet:        c.CutoffMet,
		QualityProfileID: c.QualityProfileID,
		Quality:          c.Quality,
		MinYear:          c.MinYear,
		MaxYear:          c.MaxYear,
	}
}

func (s *Server) listFilters(w http.ResponseWriter, r *http.Request) {
	fs, err := s.filters.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	resp := make([]filterResponse, len(fs))
	for i, f := range fs {
		resp[i] = filterToResponse(f)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getFilter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	f, err := s.filters.Get(id)
	if err != nil {
		if errors.Is(err, filter.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Filter not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, filterToResponse(f))
}

func (s *Server) addFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", "name is required")
		return
	}

	f := &filter.CustomFilter{
		Name:       req.Name,
		Conditions: req.Conditions.toEngine(),
	}
	if req.Position != nil {
		f.Position = *req.Position
	}

	if err := s.filters.Add(f); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, filterToResponse(f))
}

func (s *Server) updateFilter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	f, err := s.filters.Get(id)
	if err != nil {
		if errors.Is(err, filter.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Filter not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if req.Name != "" {
		f.Name = req.Name
	}
	if req.Position != nil {
		f.Position = *req.Position
	}
	f.Conditions = req.Conditions.toEngine()

	if err := s.filters.Update(f); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, filterToResponse(f))
}

func (s *Server) deleteFilter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.filters.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// evaluateFilter runs a stored filter over the library and returns the
// matching items, annotated the same way the plain item listing is.
func (s *Server) evaluateFilter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	f, err := s.filters.Get(id)
	if err != nil {
		if errors.Is(err, filter.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Filter not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	// The engine evaluates in memory, so fetch unpaginated and page the
	// matches. Filters routinely reference derived fields (cutoff_met,
	// has_file) the store cannot compute in SQL.
	items, _, err := s.library.ListItems(library.ItemFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	matched := filter.Apply(items, f, s.library)

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	resp := listItemsResponse{
		Items:  make([]itemResponse, 0, end-offset),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, it := range matched[offset:end] {
		resp.Items = append(resp.Items, s.itemToResponse(it))
	}
	writeJSON(w, http.StatusOK, resp)
}
