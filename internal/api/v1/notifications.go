package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/curarr/internal/notify"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	feed := s.notifier.Feed()
	if unread := queryBool(r, "unread"); unread != nil && *unread {
		filtered := feed[:0]
		for _, n := range feed {
			if !n.Read {
				filtered = append(filtered, n)
			}
		}
		feed = filtered
	}
	if feed == nil {
		feed = []notify.Notification{}
	}
	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"unread": s.notifier.UnreadCount()})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.notifier.MarkRead(id); err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	s.notifier.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.notifier.Remove(id); err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearNotifications(w http.ResponseWriter, r *http.Request) {
	s.notifier.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}
