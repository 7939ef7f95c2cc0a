package v1

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"
)

// requireSyncer wraps a handler and returns 503 if the list syncer is not configured.
func (s *Server) requireSyncer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.syncer == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "List syncer not configured")
			return
		}
		next(w, r)
	}
}

// requireNotifier wraps a handler and returns 503 if the notification poller is not configured.
func (s *Server) requireNotifier(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.notifier == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Notifier not configured")
			return
		}
		next(w, r)
	}
}

// APIKeyAuth rejects requests whose X-Api-Key header does not match key.
// An empty key disables authentication entirely.
func APIKeyAuth(key string, next http.Handler) http.Handler {
	if key == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("X-Api-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LogRequests logs each request with method, path, status, and duration.
func LogRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
