package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/ecf-team-win/internal/http/middleware"
	"github.com/preston-bernstein/ecf-team-win/internal/logging"
	"github.com/preston-bernstein/ecf-team-win/internal/view"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody(r, message), logger)
}

func errorBody(r *http.Request, message string) map[string]string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	return body
}

// writePage renders into a buffer first so a template failure becomes a 500
// instead of a half-written page.
func writePage(w http.ResponseWriter, r *http.Request, status int, page view.Page, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		logging.Error(logger, "failed to render page", err)
		writeError(w, r, http.StatusInternalServerError, "failed to render page", logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Warn(logger, "failed to write page", "err", err)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
