package rest

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

type initRequest struct {
	JSONFilePath string `json:"json_file_path"`
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.app.Engine.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"total_tracks":        stats.Total,
		"tracks_with_vocals":  stats.WithVocals,
		"explicit_tracks":     stats.Explicit,
		"non_explicit_tracks": stats.NonExplicit(),
		"instrumental_tracks": stats.Instrumental(),
		"stats_text":          stats.String(),
		"timestamp":           time.Now().Unix(),
	})
}

// Init handles POST /init. An empty body reloads the configured source. A
// path outside the catalog directory answers 400; a failed load keeps the
// current catalog and answers 500.
func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "validation_failure")
		return
	}

	var req initRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if !isJSONContentType(r) {
			writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "")
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", "validation_failure")
			return
		}
	}

	n, err := h.app.ReloadCatalog(r.Context(), req.JSONFilePath)
	if err != nil {
		kind := "load_failure"
		var f *domain.Failure
		if errors.As(err, &f) {
			kind = f.KindName()
		}
		if errors.Is(err, domain.ErrValidationFailure) {
			writeError(w, http.StatusBadRequest, "json_file_path must be inside the catalog directory", kind)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to reload catalog: "+err.Error(), kind)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Catalog reloaded",
		"tracks_loaded": n,
		"timestamp":     time.Now().Unix(),
	})
}
