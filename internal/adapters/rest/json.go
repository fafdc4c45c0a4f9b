package rest

import (
	"mime"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/shantanugsharp/chatbot-be/internal/logging"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	ErrorKind string   `json:"error_kind,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	Example   any      `json:"example,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, errorResponse{Error: msg, ErrorKind: kind})
}

func isJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
