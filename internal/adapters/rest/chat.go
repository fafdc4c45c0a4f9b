package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
	"github.com/shantanugsharp/chatbot-be/internal/core/memory"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
	"github.com/shantanugsharp/chatbot-be/internal/validation"
)

type chatRequest struct {
	Message string `json:"message" validate:"notblank"`
}

type chatResponse struct {
	Success            bool   `json:"success"`
	UserMessage        string `json:"user_message"`
	BotResponse        string `json:"bot_response"`
	BotName            string `json:"bot_name"`
	Intent             string `json:"intent"`
	Timestamp          int64  `json:"timestamp"`
	ConversationLength int    `json:"conversation_length"`
	ErrorKind          string `json:"error_kind,omitempty"`
}

var chatExample = map[string]string{"message": "I need upbeat music for Instagram reels"}

// Chat handles POST /chat. A provider failure is still a 200: the body
// carries the fallback text with success=false.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "Invalid request body",
			ErrorKind: domain.NewValidationFailure("chat", err).KindName(),
			Example:   chatExample,
		})
		return
	}
	if err := validation.Struct(req); err != nil {
		resp := errorResponse{
			Error:     err.Error(),
			ErrorKind: domain.NewValidationFailure("chat", err).KindName(),
			Example:   chatExample,
		}
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			resp.Fields = verrs.Fields()
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	message := strings.TrimSpace(req.Message)
	logging.Ctx(r.Context()).Debug().Int("length", len(message)).Msg("chat request")

	reply := h.app.Engine.Respond(r.Context(), message)
	resp := chatResponse{
		Success:            reply.OK(),
		UserMessage:        message,
		BotResponse:        reply.Text,
		BotName:            h.app.Engine.Name(),
		Intent:             reply.Intent.String(),
		Timestamp:          time.Now().Unix(),
		ConversationLength: len(h.app.Engine.History()),
	}
	if reply.Failure != nil {
		resp.ErrorKind = reply.Failure.KindName()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reset handles POST /reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.app.Engine.ResetConversation()
	logging.Ctx(r.Context()).Info().Msg("conversation history reset")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Conversation history reset successfully",
		"timestamp": time.Now().Unix(),
	})
}

// Conversation handles GET /conversation.
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	turns := h.app.Engine.History()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"conversation": turns,
		"length":       len(turns),
		"max_length":   memory.MaxTurns,
	})
}
