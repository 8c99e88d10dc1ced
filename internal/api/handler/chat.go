package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/pkg/models"
)

const maxHistoryTurns = 50

// Chatter defines the interface the chat handlers depend on.
type Chatter interface {
	Chat(ctx context.Context, history []models.ChatMessage, message, language string) (string, error)
	VoiceChat(ctx context.Context, message string) string
}

// NewChatHandler returns an http.HandlerFunc for POST /api/v1/chat.
func NewChatHandler(svc Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message  string               `json:"message"`
			History  []models.ChatMessage `json:"history"`
			Language string               `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Message == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "message is required", nil)
			return
		}
		if len(req.History) > maxHistoryTurns {
			req.History = req.History[len(req.History)-maxHistoryTurns:]
		}

		reply, err := svc.Chat(r.Context(), req.History, req.Message, langOrDefault(req.Language))
		if err != nil {
			writeAIError(w, err)
			return
		}

		// The reply comes back as a formed transcript message so clients can
		// append it to history as-is.
		response.JSON(w, map[string]any{"reply": models.ChatMessage{
			ID:        uuid.NewString(),
			Role:      models.RoleModel,
			Text:      reply,
			Timestamp: time.Now().UnixMilli(),
		}})
	}
}

// NewVoiceChatHandler returns an http.HandlerFunc for POST /api/v1/chat/voice.
// Voice replies never fail; service problems come back as fixed spoken text.
func NewVoiceChatHandler(svc Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Message == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "message is required", nil)
			return
		}

		reply := svc.VoiceChat(r.Context(), req.Message)
		response.JSON(w, map[string]string{"reply": reply})
	}
}
