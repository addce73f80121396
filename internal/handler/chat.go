package handler

import (
	"log/slog"
	"net/http"

	llmSvc "docit/internal/domain/services/llm"
	"docit/internal/httputil"
)

// ChatHandler handles the assistant panel
// Handlers only talk to services, never repositories
type ChatHandler struct {
	chatService llmSvc.ChatService
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService llmSvc.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// GetTranscript returns the caller's conversation
// GET /api/chat
func (h *ChatHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	transcript, err := h.chatService.GetTranscript(r.Context(), session)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, transcript)
}

// SendMessage sends a prompt and returns the assistant reply.
// 409 while a previous message is still pending.
// POST /api/chat/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req llmSvc.SendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	response, err := h.chatService.SendMessage(r.Context(), session, &req)
	if err != nil {
		h.logger.Debug("chat message failed", "user_id", session.UserID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}

// ClearTranscript starts a new chat
// DELETE /api/chat
func (h *ChatHandler) ClearTranscript(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.chatService.ClearTranscript(r.Context(), session); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summarize answers a one-shot prompt over the caller's data
// POST /api/ai/summarize
func (h *ChatHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req llmSvc.SummarizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	response, err := h.chatService.Summarize(r.Context(), session, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}
