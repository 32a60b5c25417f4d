package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/techmarket/internal/ports/primary"
)

// MessageHandler serves the mission thread endpoints.
type MessageHandler struct {
	messages primary.MessageService
}

type postMessageRequest struct {
	Body string `json:"body"`
}

type messageResponse struct {
	ID        string `json:"id"`
	MissionID string `json:"mission_id"`
	SenderRef string `json:"sender_ref"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	ReadAt    string `json:"read_at,omitempty"`
}

type unreadCountResponse struct {
	Unread int `json:"unread"`
}

// Post appends a message to a mission's thread.
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	message, err := h.messages.Post(r.Context(), primary.PostMessageRequest{
		Caller:    caller,
		MissionID: chi.URLParam(r, "id"),
		Body:      req.Body,
	})
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, toMessageResponse(message))
}

// Thread returns a mission's messages in creation order.
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	messages, err := h.messages.Thread(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendFault(w, err)
		return
	}

	out := make([]messageResponse, len(messages))
	for i, m := range messages {
		out[i] = toMessageResponse(m)
	}
	sendJSON(w, http.StatusOK, out)
}

// MarkRead stamps the thread's messages addressed to the caller as read.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	if err := h.messages.MarkThreadRead(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UnreadCount returns the caller's unread count for the thread.
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		sendJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
		return
	}

	count, err := h.messages.UnreadCount(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		sendFault(w, err)
		return
	}
	sendJSON(w, http.StatusOK, unreadCountResponse{Unread: count})
}

func toMessageResponse(m *primary.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		MissionID: m.MissionID,
		SenderRef: m.SenderRef,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		ReadAt:    m.ReadAt,
	}
}
