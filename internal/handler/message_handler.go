package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/auth"
)

const (
	maxSubmitBodyBytes = 64 << 10
	maxStatusBodyBytes = 1 << 10

	noticeSubmitted    = "Message sent successfully! Thank you for reaching out. I'll get back to you soon."
	noticeSubmitFailed = "Error sending message. Please try again or contact me directly via email."
	noticeRequired     = "Please fill in all required fields."
	noticeRetry        = "Something went wrong. Please try again."

	adminListPath = "/admin"
)

// MessageHandler handles the public contact form and the admin message views.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a MessageHandler with the given service.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	return true
}

type submitResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Fields  []service.FieldError `json:"fields"`
}

// Submit handles POST /api/contact.
// name, email, subject and message are required; company and phone are optional.
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)

	var sub model.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}

	msg, err := h.messageService.Submit(r.Context(), sub)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, validationErrorResponse{
				Error:   ve.Code(),
				Message: noticeRequired,
				Fields:  ve.Fields,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "submit_failed",
			"message": noticeSubmitFailed,
		})
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{ID: msg.ID, Message: noticeSubmitted})
}

// listResponse is the JSON response for GET /api/admin/messages.
type listResponse struct {
	Messages []*model.Message `json:"messages"`
}

// List handles GET /api/admin/messages.
// Supports query params: q (free-text search) and status (all/unread/read).
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	filter, err := model.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_status"})
		return
	}

	messages, err := h.messageService.List(r.Context(), r.URL.Query().Get("q"), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed", "message": noticeRetry})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.Message{}
	}
	writeJSON(w, http.StatusOK, listResponse{Messages: messages})
}

// Dashboard handles GET /api/admin/dashboard.
// Stats always cover every message; q and status narrow only the list.
func (h *MessageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	filter, err := model.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_status"})
		return
	}

	d, err := h.messageService.Dashboard(r.Context(), r.URL.Query().Get("q"), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed", "message": noticeRetry})
		return
	}
	if d.Messages == nil {
		d.Messages = []*model.Message{}
	}
	writeJSON(w, http.StatusOK, d)
}

// Get handles GET /api/admin/messages/{id}.
// Loading the detail marks an unread message as read.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	msg, err := h.messageService.Open(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "redirect": adminListPath})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "fetch_failed", "redirect": adminListPath})
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

type statusRequest struct {
	Status model.Status `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/messages/{id}/status.
// Only {"status":"read"} is accepted; read messages never go back to unread.
func (h *MessageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxStatusBodyBytes)
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}

	id := r.PathValue("id")
	err := h.messageService.UpdateStatus(r.Context(), id, req.Status)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
	case errors.Is(err, service.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_status"})
	case errors.Is(err, service.ErrTransitionNotAllowed):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status_transition_not_allowed"})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "redirect": adminListPath})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "update_failed", "message": noticeRetry})
	}
}

// Delete handles DELETE /api/admin/messages/{id}.
// Deleting a message that no longer exists also answers 204.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	if err := h.messageService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete_failed", "message": noticeRetry})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reply handles GET /api/admin/messages/{id}/reply and returns a prefilled mailto: link.
func (h *MessageHandler) Reply(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	link, err := h.messageService.ReplyLink(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "redirect": adminListPath})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "fetch_failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mailto": link})
}
