package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

// notificationService defines the minimal interface needed by NotificationHandler.
type notificationService interface {
	List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Notification], error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int, error)
}

// NotificationHandler serves the notification inbox of the current user.
type NotificationHandler struct {
	svc notificationService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

type notificationResponse struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"userId"`
	Type       domain.Kind `json:"type"`
	Message    string      `json:"message"`
	FromUserID int64       `json:"fromUserId"`
	ThreadID   *int64      `json:"threadId,omitempty"`
	Read       bool        `json:"read"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:         n.ID,
		UserID:     n.UserID,
		Type:       n.Kind,
		Message:    n.Message,
		FromUserID: n.FromUserID,
		ThreadID:   n.ThreadID,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

type countResponse struct {
	Count int `json:"count"`
}

// List handles GET /notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	q, err = q.Normalize(domain.NotificationSortFields)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPageResponse(q, page, toNotificationResponse))
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.UnreadCount(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// MarkAllRead handles PATCH /notifications.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// MarkRead handles PATCH /notifications/{id}.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll handles DELETE /notifications.
func (h *NotificationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.DeleteAll(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}
