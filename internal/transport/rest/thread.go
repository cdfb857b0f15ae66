package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/internal/service/thread"
)

// threadService defines the minimal interface needed by ThreadHandler.
type threadService interface {
	ListThreads(ctx context.Context, q domain.ListQuery) (domain.Page[thread.ThreadView], error)
	ListUserThreads(ctx context.Context, authorID int64, q domain.ListQuery) (domain.Page[thread.ThreadView], error)
	GetThread(ctx context.Context, id int64) (thread.ThreadView, error)
	ListReplies(ctx context.Context, threadID int64, q domain.ListQuery) (domain.Page[domain.ThreadReply], error)
	CreateThread(ctx context.Context, input thread.CreateThreadInput) (thread.ThreadView, error)
	CreateReply(ctx context.Context, input thread.CreateReplyInput) (domain.ThreadReply, error)
}

// ThreadHandler serves threads and their replies.
type ThreadHandler struct {
	svc threadService
	log *slog.Logger
}

// NewThreadHandler creates a ThreadHandler.
func NewThreadHandler(svc threadService, logger *slog.Logger) *ThreadHandler {
	return &ThreadHandler{svc: svc, log: logger.With("handler", "thread")}
}

type userSummaryResponse struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"fullName"`
	PhotoProfile *string `json:"photoProfile,omitempty"`
}

type threadResponse struct {
	ID         int64               `json:"id"`
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	Image      *string             `json:"image,omitempty"`
	Author     userSummaryResponse `json:"author"`
	LikeCount  int                 `json:"likeCount"`
	ReplyCount int                 `json:"replyCount"`
	Liked      bool                `json:"liked"`
	CanEdit    bool                `json:"canEdit"`
	CanDelete  bool                `json:"canDelete"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type replyResponse struct {
	ID        int64               `json:"id"`
	ThreadID  int64               `json:"threadId"`
	Content   string              `json:"content"`
	Author    userSummaryResponse `json:"author"`
	CreatedAt time.Time           `json:"createdAt"`
}

type createThreadRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Image   *string `json:"image"`
}

type createReplyRequest struct {
	Content string `json:"content"`
}

func toUserSummary(u domain.UserSummary) userSummaryResponse {
	return userSummaryResponse{ID: u.ID, Username: u.Username, FullName: u.FullName, PhotoProfile: u.PhotoProfile}
}

func toThreadResponse(v thread.ThreadView) threadResponse {
	return threadResponse{
		ID:         v.ID,
		Title:      v.Title,
		Content:    v.Content,
		Image:      v.Image,
		Author:     toUserSummary(v.Author),
		LikeCount:  v.LikeCount,
		ReplyCount: v.ReplyCount,
		Liked:      v.Liked,
		CanEdit:    v.CanEdit,
		CanDelete:  v.CanDelete,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func toReplyResponse(r domain.ThreadReply) replyResponse {
	return replyResponse{
		ID:        r.ID,
		ThreadID:  r.ThreadID,
		Content:   r.Content,
		Author:    toUserSummary(r.Author),
		CreatedAt: r.CreatedAt,
	}
}

// List handles GET /threads.
func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	q, ok := h.listQuery(w, r, domain.ThreadSortFields)
	if !ok {
		return
	}

	page, err := h.svc.ListThreads(r.Context(), q)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(q, page, toThreadResponse))
}

// ListByUser handles GET /users/{id}/threads.
func (h *ThreadHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	q, ok := h.listQuery(w, r, domain.ThreadSortFields)
	if !ok {
		return
	}

	page, err := h.svc.ListUserThreads(r.Context(), authorID, q)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(q, page, toThreadResponse))
}

// Get handles GET /threads/{id}.
func (h *ThreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	v, err := h.svc.GetThread(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toThreadResponse(v))
}

// Create handles POST /threads.
func (h *ThreadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createThreadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.svc.CreateThread(r.Context(), thread.CreateThreadInput{
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toThreadResponse(v))
}

// ListReplies handles GET /threads/{id}/replies.
func (h *ThreadHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	q, ok := h.listQuery(w, r, domain.ReplySortFields)
	if !ok {
		return
	}

	page, err := h.svc.ListReplies(r.Context(), id, q)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(q, page, toReplyResponse))
}

// CreateReply handles POST /threads/{id}/replies.
func (h *ThreadHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req createReplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.svc.CreateReply(r.Context(), thread.CreateReplyInput{ThreadID: id, Content: req.Content})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReplyResponse(reply))
}

func (h *ThreadHandler) listQuery(w http.ResponseWriter, r *http.Request, sortable []string) (domain.ListQuery, bool) {
	q, err := parseListQuery(r)
	if err == nil {
		q, err = q.Normalize(sortable)
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return domain.ListQuery{}, false
	}
	return q, true
}
