package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

type socialService interface {
	ToggleLike(ctx context.Context, threadID int64) (bool, error)
	ToggleFollow(ctx context.Context, targetID int64) (bool, error)
	FollowCount(ctx context.Context) (domain.FollowCount, error)
}

// SocialHandler serves like and follow toggles.
type SocialHandler struct {
	svc socialService
	log *slog.Logger
}

// NewSocialHandler creates a SocialHandler.
func NewSocialHandler(svc socialService, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{svc: svc, log: logger.With("handler", "social")}
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

type followResponse struct {
	Following bool `json:"following"`
}

type followCountResponse struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// toggleStatus is 201 when the toggle created the relation and 200 when it
// removed it.
func toggleStatus(on bool) int {
	if on {
		return http.StatusCreated
	}
	return http.StatusOK
}

// ToggleLike handles PATCH /threads/{id}/like.
func (h *SocialHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	liked, err := h.svc.ToggleLike(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, toggleStatus(liked), likeResponse{Liked: liked})
}

// ToggleFollow handles PATCH /follow/{id}.
func (h *SocialHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	following, err := h.svc.ToggleFollow(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, toggleStatus(following), followResponse{Following: following})
}

// FollowCount handles GET /follow/counter.
func (h *SocialHandler) FollowCount(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.FollowCount(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, followCountResponse{Followers: c.Followers, Following: c.Following})
}
