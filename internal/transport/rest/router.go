package rest

import (
	"net/http"

	"github.com/heartmarshall/threads-backend/internal/transport/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Health        *HealthHandler
	Threads       *ThreadHandler
	Social        *SocialHandler
	Notifications *NotificationHandler
}

// NewRouter mounts the probes unprotected and every API route behind api,
// which is expected to authenticate the caller.
func NewRouter(h Handlers, api middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	route := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, api(fn))
	}

	route("GET /threads", h.Threads.List)
	route("POST /threads", h.Threads.Create)
	route("GET /threads/{id}", h.Threads.Get)
	route("GET /threads/{id}/replies", h.Threads.ListReplies)
	route("POST /threads/{id}/replies", h.Threads.CreateReply)
	route("PATCH /threads/{id}/like", h.Social.ToggleLike)
	route("GET /users/{id}/threads", h.Threads.ListByUser)

	route("PATCH /follow/{id}", h.Social.ToggleFollow)
	route("GET /follow/counter", h.Social.FollowCount)

	route("GET /notifications", h.Notifications.List)
	route("GET /notifications/unread-count", h.Notifications.UnreadCount)
	route("PATCH /notifications", h.Notifications.MarkAllRead)
	route("PATCH /notifications/{id}", h.Notifications.MarkRead)
	route("DELETE /notifications", h.Notifications.DeleteAll)
	route("DELETE /notifications/{id}", h.Notifications.Delete)

	return mux
}
