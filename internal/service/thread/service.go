// Package thread serves thread and reply listings through the read-through
// cache and notifies users mentioned in, or replied to on, their threads.
package thread

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/threads-backend/internal/cache"
	"github.com/heartmarshall/threads-backend/internal/config"
	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/internal/service/notification"
)

type threadRepo interface {
	List(ctx context.Context, f domain.ThreadFilter) ([]domain.Thread, int, error)
	GetByID(ctx context.Context, id int64) (domain.Thread, error)
	AuthorID(ctx context.Context, id int64) (int64, error)
	Create(ctx context.Context, authorID int64, title, content string, image *string) (domain.Thread, error)
}

type replyRepo interface {
	List(ctx context.Context, threadID int64, q domain.ListQuery) ([]domain.ThreadReply, int, error)
	Create(ctx context.Context, threadID, authorID int64, content string) (domain.ThreadReply, error)
}

type likeRepo interface {
	LikedThreads(ctx context.Context, userID int64, threadIDs []int64) (map[int64]bool, error)
}

type userRepo interface {
	ListByUsernames(ctx context.Context, names []string) ([]domain.User, error)
}

type notifier interface {
	Notify(ctx context.Context, userID int64, e domain.Event, persist bool) (domain.NotificationPayload, error)
	NotifyMany(ctx context.Context, recipients []int64, build func(userID int64) domain.Event, persist bool) notification.BatchResult
}

// Service implements thread and reply operations.
type Service struct {
	threads  threadRepo
	replies  replyRepo
	likes    likeRepo
	users    userRepo
	notifier notifier
	cache    *cache.Layer
	ttl      config.CacheConfig
	log      *slog.Logger
}

// NewService creates a new thread service.
func NewService(
	log *slog.Logger,
	threads threadRepo,
	replies replyRepo,
	likes likeRepo,
	users userRepo,
	notifier notifier,
	layer *cache.Layer,
	ttl config.CacheConfig,
) *Service {
	return &Service{
		threads:  threads,
		replies:  replies,
		likes:    likes,
		users:    users,
		notifier: notifier,
		cache:    layer,
		ttl:      ttl,
		log:      log.With("service", "thread"),
	}
}

// ThreadView is a thread as seen by one viewer. The flags are computed per
// request and never stored in the shared cache.
type ThreadView struct {
	domain.Thread
	Liked     bool
	CanEdit   bool
	CanDelete bool
}
