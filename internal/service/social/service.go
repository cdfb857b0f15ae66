// Package social implements likes and follows, and raises the LIKE and
// FOLLOW notifications they cause.
package social

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type likeRepo interface {
	Insert(ctx context.Context, userID, threadID int64) (bool, error)
	Delete(ctx context.Context, userID, threadID int64) (bool, error)
}

type followRepo interface {
	Insert(ctx context.Context, followerID, followingID int64) (bool, error)
	Delete(ctx context.Context, followerID, followingID int64) (bool, error)
	Count(ctx context.Context, userID int64) (domain.FollowCount, error)
}

type threadRepo interface {
	AuthorID(ctx context.Context, id int64) (int64, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

type notifier interface {
	Notify(ctx context.Context, userID int64, e domain.Event, persist bool) (domain.NotificationPayload, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements like and follow toggles.
type Service struct {
	log          *slog.Logger
	likes        likeRepo
	follows      followRepo
	threads      threadRepo
	users        userRepo
	notifier     notifier
	tx           txManager
	persistLikes bool
}

// NewService creates a new social service. persistLikes controls whether
// LIKE notifications are stored or only pushed to live sessions.
func NewService(
	logger *slog.Logger,
	likes likeRepo,
	follows followRepo,
	threads threadRepo,
	users userRepo,
	notifier notifier,
	tx txManager,
	persistLikes bool,
) *Service {
	return &Service{
		log:          logger.With("service", "social"),
		likes:        likes,
		follows:      follows,
		threads:      threads,
		users:        users,
		notifier:     notifier,
		tx:           tx,
		persistLikes: persistLikes,
	}
}

// actorName loads the username shown in a notification message. A failed
// lookup skips the notification and never fails the committed toggle.
func (s *Service) actorName(ctx context.Context, userID int64) (string, bool) {
	actor, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "notification skipped: load actor",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	return actor.Username, true
}

// notify delivers e to userID. Failures are logged only: the toggle that
// raised the event has already been committed.
func (s *Service) notify(ctx context.Context, userID int64, e domain.Event, persist bool) {
	if _, err := s.notifier.Notify(ctx, userID, e, persist); err != nil {
		s.log.WarnContext(ctx, "notification not delivered",
			slog.String("kind", e.Kind().String()),
			slog.Int64("recipient", userID),
			slog.String("error", err.Error()),
		)
	}
}
