package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

// ErrPersistence wraps any failure to store a notification that was meant
// to be persisted. Nothing is pushed to live sessions in that case.
var ErrPersistence = errors.New("notification not persisted")

const defaultBatchConcurrency = 8

type notificationRepo interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
	List(ctx context.Context, userID int64, q domain.ListQuery) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, userID, id int64) error
	DeleteAll(ctx context.Context, userID int64) (int, error)
	DeleteReadBefore(ctx context.Context, before time.Time) (int, error)
}

type broadcaster interface {
	Broadcast(userID int64, msg []byte) int
}

// Service dispatches notifications to live sessions, writing them through
// to storage first when they are durable, and serves the per-user inbox.
type Service struct {
	notifications    notificationRepo
	sessions         broadcaster
	batchConcurrency int
	log              *slog.Logger
	now              func() time.Time
}

// NewService creates a new notification service. batchConcurrency bounds
// the number of recipients NotifyMany handles at once.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	sessions broadcaster,
	batchConcurrency int,
) *Service {
	if batchConcurrency < 1 {
		batchConcurrency = defaultBatchConcurrency
	}
	return &Service{
		notifications:    notifications,
		sessions:         sessions,
		batchConcurrency: batchConcurrency,
		log:              log.With("service", "notification"),
		now:              time.Now,
	}
}
