package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/pkg/ctxutil"
)

// List returns a page of the current user's notifications.
func (s *Service) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Notification], error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Page[domain.Notification]{}, domain.ErrUnauthorized
	}

	q, err := q.Normalize(domain.NotificationSortFields)
	if err != nil {
		return domain.Page[domain.Notification]{}, err
	}

	items, total, err := s.notifications.List(ctx, userID, q)
	if err != nil {
		return domain.Page[domain.Notification]{}, fmt.Errorf("list notifications: %w", err)
	}

	return domain.Page[domain.Notification]{Items: items, Total: total}, nil
}

// UnreadCount returns the number of unread notifications of the current user.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marks one notification of the current user as read.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}

	if err := s.notifications.MarkRead(ctx, userID, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification of the current user as read and
// returns how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return n, nil
}

// Delete deletes one notification of the current user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}

	if err := s.notifications.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	s.log.InfoContext(ctx, "notification deleted",
		slog.Int64("user_id", userID),
		slog.Int64("notification_id", id),
	)
	return nil
}

// DeleteAll deletes every notification of the current user.
func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all notifications: %w", err)
	}

	s.log.InfoContext(ctx, "all notifications deleted",
		slog.Int64("user_id", userID),
		slog.Int("deleted_count", n),
	)
	return n, nil
}

// PruneRead deletes read notifications older than retention.
func (s *Service) PruneRead(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, domain.NewValidationError("retention", "must be positive")
	}

	before := s.now().Add(-retention)
	n, err := s.notifications.DeleteReadBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("prune read notifications: %w", err)
	}

	s.log.InfoContext(ctx, "read notifications pruned",
		slog.Int("deleted_count", n),
		slog.Time("before", before),
	)
	return n, nil
}
