package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/internal/metrics"
	"github.com/heartmarshall/threads-backend/internal/realtime"
)

// Notify delivers e to every live session of userID.
//
// When persist is true the notification is stored first and the pushed
// payload carries the stored id; if the write fails the error wraps
// ErrPersistence and nothing is pushed. When persist is false the payload
// is pushed immediately without an id.
//
// Delivery is best effort: a recipient without live sessions receives
// nothing and that is not an error.
func (s *Service) Notify(ctx context.Context, userID int64, e domain.Event, persist bool) (domain.NotificationPayload, error) {
	if e == nil || !e.Kind().IsValid() {
		return domain.NotificationPayload{}, domain.NewValidationError("event", "required")
	}
	if userID <= 0 {
		return domain.NotificationPayload{}, domain.NewValidationError("user_id", "must be positive")
	}

	now := s.now()
	kind := e.Kind().String()
	persisted := strconv.FormatBool(persist)

	var payload domain.NotificationPayload
	if persist {
		n, err := s.notifications.Create(ctx, domain.NewNotification(userID, e, now))
		if err != nil {
			metrics.Notifications.WithLabelValues(kind, persisted, "failed").Inc()
			return domain.NotificationPayload{}, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		payload = domain.PersistedPayload(n)
	} else {
		payload = domain.EphemeralPayload(userID, e, now)
	}

	metrics.Notifications.WithLabelValues(kind, persisted, "ok").Inc()

	msg, err := realtime.EncodeNotification(payload, now)
	if err != nil {
		s.log.ErrorContext(ctx, "encode notification", slog.String("error", err.Error()))
		return payload, nil
	}

	delivered := s.sessions.Broadcast(userID, msg)
	s.log.DebugContext(ctx, "notification dispatched",
		slog.Int64("user_id", userID),
		slog.String("kind", kind),
		slog.Bool("persisted", persist),
		slog.Int("sessions", delivered),
	)

	return payload, nil
}

// FailedRecipient is a recipient whose notification could not be dispatched.
type FailedRecipient struct {
	UserID int64
	Err    error
}

// BatchResult reports the outcome of NotifyMany per recipient.
type BatchResult struct {
	Succeeded []int64
	Failed    []FailedRecipient
}

// Err aggregates the per-recipient failures, or returns nil.
func (r BatchResult) Err() error {
	var err error
	for _, f := range r.Failed {
		err = multierr.Append(err, fmt.Errorf("user %d: %w", f.UserID, f.Err))
	}
	return err
}

// NotifyMany notifies each distinct recipient with the event built for it,
// handling up to the configured number of recipients concurrently.
// A failure for one recipient does not affect the others.
// Results keep the order of recipients.
func (s *Service) NotifyMany(ctx context.Context, recipients []int64, build func(userID int64) domain.Event, persist bool) BatchResult {
	unique := make([]int64, 0, len(recipients))
	seen := make(map[int64]struct{}, len(recipients))
	for _, id := range recipients {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	errs := make([]error, len(unique))
	var g errgroup.Group
	g.SetLimit(s.batchConcurrency)

	for i, userID := range unique {
		g.Go(func() error {
			_, errs[i] = s.Notify(ctx, userID, build(userID), persist)
			return nil
		})
	}
	_ = g.Wait()

	var res BatchResult
	for i, userID := range unique {
		if errs[i] != nil {
			res.Failed = append(res.Failed, FailedRecipient{UserID: userID, Err: errs[i]})
			continue
		}
		res.Succeeded = append(res.Succeeded, userID)
	}

	if len(res.Failed) > 0 {
		s.log.WarnContext(ctx, "notification batch partially failed",
			slog.Int("succeeded", len(res.Succeeded)),
			slog.Int("failed", len(res.Failed)),
			slog.String("error", res.Err().Error()),
		)
	}

	return res
}
