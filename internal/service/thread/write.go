package thread

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/pkg/ctxutil"
)

// CreateThread creates a thread authored by the current user and notifies
// every other existing user @-mentioned in its content. Mention delivery
// failures are logged and do not fail the call.
func (s *Service) CreateThread(ctx context.Context, input CreateThreadInput) (ThreadView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ThreadView{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return ThreadView{}, err
	}

	content := strings.TrimSpace(input.Content)
	t, err := s.threads.Create(ctx, userID, strings.TrimSpace(input.Title), content, input.Image)
	if err != nil {
		return ThreadView{}, fmt.Errorf("create thread: %w", err)
	}

	s.log.InfoContext(ctx, "thread created",
		slog.Int64("user_id", userID),
		slog.Int64("thread_id", t.ID),
	)

	s.notifyMentions(ctx, t, content)

	return ThreadView{Thread: t, CanEdit: true, CanDelete: true}, nil
}

func (s *Service) notifyMentions(ctx context.Context, t domain.Thread, content string) {
	names := domain.ExtractMentions(content)
	if len(names) == 0 {
		return
	}

	users, err := s.users.ListByUsernames(ctx, names)
	if err != nil {
		s.log.ErrorContext(ctx, "resolve mentions",
			slog.Int64("thread_id", t.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	recipients := make([]int64, 0, len(users))
	for _, u := range users {
		if u.ID != t.Author.ID {
			recipients = append(recipients, u.ID)
		}
	}
	if len(recipients) == 0 {
		return
	}

	msg := fmt.Sprintf("%s mentioned you in a thread", t.Author.Username)
	res := s.notifier.NotifyMany(ctx, recipients, func(int64) domain.Event {
		return domain.Mention{From: t.Author.ID, ThreadID: t.ID, Message: msg}
	}, true)

	if err := res.Err(); err != nil {
		s.log.WarnContext(ctx, "some mentions were not delivered",
			slog.Int64("thread_id", t.ID),
			slog.Int("failed", len(res.Failed)),
			slog.String("error", err.Error()),
		)
	}
}

// CreateReply adds a reply by the current user and notifies the thread
// author unless they replied to themselves.
func (s *Service) CreateReply(ctx context.Context, input CreateReplyInput) (domain.ThreadReply, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ThreadReply{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.ThreadReply{}, err
	}

	authorID, err := s.threads.AuthorID(ctx, input.ThreadID)
	if err != nil {
		return domain.ThreadReply{}, fmt.Errorf("find thread: %w", err)
	}

	reply, err := s.replies.Create(ctx, input.ThreadID, userID, strings.TrimSpace(input.Content))
	if err != nil {
		return domain.ThreadReply{}, fmt.Errorf("create reply: %w", err)
	}

	if authorID != userID {
		e := domain.Reply{
			From:     userID,
			ThreadID: input.ThreadID,
			Message:  fmt.Sprintf("%s replied to your thread", reply.Author.Username),
		}
		if _, err := s.notifier.Notify(ctx, authorID, e, true); err != nil {
			s.log.WarnContext(ctx, "reply notification not delivered",
				slog.Int64("thread_id", input.ThreadID),
				slog.String("error", err.Error()),
			)
		}
	}

	return reply, nil
}
