package social

import (
	"context"
	"fmt"

	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/pkg/ctxutil"
)

// ToggleLike likes threadID on behalf of the current user, or removes the
// like if it already exists. It reports whether the thread is liked after
// the call. A new like on someone else's thread notifies its author.
func (s *Service) ToggleLike(ctx context.Context, threadID int64) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}
	if threadID <= 0 {
		return false, domain.NewValidationError("thread_id", "must be positive")
	}

	authorID, err := s.threads.AuthorID(ctx, threadID)
	if err != nil {
		return false, fmt.Errorf("find thread: %w", err)
	}

	var liked bool
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inserted, err := s.likes.Insert(txCtx, userID, threadID)
		if err != nil {
			return fmt.Errorf("insert like: %w", err)
		}
		if inserted {
			liked = true
			return nil
		}
		if _, err := s.likes.Delete(txCtx, userID, threadID); err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if liked && authorID != userID {
		if name, ok := s.actorName(ctx, userID); ok {
			s.notify(ctx, authorID, domain.Like{
				From:     userID,
				ThreadID: threadID,
				Message:  fmt.Sprintf("%s liked your thread", name),
			}, s.persistLikes)
		}
	}

	return liked, nil
}
