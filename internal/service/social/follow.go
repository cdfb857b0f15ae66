package social

import (
	"context"
	"fmt"

	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/pkg/ctxutil"
)

// ToggleFollow makes the current user follow targetID, or unfollow if the
// follow already exists. It reports whether the user follows the target
// after the call. A new follow notifies the target.
func (s *Service) ToggleFollow(ctx context.Context, targetID int64) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}
	if targetID <= 0 {
		return false, domain.NewValidationError("user_id", "must be positive")
	}
	if targetID == userID {
		return false, domain.ErrSelfAction
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}

	var following bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inserted, err := s.follows.Insert(txCtx, userID, targetID)
		if err != nil {
			return fmt.Errorf("insert follow: %w", err)
		}
		if inserted {
			following = true
			return nil
		}
		if _, err := s.follows.Delete(txCtx, userID, targetID); err != nil {
			return fmt.Errorf("delete follow: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if following {
		if name, ok := s.actorName(ctx, userID); ok {
			s.notify(ctx, targetID, domain.Follow{
				From:    userID,
				Message: fmt.Sprintf("%s started following you", name),
			}, true)
		}
	}

	return following, nil
}

// FollowCount returns the follower and following totals of the current user.
func (s *Service) FollowCount(ctx context.Context) (domain.FollowCount, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.FollowCount{}, domain.ErrUnauthorized
	}

	count, err := s.follows.Count(ctx, userID)
	if err != nil {
		return domain.FollowCount{}, fmt.Errorf("count follows: %w", err)
	}
	return count, nil
}
