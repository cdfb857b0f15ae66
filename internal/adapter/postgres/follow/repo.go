// Package follow implements the follower graph using PostgreSQL.
package follow

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/threads-backend/internal/adapter/postgres"
	"github.com/heartmarshall/threads-backend/internal/domain"
)

// Repo provides follow persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new follow repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)
ON CONFLICT (follower_id, following_id) DO NOTHING`

// Insert makes followerID follow followingID and reports false when the
// edge already existed. An unknown user yields domain.ErrNotFound.
func (r *Repo) Insert(ctx context.Context, followerID, followingID int64) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertSQL, followerID, followingID)
	if err != nil {
		return false, postgres.MapError(err, "follow of user", followingID)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes the edge and reports whether it existed.
func (r *Repo) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return false, postgres.MapError(err, "follow of user", followingID)
	}
	return tag.RowsAffected() == 1, nil
}

const countSQL = `
SELECT
    (SELECT count(*) FROM follows WHERE following_id = $1),
    (SELECT count(*) FROM follows WHERE follower_id = $1)`

// Count returns the follower and following totals of userID.
func (r *Repo) Count(ctx context.Context, userID int64) (domain.FollowCount, error) {
	var c domain.FollowCount
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countSQL, userID).Scan(&c.Followers, &c.Following); err != nil {
		return domain.FollowCount{}, fmt.Errorf("count follows: %w", err)
	}
	return c, nil
}
