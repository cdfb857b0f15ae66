// Package like implements thread like persistence using PostgreSQL.
package like

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/threads-backend/internal/adapter/postgres"
)

// Repo provides like persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new like repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO likes (user_id, thread_id) VALUES ($1, $2)
ON CONFLICT (user_id, thread_id) DO NOTHING`

// Insert records that userID likes threadID. It reports false when the
// like already existed. An unknown thread yields domain.ErrNotFound.
func (r *Repo) Insert(ctx context.Context, userID, threadID int64) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertSQL, userID, threadID)
	if err != nil {
		return false, postgres.MapError(err, "like on thread", threadID)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes the like of userID on threadID and reports whether one existed.
func (r *Repo) Delete(ctx context.Context, userID, threadID int64) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND thread_id = $2`, userID, threadID)
	if err != nil {
		return false, postgres.MapError(err, "like on thread", threadID)
	}
	return tag.RowsAffected() == 1, nil
}

// LikedThreads returns which of threadIDs userID has liked.
func (r *Repo) LikedThreads(ctx context.Context, userID int64, threadIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(threadIDs))
	if len(threadIDs) == 0 {
		return liked, nil
	}

	sql, args, err := postgres.Builder().
		Select("thread_id").
		From("likes").
		Where(squirrel.Eq{"user_id": userID, "thread_id": threadIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build liked query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list liked threads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked thread: %w", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked threads: %w", err)
	}

	return liked, nil
}
