// Package reply implements thread reply persistence using PostgreSQL.
package reply

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/threads-backend/internal/adapter/postgres"
	"github.com/heartmarshall/threads-backend/internal/domain"
)

var replyColumns = []string{
	"r.id", "r.thread_id", "r.content", "r.created_at",
	"u.id", "u.username", "u.full_name", "u.photo_profile",
}

var replySortColumns = map[string]string{
	"created_at": "r.created_at",
}

// Repo provides reply persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reply repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns a page of replies of threadID and their total count.
// q must be normalized.
func (r *Repo) List(ctx context.Context, threadID int64, q domain.ListQuery) ([]domain.ThreadReply, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.ApplyDateRange(
		postgres.Builder().Select("count(*)").From("replies r").Where(squirrel.Eq{"r.thread_id": threadID}),
		q, "r.created_at",
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count replies: %w", err)
	}

	listSQL, listArgs, err := postgres.ApplyListQuery(
		postgres.Builder().
			Select(replyColumns...).
			From("replies r").
			Join("users u ON u.id = r.author_id").
			Where(squirrel.Eq{"r.thread_id": threadID}),
		q, "r.created_at", replySortColumns,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	replies := make([]domain.ThreadReply, 0, q.Limit)
	for rows.Next() {
		rep, err := scanReply(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reply: %w", err)
		}
		replies = append(replies, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate replies: %w", err)
	}

	return replies, total, nil
}

const createSQL = `
WITH inserted AS (
    INSERT INTO replies (thread_id, author_id, content)
    VALUES ($1, $2, $3)
    RETURNING id, thread_id, author_id, content, created_at
)
SELECT i.id, i.thread_id, i.content, i.created_at,
       u.id, u.username, u.full_name, u.photo_profile
FROM inserted i
JOIN users u ON u.id = i.author_id`

// Create inserts a reply. An unknown thread yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, threadID, authorID int64, content string) (domain.ThreadReply, error) {
	rep, err := scanReply(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL, threadID, authorID, content))
	if err != nil {
		return domain.ThreadReply{}, postgres.MapError(err, "reply on thread", threadID)
	}
	return rep, nil
}

func scanReply(row pgx.Row) (domain.ThreadReply, error) {
	var rep domain.ThreadReply
	err := row.Scan(
		&rep.ID, &rep.ThreadID, &rep.Content, &rep.CreatedAt,
		&rep.Author.ID, &rep.Author.Username, &rep.Author.FullName, &rep.Author.PhotoProfile,
	)
	return rep, err
}
