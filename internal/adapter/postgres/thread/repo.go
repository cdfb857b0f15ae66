// Package thread implements thread and reply persistence using PostgreSQL.
package thread

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/threads-backend/internal/adapter/postgres"
	"github.com/heartmarshall/threads-backend/internal/domain"
)

var threadColumns = []string{
	"t.id", "t.title", "t.content", "t.image", "t.created_at", "t.updated_at",
	"u.id", "u.username", "u.full_name", "u.photo_profile",
	"(SELECT count(*) FROM likes l WHERE l.thread_id = t.id)",
	"(SELECT count(*) FROM replies r WHERE r.thread_id = t.id)",
}

var threadSortColumns = map[string]string{
	"created_at": "t.created_at",
	"updated_at": "t.updated_at",
	"title":      "t.title",
}

// Repo provides thread persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new thread repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func selectThreads() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(threadColumns...).
		From("threads t").
		Join("users u ON u.id = t.author_id")
}

// List returns a page of threads matching f and the total number of matches.
// f.Query must be normalized.
func (r *Repo) List(ctx context.Context, f domain.ThreadFilter) ([]domain.Thread, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	count := postgres.Builder().Select("count(*)").From("threads t")
	list := selectThreads()
	if f.AuthorID != nil {
		count = count.Where(squirrel.Eq{"t.author_id": *f.AuthorID})
		list = list.Where(squirrel.Eq{"t.author_id": *f.AuthorID})
	}

	countSQL, countArgs, err := postgres.ApplyDateRange(count, f.Query, "t.created_at").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count threads: %w", err)
	}

	listSQL, listArgs, err := postgres.ApplyListQuery(list, f.Query, "t.created_at", threadSortColumns).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	threads := make([]domain.Thread, 0, f.Query.Limit)
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate threads: %w", err)
	}

	return threads, total, nil
}

// GetByID returns the thread with id or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Thread, error) {
	sql, args, err := selectThreads().Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return domain.Thread{}, fmt.Errorf("build thread query: %w", err)
	}

	t, err := scanThread(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Thread{}, postgres.MapError(err, "thread", id)
	}
	return t, nil
}

// AuthorID returns the author of thread id or domain.ErrNotFound.
func (r *Repo) AuthorID(ctx context.Context, id int64) (int64, error) {
	var author int64
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT author_id FROM threads WHERE id = $1`, id).
		Scan(&author)
	if err != nil {
		return 0, postgres.MapError(err, "thread", id)
	}
	return author, nil
}

const createThreadSQL = `
INSERT INTO threads (author_id, title, content, image)
VALUES ($1, $2, $3, $4)
RETURNING id`

// Create inserts a thread and returns it as listed.
func (r *Repo) Create(ctx context.Context, authorID int64, title, content string, image *string) (domain.Thread, error) {
	var id int64
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, createThreadSQL, authorID, title, content, image).
		Scan(&id)
	if err != nil {
		return domain.Thread{}, postgres.MapError(err, "thread author", authorID)
	}
	return r.GetByID(ctx, id)
}

func scanThread(row pgx.Row) (domain.Thread, error) {
	var t domain.Thread
	err := row.Scan(
		&t.ID, &t.Title, &t.Content, &t.Image, &t.CreatedAt, &t.UpdatedAt,
		&t.Author.ID, &t.Author.Username, &t.Author.FullName, &t.Author.PhotoProfile,
		&t.LikeCount, &t.ReplyCount,
	)
	return t, err
}
