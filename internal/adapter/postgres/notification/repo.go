// Package notification implements the notification repository using PostgreSQL.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/threads-backend/internal/adapter/postgres"
	"github.com/heartmarshall/threads-backend/internal/domain"
)

const columns = "id, user_id, kind, message, from_user_id, thread_id, read, created_at"

var sortColumns = map[string]string{
	"created_at": "created_at",
	"read":       "read",
}

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO notifications (user_id, kind, message, from_user_id, thread_id, read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + columns

// Create inserts n and returns it with the id assigned by the database.
// An unknown recipient, sender or thread yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createSQL,
		n.UserID, string(n.Kind), n.Message, n.FromUserID, n.ThreadID, n.Read, n.CreatedAt,
	)
	created, err := scanNotification(row)
	if err != nil {
		return domain.Notification{}, postgres.MapError(err, "notification for user", n.UserID)
	}

	return created, nil
}

const markReadSQL = `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`

// MarkRead marks a notification read. Returns domain.ErrNotFound if it does
// not exist or belongs to another user. Marking twice is not an error.
func (r *Repo) MarkRead(ctx context.Context, userID, id int64) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, markReadSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

const markAllReadSQL = `UPDATE notifications SET read = true WHERE user_id = $1 AND NOT read`

// MarkAllRead marks every unread notification of userID read and returns
// how many changed.
func (r *Repo) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, markAllReadSQL, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

const deleteSQL = `DELETE FROM notifications WHERE id = $1 AND user_id = $2`

// Delete removes a notification. Returns domain.ErrNotFound if it does not
// exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, id int64) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

const deleteAllSQL = `DELETE FROM notifications WHERE user_id = $1`

// DeleteAll removes every notification of userID. Idempotent.
func (r *Repo) DeleteAll(ctx context.Context, userID int64) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteAllSQL, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

const deleteReadBeforeSQL = `DELETE FROM notifications WHERE read AND created_at < $1`

// DeleteReadBefore removes read notifications created before the cutoff.
func (r *Repo) DeleteReadBefore(ctx context.Context, before time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteReadBeforeSQL, before)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns a page of userID's notifications and the total number
// matching the date range of q. q must be normalized.
func (r *Repo) List(ctx context.Context, userID int64, q domain.ListQuery) ([]domain.Notification, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.ApplyDateRange(
		postgres.Builder().Select("count(*)").From("notifications").Where(squirrel.Eq{"user_id": userID}),
		q, "created_at",
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	listSQL, listArgs, err := postgres.ApplyListQuery(
		postgres.Builder().Select(columns).From("notifications").Where(squirrel.Eq{"user_id": userID}),
		q, "created_at", sortColumns,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Notification, 0, q.Limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notifications: %w", err)
	}

	return items, total, nil
}

const countUnreadSQL = `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`

// CountUnread returns the number of unread notifications of userID.
func (r *Repo) CountUnread(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countUnreadSQL, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var (
		n    domain.Notification
		kind string
	)
	if err := row.Scan(&n.ID, &n.UserID, &kind, &n.Message, &n.FromUserID, &n.ThreadID, &n.Read, &n.CreatedAt); err != nil {
		return domain.Notification{}, err
	}
	n.Kind = domain.Kind(kind)
	return n, nil
}
