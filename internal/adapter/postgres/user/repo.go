// Package user implements read access to user profiles using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/threads-backend/internal/adapter/postgres"
	"github.com/heartmarshall/threads-backend/internal/domain"
)

const columns = "id, username, full_name, photo_profile, created_at"

// Repo provides user lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns the user with id or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT `+columns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// ListByUsernames returns the users whose username is in names.
// Unknown names are ignored; the result order is unspecified.
func (r *Repo) ListByUsernames(ctx context.Context, names []string) ([]domain.User, error) {
	if len(names) == 0 {
		return []domain.User{}, nil
	}

	sql, args, err := postgres.Builder().
		Select(columns).
		From("users").
		Where(squirrel.Eq{"username": names}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users by username: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, len(names))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.PhotoProfile, &u.CreatedAt)
	return u, err
}
