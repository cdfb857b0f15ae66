package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a unique username.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	u := domain.User{
		Username: "user_" + suffix,
		FullName: "Test User " + suffix,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (username, full_name) VALUES ($1, $2) RETURNING id, created_at`,
		u.Username, u.FullName,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return u
}

// SeedThread inserts a thread authored by authorID.
func SeedThread(t *testing.T, pool *pgxpool.Pool, authorID int64, title string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO threads (author_id, title, content) VALUES ($1, $2, $3) RETURNING id`,
		authorID, title, "content of "+title,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedThread: %v", err)
	}

	return id
}

// SeedNotification inserts a FOLLOW notification from fromID to userID.
func SeedNotification(t *testing.T, pool *pgxpool.Pool, userID, fromID int64, read bool) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO notifications (user_id, kind, message, from_user_id, read)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, string(domain.KindFollow), "started following you", fromID, read,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedNotification: %v", err)
	}

	return id
}
