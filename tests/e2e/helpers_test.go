//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/threads-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/threads-backend/internal/app"
	authpkg "github.com/heartmarshall/threads-backend/internal/auth"
	"github.com/heartmarshall/threads-backend/internal/config"
	"github.com/heartmarshall/threads-backend/internal/domain"
	"github.com/heartmarshall/threads-backend/internal/realtime"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	Redis    *miniredis.Miniredis
	Registry *realtime.Registry
	jwt      *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{JWTSecret: jwtSecret, JWTIssuer: jwtIssuer, AccessTokenTTL: 15 * time.Minute},
		CORS: config.CORSConfig{AllowedOrigins: "*"},
		Cache: config.CacheConfig{
			ThreadsTTL: 30 * time.Second,
			RepliesTTL: 30 * time.Second,
		},
		Notify: config.NotifyConfig{BatchConcurrency: 4, PersistLikes: true},
		WebSocket: config.WebSocketConfig{
			RegistryShards:  8,
			SendBuffer:      16,
			WriteWait:       5 * time.Second,
			PongWait:        time.Minute,
			MaxMessageBytes: 4096,
		},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 10000, CleanupInterval: time.Minute},
	}
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and an in-process Redis.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	srv := app.NewServer(app.Deps{Config: testConfig(), Pool: pool, Redis: rdb, Log: logger})
	t.Cleanup(srv.Close)

	hs := httptest.NewServer(srv.Handler)
	t.Cleanup(hs.Close)

	return &testServer{
		URL:      hs.URL,
		Client:   hs.Client(),
		Pool:     pool,
		Redis:    mr,
		Registry: srv.Registry,
		jwt:      authpkg.NewJWTManager(jwtSecret, jwtIssuer, 15*time.Minute),
	}
}

// ---------------------------------------------------------------------------
// Users and requests
// ---------------------------------------------------------------------------

type testUser struct {
	domain.User
	Token string
}

func (ts *testServer) createUser(t *testing.T) testUser {
	t.Helper()

	u := testhelper.SeedUser(t, ts.Pool)
	tok, err := ts.jwt.GenerateAccessToken(u.ID)
	require.NoError(t, err)
	return testUser{User: u, Token: tok}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp.StatusCode, out
}

// ---------------------------------------------------------------------------
// Live sessions
// ---------------------------------------------------------------------------

type pushMessage struct {
	Event     string                     `json:"event"`
	Payload   domain.NotificationPayload `json:"payload"`
	CreatedAt time.Time                  `json:"createdAt"`
}

func (ts *testServer) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// waitConnected polls until userID has n live sessions. Registration
// happens after the upgrade completes, so a fresh dial may not be visible yet.
func (ts *testServer) waitConnected(t *testing.T, userID int64, n int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return ts.Registry.Sessions(userID) == n
	}, 5*time.Second, 10*time.Millisecond)
}

func readPush(t *testing.T, conn *websocket.Conn) pushMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg pushMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	var netErr interface{ Timeout() bool }
	require.ErrorAs(t, err, &netErr)
	require.True(t, netErr.Timeout(), "expected no message, got %v", err)
}

func countNotifications(t *testing.T, pool *pgxpool.Pool, userID int64) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM notifications WHERE user_id = $1`, userID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}
