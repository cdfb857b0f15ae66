package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/threads-backend/internal/adapter/postgres"
	"github.com/heartmarshall/threads-backend/internal/adapter/postgres/follow"
	"github.com/heartmarshall/threads-backend/internal/adapter/postgres/like"
	notificationrepo "github.com/heartmarshall/threads-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/threads-backend/internal/adapter/postgres/reply"
	threadrepo "github.com/heartmarshall/threads-backend/internal/adapter/postgres/thread"
	"github.com/heartmarshall/threads-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/threads-backend/internal/adapter/redis"
	"github.com/heartmarshall/threads-backend/internal/auth"
	"github.com/heartmarshall/threads-backend/internal/cache"
	"github.com/heartmarshall/threads-backend/internal/config"
	"github.com/heartmarshall/threads-backend/internal/realtime"
	"github.com/heartmarshall/threads-backend/internal/service/notification"
	"github.com/heartmarshall/threads-backend/internal/service/social"
	"github.com/heartmarshall/threads-backend/internal/service/thread"
	"github.com/heartmarshall/threads-backend/internal/transport/middleware"
	"github.com/heartmarshall/threads-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL and Redis, serves HTTP until ctx is cancelled and then shuts
// down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	srv := NewServer(Deps{Config: cfg, Pool: pool, Redis: rdb, Log: logger})
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      srv.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	// Hijacked WebSocket connections are not tracked by Shutdown.
	httpSrv.RegisterOnShutdown(srv.CloseSessions)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Int("live_users", srv.Registry.Users()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Deps are the external resources a Server is built on.
type Deps struct {
	Config *config.Config
	Pool   *pgxpool.Pool
	Redis  goredis.UniversalClient
	Log    *slog.Logger
}

// Server is the fully wired HTTP surface: REST API, WebSocket endpoint,
// probes and metrics.
type Server struct {
	Handler  http.Handler
	Registry *realtime.Registry

	limiter *middleware.RateLimiter
}

// NewServer wires repositories, services and handlers.
func NewServer(d Deps) *Server {
	cfg, logger := d.Config, d.Log

	// Repositories.
	txm := postgres.NewTxManager(d.Pool)
	notifications := notificationrepo.New(d.Pool)
	threads := threadrepo.New(d.Pool)
	replies := reply.New(d.Pool)
	likes := like.New(d.Pool)
	follows := follow.New(d.Pool)
	users := user.New(d.Pool)

	// Cache.
	store := redis.NewStore(d.Redis)
	var cacheOpts []cache.Option
	if cfg.Cache.SingleFlight {
		cacheOpts = append(cacheOpts, cache.WithSingleFlight())
	}
	layer := cache.New(store, logger, cacheOpts...)

	// Live sessions.
	registry := realtime.NewRegistry(cfg.WebSocket.RegistryShards, logger)
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// Services.
	notificationService := notification.NewService(logger, notifications, registry, cfg.Notify.BatchConcurrency)
	threadService := thread.NewService(logger, threads, replies, likes, users, notificationService, layer, cfg.Cache)
	socialService := social.NewService(logger, likes, follows, threads, users, notificationService, txm, cfg.Notify.PersistLikes)

	// HTTP.
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	api := middleware.Chain(
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute),
		middleware.Auth(jwtMgr),
		middleware.RequireUser,
	)

	mux := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(d.Pool, store, BuildVersion()),
		Threads:       rest.NewThreadHandler(threadService, logger),
		Social:        rest.NewSocialHandler(socialService, logger),
		Notifications: rest.NewNotificationHandler(notificationService, logger),
	}, api)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(mux)

	// The upgrade needs the raw ResponseWriter, so /ws bypasses the
	// request logger.
	root := http.NewServeMux()
	root.Handle("GET /ws", middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
	)(realtime.NewHandler(registry, jwtMgr, cfg.WebSocket, cfg.CORS.AllowedOrigins, logger)))
	root.Handle("/", handler)

	return &Server{Handler: root, Registry: registry, limiter: limiter}
}

// CloseSessions closes every live session with 1001 "going away".
func (s *Server) CloseSessions() {
	s.Registry.CloseAll(realtime.CloseGoingAway, "server shutting down")
}

// Close stops background workers and closes live sessions.
func (s *Server) Close() {
	s.limiter.Stop()
	s.CloseSessions()
}
