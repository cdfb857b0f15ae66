// Command migrate applies pending database migrations.
//
// Usage: migrate [-dir ./migrations]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/threads-backend/internal/adapter/postgres"
	"github.com/heartmarshall/threads-backend/internal/app"
	"github.com/heartmarshall/threads-backend/internal/config"
)

func main() {
	dir := flag.String("dir", "./migrations", "directory with goose migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := postgres.Migrate(ctx, cfg.Database.DSN, *dir)
	if err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()), slog.String("dir", *dir))
		os.Exit(1)
	}

	logger.Info("migrations applied",
		slog.Int("count", len(applied)),
		slog.Any("versions", applied),
	)
}
