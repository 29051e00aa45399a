package main

import (
	"context"

	"taskdeck/internal/config"
	"taskdeck/internal/db"
	"taskdeck/internal/logger"
)

// Applies the embedded schema migrations and exits. The server also runs
// them on startup; this tool exists for deploy pipelines that migrate
// before rolling the app.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		logger.Fatal("migrations failed", "error", err)
	}
	logger.Info("migrations applied")
}
