package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/gbif-reconcile/internal/config"
	"github.com/agenthands/gbif-reconcile/internal/core"
	"github.com/agenthands/gbif-reconcile/internal/gbif"
	"github.com/agenthands/gbif-reconcile/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("Could not load config, using defaults", "path", cfgPath, "error", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	client := gbif.NewClient(cfg.GBIF)
	reconciler := core.NewReconciler(client, cfg, logger)
	srv := server.NewServer(reconciler, server.NewMetadata(cfg.Service), logger)
	r := srv.SetupRouter()

	logger.Info("Starting server", "port", cfg.Server.Port, "gbif", cfg.GBIF.BaseURL)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
