package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/slabworks/lister/internal/config"
	"github.com/slabworks/lister/internal/inventory"
	"github.com/slabworks/lister/internal/logging"
	"github.com/slabworks/lister/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"inventory", cfg.Source.InventoryPath,
		"template", cfg.Source.TemplatePath,
		"template_header_row", cfg.Source.TemplateHeaderRow,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Build the session and load the source files. An unreadable
	// inventory is fatal here at the load boundary; messy rows inside a
	// readable file never are.
	session := inventory.NewSession(
		cfg.Source.InventoryPath,
		cfg.Source.TemplatePath,
		cfg.Source.TemplateHeaderRow,
	)
	if err := session.Reload(); err != nil {
		slog.Error("failed to load source files", "error", err)
		os.Exit(1)
	}

	// Create server with config
	server := web.NewServer(session, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
