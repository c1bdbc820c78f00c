package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/server"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/server.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", configPath, "err", err)
		os.Exit(1)
	}

	level, _ := cfg.Log.SlogLevel() // validated by Load
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	log.Info("configuration loaded",
		"path", configPath,
		"orientation", cfg.Grid.Orientation,
		"columns", cfg.Grid.Columns,
		"rows", cfg.Grid.Rows)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", "err", err)
		os.Exit(1)
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Info("server listening", "addr", addr)
		if err := srv.Start(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Error("server error", "err", err)
		os.Exit(1)
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Error("error during shutdown", "err", err)
	}
	log.Info("server stopped")
}
