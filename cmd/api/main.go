package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikhilbhutani/speechproxy/internal/api"
	"github.com/nikhilbhutani/speechproxy/internal/config"
	"github.com/nikhilbhutani/speechproxy/internal/logger"
	"github.com/nikhilbhutani/speechproxy/internal/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env,
		logger.WithLogToFile(cfg.Log.File != ""),
		logger.WithLogFile(cfg.Log.File),
	)
	slog.SetDefault(log)

	if !cfg.Polly().HasCredentials() {
		slog.Warn("AWS credentials not set, synthesis requests will fail", "region", cfg.AWS.Region)
	}

	synth := tts.NewSynthesizer(cfg.Polly(), nil, log)
	handler := api.NewRouter(synth).Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "region", cfg.AWS.Region)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
