package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/akshaytechonsy/postdeck/internal/config"
	"github.com/akshaytechonsy/postdeck/internal/dashboard"
	"github.com/akshaytechonsy/postdeck/internal/feed"
	"github.com/akshaytechonsy/postdeck/internal/pkg/logger"
	"github.com/akshaytechonsy/postdeck/internal/store"
)

func main() {
	// 1. Setup
	cfg := config.Load()
	log := logger.New(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer log.Sync()

	// 2. Store + job runner (injected, constructed once)
	st, job, err := store.New(cfg)
	if err != nil {
		log.Error("failed to initialize store", zap.Error(err))
		os.Exit(1)
	}
	log.Info("store initialized",
		zap.String("mode", cfg.Store.Mode),
		zap.String("bucket", cfg.Store.Bucket))

	svc := feed.New(st, job, log)

	// 3. Warm the feed once. A failure here is not fatal: the service comes
	// up with an empty feed and a user-visible message.
	if err := svc.Refresh(context.Background()); err != nil {
		log.Warn("initial refresh failed", zap.Error(err))
	}

	// 4. Serve
	srv := dashboard.New(svc, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Listen(cfg.App.Port); err != nil {
		log.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
