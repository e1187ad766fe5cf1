package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"licensekeeper/internal/app/server/api"
	"licensekeeper/internal/app/server/config"
	"licensekeeper/internal/app/server/metrics"
	"licensekeeper/internal/domain/mirror"
	"licensekeeper/internal/infrastructure/cache"
	"licensekeeper/internal/infrastructure/storage"
	"licensekeeper/internal/utils/logger"

	"golang.org/x/exp/slog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	log.Info("starting license mirror", "env", cfg.Env, "driver", cfg.DB.Driver, "addr", cfg.Server.RunAddress)

	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("close storage", "error", err)
		}
	}()

	var mirrorCache mirror.Cache
	if cfg.Cache.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, lookups are not cached", "error", err)
		} else {
			defer client.Close()
			mirrorCache = cache.NewRedisMirrorCache(client, log)
		}
	}

	service := mirror.NewService(st.Repository(), mirrorCache, cfg.Cache.TTL, log)
	router := api.New(service, metrics.New(), api.Tokens{Read: cfg.Auth.Token, Admin: cfg.Auth.AdminToken}, log)

	srv := &http.Server{
		Addr:         cfg.Server.RunAddress,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
