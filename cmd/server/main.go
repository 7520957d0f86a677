package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_dashboard/internal/app/di"
	"market_dashboard/internal/app/router"
	"market_dashboard/internal/platform/config"
	"market_dashboard/internal/platform/logger"
	infraredis "market_dashboard/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env は任意（本番では環境変数を直接設定）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	if cfg.APIKey == "" {
		slog.Warn("API_KEY is not set. Every fetch cycle will fail until it is configured.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		if !errors.Is(err, infraredis.ErrDisabled) {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	dashboard, err := di.NewDashboard(cfg, rdb)
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(dashboard.Handler, dashboard.Limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	dashboard.Controller.Start(ctx)

	go func() {
		slog.Info("server started", "addr", srv.Addr, "refresh_interval", cfg.RefreshInterval, "locale", cfg.DisplayLocale)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	dashboard.Controller.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
