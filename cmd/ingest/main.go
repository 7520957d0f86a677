package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"market_dashboard/internal/app/di"
	"market_dashboard/internal/platform/config"
	"market_dashboard/internal/platform/logger"
)

// 1回だけ取得サイクルを実行し、結果のスナップショットを標準出力にJSONで書き出します。
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	dashboard, err := di.NewDashboard(cfg, nil)
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := dashboard.Controller.Refresh(ctx); err != nil {
		slog.Error("refresh failed", "error", err)
		os.Exit(1)
	}

	s := dashboard.Controller.Snapshot()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		slog.Error("failed to encode snapshot", "error", err)
		os.Exit(1)
	}

	if s.Error != "" {
		slog.Error("ingest failed", "error", s.Error)
		os.Exit(1)
	}
	slog.Info("ingest ok", "quotes", len(s.Quotes), "news", len(s.News), "events", len(s.Events))
}
