// Package logger は構造化ロガーの初期化を提供します。
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLevel は "debug" / "info" / "warn" / "error" をslog.Levelに変換します。
// 未知の値は Info になります。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init は標準出力へJSONで出力するロガーをデフォルトに設定します。
func Init(level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}
