// Package config はアプリケーション設定を環境変数と任意の設定ファイルから読み込みます。
package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// Gemini API
	APIKey        string        `mapstructure:"api_key"`
	GeminiModel   string        `mapstructure:"gemini_model"`
	GeminiBaseURL string        `mapstructure:"gemini_base_url"`
	GeminiTimeout time.Duration `mapstructure:"gemini_timeout"`

	// 取得サイクルと表示
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	DisplayLocale   string        `mapstructure:"display_locale"`
	DisplayTimezone string        `mapstructure:"display_timezone"`

	// Redis（RedisAddr が空ならキャッシュ無効）
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`

	// 手動リフレッシュのレート制限
	ManualRefreshRate  float64 `mapstructure:"manual_refresh_rate"`
	ManualRefreshBurst int     `mapstructure:"manual_refresh_burst"`
}

// Location は表示用タイムゾーンを返します。
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.DisplayTimezone)
}

// Load は環境変数と任意の config.yaml から設定を読み込みます。
// 環境変数が設定ファイルより優先されます。
//
// APIキー（API_KEY または GEMINI_API_KEY）は検証しません。
// 未設定の場合は呼び出し時の認証エラーとして表面化します。
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("gemini_timeout", 60*time.Second)
	v.SetDefault("refresh_interval", 60*time.Second)
	v.SetDefault("display_locale", "zh-CN")
	v.SetDefault("display_timezone", "Asia/Shanghai")
	v.SetDefault("cache_ttl", 30*time.Second)
	v.SetDefault("redis_db", 0)
	v.SetDefault("manual_refresh_rate", 0.2)
	v.SetDefault("manual_refresh_burst", 1)

	// 設定ファイルは任意
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindings := map[string][]string{
		"port":                 {"PORT"},
		"log_level":            {"LOG_LEVEL"},
		"api_key":              {"API_KEY", "GEMINI_API_KEY"},
		"gemini_model":         {"GEMINI_MODEL"},
		"gemini_base_url":      {"GEMINI_BASE_URL"},
		"gemini_timeout":       {"GEMINI_TIMEOUT"},
		"refresh_interval":     {"REFRESH_INTERVAL"},
		"display_locale":       {"DISPLAY_LOCALE"},
		"display_timezone":     {"DISPLAY_TIMEZONE"},
		"cache_ttl":            {"CACHE_TTL"},
		"redis_addr":           {"REDIS_ADDR"},
		"redis_password":       {"REDIS_PASSWORD"},
		"redis_db":             {"REDIS_DB"},
		"manual_refresh_rate":  {"MANUAL_REFRESH_RATE"},
		"manual_refresh_burst": {"MANUAL_REFRESH_BURST"},
	}
	for key, envs := range bindings {
		input := append([]string{key}, envs...)
		if err := v.BindEnv(input...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("refresh_interval must be positive, got %v", cfg.RefreshInterval)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid display_timezone %q: %w", cfg.DisplayTimezone, err)
	}

	return cfg, nil
}
