// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"market_dashboard/internal/feature/dashboard/adapters/cache"
	"market_dashboard/internal/feature/dashboard/adapters/gemini"
	"market_dashboard/internal/feature/dashboard/transport/handler"
	"market_dashboard/internal/feature/dashboard/usecase"
	"market_dashboard/internal/platform/config"
	infrahttp "market_dashboard/internal/platform/http"
	"market_dashboard/internal/platform/locale"
	"market_dashboard/internal/shared/ratelimiter"
)

// Dashboard bundles the components of the dashboard feature.
type Dashboard struct {
	Controller *usecase.RefreshController
	Handler    *handler.DashboardHandler
	Limiter    *ratelimiter.RateLimiter
}

// NewDashboard wires the ingestion pipeline from configuration.
// When rdb is nil, replies are fetched without the Redis cache.
func NewDashboard(cfg *config.Config, rdb *redis.Client) (*Dashboard, error) {
	tz, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	loc := locale.Resolve(cfg.DisplayLocale)

	httpClient := infrahttp.NewHTTPClient(cfg.GeminiTimeout)
	generator := gemini.NewSearchGroundedGenerator(gemini.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
	}, httpClient)

	normalizer := usecase.NewNormalizer(tz, loc.TimeLayout)
	dashboardUC := usecase.NewDashboardUsecase(generator, normalizer)

	var fetcher usecase.BriefFetcher = dashboardUC
	if rdb != nil {
		fetcher = cache.NewCachingBriefFetcher(rdb, cfg.CacheTTL, dashboardUC, cache.DefaultNamespace)
	}

	ctrl := usecase.NewRefreshController(fetcher, cfg.RefreshInterval, loc.FailureMessage)

	return &Dashboard{
		Controller: ctrl,
		Handler:    handler.NewDashboardHandler(ctrl, loc, tz),
		Limiter:    ratelimiter.NewRateLimiter(cfg.ManualRefreshRate, cfg.ManualRefreshBurst),
	}, nil
}
