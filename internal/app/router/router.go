package router

import (
	"github.com/gin-gonic/gin"

	dashboardhandler "market_dashboard/internal/feature/dashboard/transport/handler"
	"market_dashboard/internal/platform/http/handler"
	"market_dashboard/internal/shared/ratelimiter"
)

func NewRouter(dashboard *dashboardhandler.DashboardHandler, limiter ratelimiter.RateLimiterInterface) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 導通確認用
	health := handler.Health(dashboard.HealthDetails)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	v1 := r.Group("/v1/dashboard")
	{
		v1.GET("", dashboard.GetDashboard)
		v1.GET("/markets", dashboard.GetMarkets)
		v1.GET("/news", dashboard.GetNews)
		v1.GET("/events", dashboard.GetEvents)
		// 手動リフレッシュのみレート制限を適用
		v1.POST("/refresh", ratelimiter.Middleware(limiter), dashboard.Refresh)
	}

	return r
}
