package ratelimiter

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterInterface は、手動リフレッシュなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Allow() bool
}

// RateLimiter は、トークンバケットで操作の頻度を制限します。待機はせず、超過した呼び出しを拒否します。
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter は1秒あたりperSecond回、最大burst回までのバーストを許すRateLimiterを生成します。
// perSecondが0以下なら無制限、burstが1未満なら1として扱います。
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Allow は今すぐ操作してよいかを返します。
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// Middleware はレート制限を超えたリクエストを 429 で拒否するGinミドルウェアを返します。
func Middleware(rl RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow() {
			slog.Warn("[RATE LIMIT] リクエストを拒否しました", "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
