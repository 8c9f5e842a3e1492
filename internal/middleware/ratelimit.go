package middleware

import (
	"SkinProtocol_Backend/internal/config"
	"SkinProtocol_Backend/internal/metrics"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimit limits each client IP to cfg.RPS requests per second with
// bursts of cfg.Burst. RPS 0 disables limiting.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Limit(cfg.RPS), burst), cfg.TTL
		},
		func(c *gin.Context) {
			metrics.RateLimited.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please wait a moment",
				"kind":  "rate_limited",
			})
		},
	)
}
