package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/hakantaylan/problem-handler/pkg/advice/httpadvice"
)

// NewRateLimitMiddleware creates a rate limiting middleware that reports an
// ErrRateLimitExceeded when the limit is hit.
func NewRateLimitMiddleware(cfg RateLimitConfig, priority int) Middleware {
	// Skip if disabled
	if !cfg.Enabled {
		return Middleware{
			Priority: priority,
			Handler:  nil, // Will be skipped in newEngine
		}
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return Middleware{
		Priority: priority,
		Handler: func(c *gin.Context) {
			if !limiter.Allow() {
				_ = c.Error(httpadvice.ErrRateLimitExceeded)
				c.Abort()
				return
			}

			c.Next()
		},
	}
}

// RateLimitModule adds rate limiting middleware to the application.
func RateLimitModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(cfg Config) Middleware {
				return NewRateLimitMiddleware(cfg.RateLimit, priority)
			},
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}
