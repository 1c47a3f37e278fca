package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hakantaylan/problem-handler/pkg/core/logger"
)

// errorLoggerMiddleware logs errors collected on the Gin context. The
// advice handlers themselves never log. Server errors are always logged at
// ERROR; client errors are throttled per route so a misbehaving client
// cannot flood the log.
func errorLoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	throttler := logger.NewLogThrottler(log, 0)
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		status := c.Writer.Status()
		for _, e := range c.Errors {
			fields := append(requestFields(c),
				zap.Int("status", status),
				zap.String("error", e.Error()),
			)
			if status >= http.StatusInternalServerError {
				logger.FromContext(c).Error("Request error", fields...)
			} else {
				throttler.Warn(c.Request.Method+" "+c.FullPath(), "Request error", fields...)
			}
		}
	}
}

// ErrorLoggerModule provides error logger middleware.
func ErrorLoggerModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(log *zap.Logger) Middleware {
				return Middleware{Priority: priority, Handler: errorLoggerMiddleware(log)}
			},
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}
