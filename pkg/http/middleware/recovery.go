package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/advice/httpadvice"
	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/core/logger"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// recoveryMiddleware renders panics as 500 problem responses. A panic
// unwinds through every handler registered after this one, including the
// problem middleware, so recovery has to resolve and write the response
// itself instead of reporting an error on the context.
func recoveryMiddleware(registry *advice.Registry, props *config.ProblemProperties) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				fields := append(requestFields(c),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				logger.FromContext(c).Error("Panic recovered", fields...)

				if c.Writer.Written() {
					c.Abort()
					return
				}

				err := fmt.Errorf("%w: %v", httpadvice.ErrPanic, r)
				ctx := message.WithLocale(c.Request.Context(), message.LocaleFromRequest(c.Request))
				writeProblem(c, props, registry.Resolve(ctx, err))
			}
		}()
		c.Next()
	}
}

// RecoveryModule provides recovery middleware.
func RecoveryModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(registry *advice.Registry, props *config.ProblemProperties) Middleware {
				return Middleware{Priority: priority, Handler: recoveryMiddleware(registry, props)}
			},
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}
