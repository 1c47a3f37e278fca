package middleware

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/advice/httpadvice"
	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// NewTimeoutMiddleware creates a middleware that adds a deadline to every
// request. When the deadline expires the rest of the chain is still blocked
// inside the handler goroutine, so the timeout branch resolves and writes
// the 504 response itself.
func NewTimeoutMiddleware(cfg TimeoutConfig, registry *advice.Registry, props *config.ProblemProperties, log *zap.Logger, priority int) Middleware {
	// Skip if disabled
	if !cfg.Enabled {
		return Middleware{
			Priority: priority,
			Handler:  nil,
		}
	}

	log.Info("HTTP timeout middleware initialized",
		zap.Duration("request-timeout", cfg.RequestTimeout),
	)

	return Middleware{
		Priority: priority,
		Handler: func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
			defer cancel()

			c.Request = c.Request.WithContext(ctx)

			// One write at a time: the panic path in the handler goroutine
			// and the timeout branch below race for the response, so the
			// flag serializes them. A response the handler already started
			// is left alone.
			var responded atomic.Bool
			finished := make(chan struct{})

			// Recovery runs before this middleware, so a panic inside the
			// handler goroutine never reaches it. Render the 500 here.
			go func() {
				defer func() {
					if r := recover(); r != nil {
						log.Error("Panic recovered",
							zap.Any("panic", r),
							zap.String("path", c.Request.URL.Path),
						)
						if !c.Writer.Written() && responded.CompareAndSwap(false, true) {
							err := fmt.Errorf("%w: %v", httpadvice.ErrPanic, r)
							mctx := message.WithLocale(context.Background(), message.LocaleFromRequest(c.Request))
							writeProblem(c, props, registry.Resolve(mctx, err))
						}
					}
					close(finished)
				}()
				c.Next()
			}()

			select {
			case <-finished:
				return
			case <-ctx.Done():
				log.Warn("HTTP request timeout",
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.Duration("timeout", cfg.RequestTimeout),
				)
				if c.Writer.Written() || !responded.CompareAndSwap(false, true) {
					c.Abort()
					return
				}
				mctx := message.WithLocale(context.Background(), message.LocaleFromRequest(c.Request))
				writeProblem(c, props, registry.Resolve(mctx, httpadvice.ErrRequestTimeout))
			}
		},
	}
}

// TimeoutModule adds timeout middleware to the application.
func TimeoutModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(cfg Config, registry *advice.Registry, props *config.ProblemProperties, log *zap.Logger) Middleware {
				return NewTimeoutMiddleware(cfg.Timeout, registry, props, log, priority)
			},
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}
