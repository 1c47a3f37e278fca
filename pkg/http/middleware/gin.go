package middleware

import (
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/hakantaylan/problem-handler/pkg/advice/routing"
	"github.com/hakantaylan/problem-handler/pkg/config"
)

type mwIn struct {
	fx.In
	Middlewares []Middleware `group:"gin_mw"`
	Props       *config.ProblemProperties
}

func provideGinAndHandler(in mwIn) (*gin.Engine, http.Handler) {
	e := newEngine(in.Middlewares, in.Props)
	return e, e
}

func newEngine(mws []Middleware, props *config.ProblemProperties) *gin.Engine {
	engine := gin.New(func(e *gin.Engine) {
		e.ContextWithFallback = true
	})

	sort.Slice(mws, func(i, j int) bool { return mws[i].Priority < mws[j].Priority })
	for _, m := range mws {
		if m.Handler == nil {
			continue
		}
		engine.Use(m.Handler)
	}

	if props.Enabled {
		engine.HandleMethodNotAllowed = true
		engine.NoRoute(NotFoundHandler())
		engine.NoMethod(MethodNotAllowedHandler())
	}

	return engine
}

// NotFoundHandler reports unmatched paths to the problem middleware.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(routing.ErrNotFound)
	}
}

// MethodNotAllowedHandler reports unsupported methods on matched paths.
func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(routing.ErrMethodNotAllowed)
	}
}

// registerSpecEndpoint serves the OpenAPI document at the configured path.
func registerSpecEndpoint(engine *gin.Engine, props *config.ProblemProperties, doc *openapi3.T) {
	if doc == nil || props.OpenAPI.Path == "" {
		return
	}
	engine.GET(props.OpenAPI.Path, func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	})
}
