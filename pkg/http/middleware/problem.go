package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// problemMiddleware converts errors collected on the Gin context into
// problem+json responses via the advice registry.
func problemMiddleware(registry *advice.Registry, props *config.ProblemProperties) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only handle if there are errors and response hasn't been written yet
		if !props.Enabled || len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// The last attached error decided the request's fate; earlier ones
		// still reach the error logger.
		err := c.Errors.Last().Err
		ctx := message.WithLocale(c.Request.Context(), message.LocaleFromRequest(c.Request))
		res := registry.Resolve(ctx, err)

		writeProblem(c, props, res)
	}
}

// writeProblem renders the resolution, attaching the help page URL and the
// request path, plus a per-occurrence identifier in debug mode.
func writeProblem(c *gin.Context, props *config.ProblemProperties, res advice.Resolution) {
	p := res.Problem
	if props.TypeURL != "" {
		if _, ok := p.Parameter(problem.TypeKey); !ok {
			p = p.With(problem.TypeKey, props.TypeURL)
		}
	}
	p = p.With(problem.InstanceKey, c.Request.URL.Path)
	if props.DebugEnabled {
		p = p.With(problem.ErrorIDKey, uuid.NewString())
	}

	body, err := json.Marshal(p)
	if err != nil {
		c.AbortWithStatus(res.Status)
		return
	}
	c.Data(res.Status, contentTypeFor(c, props), body)
	c.Abort()
}

// contentTypeFor honors clients still asking for the deprecated alias.
// With the codec module disabled, problems go out as plain JSON.
func contentTypeFor(c *gin.Context, props *config.ProblemProperties) string {
	if !props.CodecModuleEnabled {
		return "application/json"
	}
	if strings.Contains(c.GetHeader("Accept"), problem.MediaTypeXProblem) {
		return problem.MediaTypeXProblem
	}
	return problem.MediaTypeProblem
}

// ProblemModule provides problem details middleware.
func ProblemModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(registry *advice.Registry, props *config.ProblemProperties) Middleware {
				return Middleware{Priority: priority, Handler: problemMiddleware(registry, props)}
			},
			fx.ResultTags(`group:"gin_mw"`),
		),
	)
}
