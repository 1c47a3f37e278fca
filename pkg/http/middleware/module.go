package middleware

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/hakantaylan/problem-handler/pkg/config"
)

// NewGinModule provides all Gin middleware modules
// Middleware execution order (by priority, lower = earlier):
//
//	10 - Recovery         - catches panics
//	15 - ErrorLogger      - logs errors after the final status is known
//	20 - Problem          - converts errors reported below it to RFC 7807
//	30 - Timeout          - kills hanging requests
//	40 - RateLimit        - limits requests/second
//	50 - Logger           - logs requests
//	60 - OpenAPIValidator - validates requests against schema
//	65 - OpenAPIResponse  - validates responses against schema
//
// Problem sits right below recovery: middlewares deeper in the chain
// report errors with c.Error and abort, and the unwind passes through
// Problem which writes the response.
func NewGinModule() fx.Option {
	return fx.Options(
		fx.Provide(newConfig),
		RecoveryModule(10),
		ErrorLoggerModule(15),
		ProblemModule(20),
		TimeoutModule(30),
		RateLimitModule(40),
		LoggerModule(50),
		OpenAPIValidatorModule(60),
		OpenAPIResponseValidatorModule(65),
		fx.Provide(provideGinAndHandler),
		fx.Invoke(
			fx.Annotate(
				func(engine *gin.Engine, props *config.ProblemProperties, doc *openapi3.T) {
					registerSpecEndpoint(engine, props, doc)
				},
				fx.ParamTags(``, ``, `optional:"true"`),
			),
		),
	)
}
