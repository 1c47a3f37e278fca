// Package problemhandler assembles the advice registry and its
// collaborators into one fx module, wiring the advice bundles according to
// the problem configuration.
package problemhandler

import (
	"go.uber.org/fx"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/advice/dao"
	"github.com/hakantaylan/problem-handler/pkg/advice/httpadvice"
	"github.com/hakantaylan/problem-handler/pkg/advice/routing"
	"github.com/hakantaylan/problem-handler/pkg/advice/security"
	"github.com/hakantaylan/problem-handler/pkg/advice/validation"
	"github.com/hakantaylan/problem-handler/pkg/config"
	coreconfig "github.com/hakantaylan/problem-handler/pkg/core/config"
	"github.com/hakantaylan/problem-handler/pkg/core/logger"
	"github.com/hakantaylan/problem-handler/pkg/http/middleware"
	"github.com/hakantaylan/problem-handler/pkg/http/server"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// NewModule provides the advice registry, the message provider, the status
// registry and the shared base helpers. Applications may contribute a
// message.Source and extra constraint-name resolvers (tagged
// `group:"constraint_name_resolvers"`).
func NewModule() fx.Option {
	return fx.Module("problem-handler",
		config.NewPropertiesModule(),
		fx.Provide(
			problem.NewStatusRegistry,
			fx.Annotate(newProvider, fx.ParamTags(`optional:"true"`)),
			advice.NewBase,
			fx.Annotate(newRegistry, fx.ParamTags(``, ``, `group:"constraint_name_resolvers"`)),
		),
	)
}

// NewAppModule is the turnkey assembly for Gin applications: .env loading,
// environment bootstrap, configuration, logging, the advice registry, the
// middleware chain and the HTTP server. Options control where the
// configuration file comes from.
func NewAppModule(opts ...coreconfig.ViperOption) fx.Option {
	return fx.Options(
		coreconfig.NewDotEnvModule(),
		coreconfig.NewAppConfigModule(),
		coreconfig.NewViperModule(opts...),
		logger.NewZapLoggingModule(),
		NewModule(),
		middleware.NewGinModule(),
		server.NewHTTPServerModule(),
	)
}

func newProvider(source message.Source) *message.Provider {
	return message.NewProvider(source)
}

// newRegistry composes the advice bundles. Dispatch order matters: the
// explicit problem passthrough and the narrow error kinds come before the
// broader classifications, and the generic fallback catches the rest.
func newRegistry(base *advice.Base, props *config.ProblemProperties, resolvers []dao.ConstraintNameResolver) *advice.Registry {
	registry := advice.NewRegistry(httpadvice.DefaultAdvice{Base: base})

	registry.Register(httpadvice.Bundle(base)...)
	registry.Register(validation.Bundle(base)...)
	registry.Register(routing.Bundle(base)...)
	if props.DAOAdviceEnabled {
		registry.Register(dao.Bundle(base, resolvers...)...)
	}
	if props.SecurityAdviceEnabled {
		registry.Register(security.Bundle(base)...)
	}

	return registry
}
