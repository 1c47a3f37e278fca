package config

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewPropertiesModule provides ProblemProperties bound from the application
// viper instance.
func NewPropertiesModule() fx.Option {
	return fx.Module("problem-properties",
		fx.Provide(newProperties),
		fx.Invoke(logProperties),
	)
}

func logProperties(logger *zap.Logger, props *ProblemProperties) {
	logger.Info("Problem handling configured",
		zap.Bool("enabled", props.Enabled),
		zap.Bool("debug", props.DebugEnabled),
		zap.Bool("stacktrace", props.StacktraceEnabled),
		zap.Bool("causeChains", props.CauseChainsEnabled),
		zap.Bool("daoAdvice", props.DAOAdviceEnabled),
		zap.Bool("securityAdvice", props.SecurityAdviceEnabled),
		zap.Bool("openAPIReqValidation", props.OpenAPI.ReqValidationEnabled),
	)
}
