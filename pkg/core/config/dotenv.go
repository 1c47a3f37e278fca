package config

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type dotEnvOptions struct {
	path string
}

// DotEnvOption customizes the dotenv module.
type DotEnvOption func(*dotEnvOptions)

// WithDotEnvPath reads the variables from path instead of "./.env".
func WithDotEnvPath(path string) DotEnvOption {
	return func(o *dotEnvOptions) {
		o.path = path
	}
}

// NewDotEnvModule loads a .env file into the process environment. The file
// is read when the module is built, before AppConfig is resolved, so the
// variables it defines are visible to every other module. A missing file
// is not an error.
func NewDotEnvModule(opts ...DotEnvOption) fx.Option {
	o := &dotEnvOptions{path: ".env"}
	for _, opt := range opts {
		opt(o)
	}

	loadErr := godotenv.Load(o.path)

	return fx.Module("dotenv",
		fx.Invoke(func(log *zap.Logger) {
			if loadErr != nil {
				log.Debug("No .env file loaded", zap.String("path", o.path))
				return
			}
			log.Info("Loaded .env file", zap.String("path", o.path))
		}),
	)
}
