package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FilePath is the resolved location of a configuration file. Empty means
// the instance runs on environment variables alone.
type FilePath string

type viperOptions struct {
	path     *string
	skipFile bool
}

// ViperOption customizes how the configuration file is located.
type ViperOption func(*viperOptions)

// WithConfigPath pins the configuration file to an explicit location
// instead of deriving it from AppConfig.
func WithConfigPath(path string) ViperOption {
	return func(o *viperOptions) {
		o.path = &path
	}
}

// WithoutConfigFile skips file loading entirely. Properties are then read
// from environment variables and defaults.
func WithoutConfigFile() ViperOption {
	return func(o *viperOptions) {
		o.skipFile = true
	}
}

// NewViperModule provides the *viper.Viper the properties constructors
// unmarshal from. The file location comes from AppConfig unless an option
// overrides it. Keys use kebab case in files and underscore form in the
// environment, so problem.debug-enabled maps to PROBLEM_DEBUG_ENABLED.
func NewViperModule(opts ...ViperOption) fx.Option {
	o := &viperOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Module("viper",
		fx.Provide(func(conf AppConfig) (*viper.Viper, error) {
			return newViper(resolveFilePath(o, conf))
		}),
		fx.Invoke(func(log *zap.Logger, v *viper.Viper) {
			log.Info("Configuration loaded",
				zap.String("configFile", v.ConfigFileUsed()),
				zap.Int("keys", len(v.AllKeys())),
			)
		}),
	)
}

func resolveFilePath(o *viperOptions, conf AppConfig) FilePath {
	if o.skipFile {
		return ""
	}
	if o.path != nil {
		return FilePath(*o.path)
	}
	return FilePath(conf.ConfigFile)
}

func newViper(configFile FilePath) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile == "" {
		return v, nil
	}

	v.SetConfigFile(string(configFile))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file [%s]: %w", configFile, err)
	}

	return v, nil
}
