package config

import (
	"os"
	"path/filepath"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Environment variable names.
const (
	envAppEnv     = "APP_ENV"
	envConfigFile = "CONFIG_FILE"
	envConfigDir  = "CONFIG_DIR"
	envConfigName = "CONFIG_NAME"
)

const (
	defaultEnvironment = "local"
	defaultConfigDir   = "./configs"
)

// AppConfig describes where the host application runs and where its
// configuration file lives. Problem visibility flags such as debug mode
// typically vary per environment, so the environment name travels together
// with the config file location.
type AppConfig struct {
	// Environment is the deployment environment (e.g. "local", "staging",
	// "pro").
	Environment string
	// ConfigFile is the resolved path of the configuration file.
	ConfigFile string
}

// NewAppConfigModule resolves AppConfig from the process environment.
// APP_ENV defaults to "local". The configuration file is taken from
// CONFIG_FILE when set, otherwise assembled from CONFIG_DIR and CONFIG_NAME
// following the conventional config.<env>.yaml layout.
func NewAppConfigModule() fx.Option {
	return fx.Module("appconfig",
		fx.Provide(newAppConfig),
		fx.Invoke(func(log *zap.Logger, conf AppConfig) {
			log.Info("Resolved application configuration",
				zap.String("environment", conf.Environment),
				zap.String("configFile", conf.ConfigFile),
			)
		}),
	)
}

func newAppConfig() AppConfig {
	env := os.Getenv(envAppEnv)
	if env == "" {
		env = defaultEnvironment
	}
	return AppConfig{
		Environment: env,
		ConfigFile:  resolveConfigFile(env),
	}
}

func resolveConfigFile(env string) string {
	if file := os.Getenv(envConfigFile); file != "" {
		return file
	}

	dir := os.Getenv(envConfigDir)
	if dir == "" {
		dir = defaultConfigDir
	}

	name := os.Getenv(envConfigName)
	if name == "" {
		name = "config." + env
	}

	return filepath.Join(dir, name+".yaml")
}
