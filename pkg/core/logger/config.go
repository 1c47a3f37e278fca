package logger

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config controls the zap logger backing the library's request logging.
type Config struct {
	// Level is the minimum level that gets emitted.
	Level zapcore.Level

	// Development switches to console encoding with human-readable
	// timestamps. Production mode emits JSON.
	Development bool

	// OutputPaths lists the sinks for log output, stderr when empty.
	OutputPaths []string

	// ErrorOutputPaths lists the sinks for the logger's own errors,
	// stderr when empty.
	ErrorOutputPaths []string

	// StacktraceLevel is the minimum level that captures a stack trace,
	// ErrorLevel when unset.
	StacktraceLevel zapcore.Level
}

func (c Config) Validate() error {
	if err := validatePaths("output-paths", c.OutputPaths); err != nil {
		return err
	}
	return validatePaths("error-output-paths", c.ErrorOutputPaths)
}

func validatePaths(field string, paths []string) error {
	for i, path := range paths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("%s[%d] cannot be empty or whitespace", field, i)
		}
	}
	return nil
}

// newConfig reads the logger section. Keys follow the kebab-case
// convention of the problem and http sections.
func newConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Level:           zapcore.InfoLevel,
		StacktraceLevel: zapcore.ErrorLevel,
	}

	sub := v.Sub("logger")
	if sub == nil {
		return cfg, nil
	}

	var raw struct {
		Level            string   `mapstructure:"level"`
		Development      bool     `mapstructure:"development"`
		OutputPaths      []string `mapstructure:"output-paths"`
		ErrorOutputPaths []string `mapstructure:"error-output-paths"`
		StacktraceLevel  string   `mapstructure:"stacktrace-level"`
	}
	if err := sub.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("failed to load logger config: %w", err)
	}

	var err error
	if cfg.Level, err = parseLevel(raw.Level, cfg.Level); err != nil {
		return Config{}, fmt.Errorf("invalid log level '%s': %w", raw.Level, err)
	}
	if cfg.StacktraceLevel, err = parseLevel(raw.StacktraceLevel, cfg.StacktraceLevel); err != nil {
		return Config{}, fmt.Errorf("invalid stacktrace level '%s': %w", raw.StacktraceLevel, err)
	}

	cfg.Development = raw.Development
	cfg.OutputPaths = raw.OutputPaths
	cfg.ErrorOutputPaths = raw.ErrorOutputPaths
	return cfg, nil
}

func parseLevel(raw string, fallback zapcore.Level) (zapcore.Level, error) {
	if raw == "" {
		return fallback, nil
	}
	return zapcore.ParseLevel(raw)
}
