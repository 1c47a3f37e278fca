package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_DevelopmentMode(t *testing.T) {
	// Given: development configuration
	cfg := Config{
		Level:       zapcore.DebugLevel,
		Development: true,
	}

	// When: creating logger
	logger, err := newLogger(cfg)

	// Then: logger should be created successfully
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	// Cleanup
	_ = logger.Sync()
}

func TestNewLogger_ProductionMode(t *testing.T) {
	// Given: production configuration
	cfg := Config{
		Level:       zapcore.InfoLevel,
		Development: false,
	}

	// When: creating logger
	logger, err := newLogger(cfg)

	// Then: logger should be created successfully
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	// Cleanup
	_ = logger.Sync()
}

func TestNewLogger_DifferentLevels(t *testing.T) {
	levels := []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
	}

	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			// Given: configuration with specific level
			cfg := Config{
				Level:       level,
				Development: false,
			}

			// When: creating logger
			logger, err := newLogger(cfg)

			// Then: logger should be created with correct level
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.True(t, logger.Core().Enabled(level))
			if level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(level-1))
			}

			// Cleanup
			_ = logger.Sync()
		})
	}
}

func TestNewLogger_ReplacesGlobal(t *testing.T) {
	// Given: configuration
	cfg := Config{
		Level:       zapcore.InfoLevel,
		Development: false,
	}

	restore := zap.ReplaceGlobals(zap.NewNop())
	t.Cleanup(restore)

	// When: creating logger
	logger, err := newLogger(cfg)

	// Then: the global logger should be replaced
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, logger, zap.L())

	// Cleanup
	_ = logger.Sync()
}

func TestNewLogger_InvalidOutputPath(t *testing.T) {
	// Given: configuration with a blank output path
	cfg := Config{
		Level:       zapcore.InfoLevel,
		OutputPaths: []string{"  "},
	}

	// When: creating logger
	_, err := newLogger(cfg)

	// Then: validation should reject it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output-paths")
}
