package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewZapLoggingModule provides the configured *zap.Logger and routes fx's
// own lifecycle events through it.
func NewZapLoggingModule() fx.Option {
	return fx.Options(
		fx.Provide(
			newConfig,
			provideLogger,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)
}

func provideLogger(lc fx.Lifecycle, conf Config) (*zap.Logger, error) {
	log, err := newLogger(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return flush(log)
		},
	})

	return log, nil
}

// flush syncs buffered entries on shutdown. Syncing a terminal sink
// reports EINVAL, which is not a real failure.
func flush(log *zap.Logger) error {
	err := log.Sync()
	if err == nil {
		return nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, syscall.EINVAL) {
		return nil
	}
	return err
}
