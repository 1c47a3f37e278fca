package server

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewHTTPServerModule starts the HTTP server on application start and shuts
// it down gracefully on stop. The handler comes from the middleware module.
func NewHTTPServerModule() fx.Option {
	return fx.Options(
		fx.Provide(newConfig),
		fx.Invoke(startHTTPServer),
	)
}

func startHTTPServer(lc fx.Lifecycle, log *zap.Logger, conf Config, handler http.Handler, shutdowner fx.Shutdowner) {
	var srv Server
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Routes are all registered by the time OnStart runs.
			srv = newServer(log, conf, handler)

			go func() {
				if err := srv.Serve(); err != nil {
					log.Error("HTTP server failed, shutting down application", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if srv != nil {
				return srv.Shutdown(ctx)
			}
			return nil
		},
	})
}
