package server

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewServer(t *testing.T) {
	// Given
	conf := Config{Port: 8080, Connection: ConnectionConfig{ReadTimeout: 5 * time.Second}}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// When
	srv := newServer(zap.NewNop(), conf, handler)

	// Then
	require.NotNil(t, srv)
	s, ok := srv.(*server)
	require.True(t, ok)
	assert.Equal(t, ":8080", s.httpSrv.Addr)
	assert.Equal(t, 5*time.Second, s.httpSrv.ReadTimeout)
	assert.NotNil(t, s.httpSrv.Handler)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	// Given a server on an auto-assigned port
	conf := Config{Port: 0}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := newServer(zap.NewNop(), conf, handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	// When it is shut down shortly after
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	// Then Serve returns without error
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("DefaultsWithoutSection", func(t *testing.T) {
		cfg, err := newConfig(viper.New())

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 10*time.Second, cfg.Connection.ReadHeaderTimeout)
		assert.Equal(t, 1<<20, cfg.Connection.MaxHeaderBytes)
	})

	t.Run("SectionOverrides", func(t *testing.T) {
		v := viper.New()
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(`
server:
  port: 9090
  connection:
    read-timeout: 5s
`)))

		cfg, err := newConfig(v)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Connection.ReadTimeout)
		assert.Equal(t, 120*time.Second, cfg.Connection.IdleTimeout)
	})
}
