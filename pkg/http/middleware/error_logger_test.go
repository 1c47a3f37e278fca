package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem"
)

func errorLoggerEngine(t *testing.T, log *zap.Logger) *gin.Engine {
	t.Helper()
	props := config.DefaultProperties()
	mws := append(problemChain(props), Middleware{Priority: 15, Handler: errorLoggerMiddleware(log)})
	return newEngine(mws, props)
}

func TestErrorLoggerMiddleware_ServerErrors(t *testing.T) {
	// Given
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	restore := zap.ReplaceGlobals(log)
	defer restore()

	engine := errorLoggerEngine(t, log)
	engine.GET("/orders", func(c *gin.Context) {
		_ = c.Error(problem.NewError(http.StatusInternalServerError, "storage unavailable"))
	})

	// When
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	// Then
	entries := logs.FilterMessage("Request error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestErrorLoggerMiddleware_ClientErrorsThrottled(t *testing.T) {
	// Given
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	engine := errorLoggerEngine(t, log)
	engine.GET("/orders", func(c *gin.Context) {
		_ = c.Error(problem.NewError(http.StatusNotFound, "no such order"))
	})

	// When the same route fails twice in a row
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	}

	// Then the first is warned, the repeat is demoted to debug
	entries := logs.FilterMessage("Request error").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestErrorLoggerMiddleware_NoErrors(t *testing.T) {
	// Given
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	engine := errorLoggerEngine(t, log)
	engine.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// When
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	// Then
	assert.Empty(t, logs.FilterMessage("Request error").All())
}
