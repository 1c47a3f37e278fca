// Package echoadapter plugs the advice registry into Echo applications.
package echoadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/advice/routing"
	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// NewErrorHandlerModule provides the error handler for Echo servers.
func NewErrorHandlerModule() fx.Option {
	return fx.Provide(NewHTTPErrorHandler)
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that resolves errors
// through the advice registry and writes RFC 7807 Problem Details
// responses. Echo's own routing errors are mapped to the routing sentinels
// first, so they share messages with the Gin path.
func NewHTTPErrorHandler(registry *advice.Registry, props *config.ProblemProperties) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		r := c.Request()
		ctx := message.WithLocale(r.Context(), message.LocaleFromRequest(r))
		res := registry.Resolve(ctx, translate(err))

		p := res.Problem
		if props.TypeURL != "" {
			if _, ok := p.Parameter(problem.TypeKey); !ok {
				p = p.With(problem.TypeKey, props.TypeURL)
			}
		}
		p = p.With(problem.InstanceKey, r.URL.Path)
		if props.DebugEnabled {
			p = p.With(problem.ErrorIDKey, uuid.NewString())
		}

		if writeErr := writeProblem(c, props, res.Status, p); writeErr != nil {
			c.Logger().Error(writeErr)
		}
	}
}

// translate maps Echo framework errors to this library's error types.
func translate(err error) error {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	switch he.Code {
	case http.StatusNotFound:
		return routing.ErrNotFound
	case http.StatusMethodNotAllowed:
		return routing.ErrMethodNotAllowed
	case http.StatusUnsupportedMediaType:
		return &routing.UnsupportedMediaTypeError{MediaType: fmt.Sprint(he.Message)}
	default:
		if he.Internal != nil {
			return problem.WrapError(he.Code, fmt.Sprint(he.Message), he.Internal)
		}
		return problem.NewError(he.Code, fmt.Sprint(he.Message))
	}
}

func writeProblem(c echo.Context, props *config.ProblemProperties, status int, p problem.Problem) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(status)
	}
	contentType := problem.MediaTypeProblem
	if !props.CodecModuleEnabled {
		contentType = "application/json"
	} else if strings.Contains(c.Request().Header.Get("Accept"), problem.MediaTypeXProblem) {
		contentType = problem.MediaTypeXProblem
	}
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(status)
	return json.NewEncoder(c.Response()).Encode(p)
}
