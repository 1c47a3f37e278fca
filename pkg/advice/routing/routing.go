// Package routing provides advices for request-routing failures: unknown
// routes, unsupported methods, unsupported media types and missing request
// parameters.
package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/problem"
)

// Sentinel routing errors raised by the framework adapters.
var (
	// ErrNotFound is reported when no handler matches the request path.
	ErrNotFound = errors.New("no handler found")
	// ErrMethodNotAllowed is reported when the path matches but the method
	// does not.
	ErrMethodNotAllowed = errors.New("request method not supported")
)

// MissingParameterError reports a required request parameter that was not
// supplied. In is the parameter location: "query", "header" or "path".
type MissingParameterError struct {
	Name string
	In   string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("required %s parameter '%s' is not present", e.In, e.Name)
}

// UnsupportedMediaTypeError reports a request content type no handler
// consumes.
type UnsupportedMediaTypeError struct {
	MediaType string
	Supported []string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("media type '%s' is not supported, supported: %s",
		e.MediaType, strings.Join(e.Supported, ", "))
}

// Bundle returns the routing advices in dispatch order.
func Bundle(base *advice.Base) []advice.Advice {
	return []advice.Advice{
		MissingParameterAdvice{Base: base},
		MediaTypeAdvice{Base: base},
		NotFoundAdvice{Base: base},
		MethodNotAllowedAdvice{Base: base},
	}
}

// MissingParameterAdvice maps MissingParameterError to 400. The error key
// is derived from the parameter name so each parameter can carry its own
// authored message.
type MissingParameterAdvice struct {
	*advice.Base
}

func (a MissingParameterAdvice) CanHandle(err error) bool {
	var target *MissingParameterError
	return errors.As(err, &target)
}

func (a MissingParameterAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	var mpe *MissingParameterError
	errors.As(err, &mpe)

	status := a.StatusOr(err, http.StatusBadRequest)
	errorKey := problem.KeyMissingRequestParameter + problem.Dot + mpe.Name
	code, title, detail := a.Resolvers(errorKey, status, mpe.Error(), mpe.Name, mpe.In)

	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// NotFoundAdvice maps ErrNotFound to 404.
type NotFoundAdvice struct {
	*advice.Base
}

func (a NotFoundAdvice) CanHandle(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (a NotFoundAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, http.StatusNotFound)
	code, title, detail := a.Resolvers(problem.KeyNoHandlerFound, status, err.Error())
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// MethodNotAllowedAdvice maps ErrMethodNotAllowed to 405.
type MethodNotAllowedAdvice struct {
	*advice.Base
}

func (a MethodNotAllowedAdvice) CanHandle(err error) bool {
	return errors.Is(err, ErrMethodNotAllowed)
}

func (a MethodNotAllowedAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, http.StatusMethodNotAllowed)
	code, title, detail := a.Resolvers(problem.KeyMethodNotSupported, status, err.Error())
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// MediaTypeAdvice maps UnsupportedMediaTypeError to 415.
type MediaTypeAdvice struct {
	*advice.Base
}

func (a MediaTypeAdvice) CanHandle(err error) bool {
	var target *UnsupportedMediaTypeError
	return errors.As(err, &target)
}

func (a MediaTypeAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	var umte *UnsupportedMediaTypeError
	errors.As(err, &umte)

	status := a.StatusOr(err, http.StatusUnsupportedMediaType)
	code, title, detail := a.Resolvers(problem.KeyMediaTypeNotSupported, status, umte.Error(), umte.MediaType)

	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}
