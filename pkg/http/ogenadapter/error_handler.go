// Package ogenadapter plugs the advice registry into ogen-generated
// servers.
package ogenadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/ogen-go/ogen/ogenerrors"
	"go.uber.org/fx"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/advice/security"
	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// NewErrorHandlerModule provides the error handler for ogen servers.
func NewErrorHandlerModule() fx.Option {
	return fx.Provide(NewErrorHandler)
}

// NewErrorHandler returns an ogen ErrorHandler that resolves errors through
// the advice registry and writes RFC 7807 Problem Details responses. ogen's
// own framework errors are translated first, so unsatisfied security
// requirements and decode failures keep their framework status instead of
// falling through to the generic 500.
func NewErrorHandler(registry *advice.Registry, props *config.ProblemProperties) ogenerrors.ErrorHandler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
		ctx = message.WithLocale(ctx, message.LocaleFromRequest(r))
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

		contentType := problem.MediaTypeProblem
		if !props.CodecModuleEnabled {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(res.Status)
		_ = json.NewEncoder(w).Encode(p)
	}
}

// translate maps ogen framework errors to this library's error types.
func translate(err error) error {
	if errors.Is(err, ogenerrors.ErrSecurityRequirementIsNotSatisfied) {
		return security.ErrAuthentication
	}
	var oe ogenerrors.Error
	if errors.As(err, &oe) {
		return problem.WrapError(ogenerrors.ErrorCode(err), oe.Error(), err)
	}
	return err
}
