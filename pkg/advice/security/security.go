// Package security provides advices for authentication and authorization
// failures.
package security

import (
	"context"
	"errors"
	"net/http"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/problem"
)

// Sentinel security errors. Token validators return these so the advices
// can classify them without knowing the token format.
var (
	// ErrAuthentication is returned when the caller's identity cannot be
	// established.
	ErrAuthentication = errors.New("authentication failed")
	// ErrTokenExpired is returned when the presented credentials expired.
	ErrTokenExpired = errors.New("token expired")
	// ErrAccessDenied is returned when the caller lacks the required
	// permissions.
	ErrAccessDenied = errors.New("access denied")
)

// Bundle returns the security advices in dispatch order.
func Bundle(base *advice.Base) []advice.Advice {
	return []advice.Advice{
		AuthenticationAdvice{Base: base},
		AccessDeniedAdvice{Base: base},
	}
}

// AuthenticationAdvice maps authentication failures to 401.
type AuthenticationAdvice struct {
	*advice.Base
}

func (a AuthenticationAdvice) CanHandle(err error) bool {
	return errors.Is(err, ErrAuthentication) || errors.Is(err, ErrTokenExpired)
}

func (a AuthenticationAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, http.StatusUnauthorized)
	code, title, detail := a.Resolvers(problem.KeySecurityUnauthorized, status, err.Error())
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// AccessDeniedAdvice maps authorization failures to 403.
type AccessDeniedAdvice struct {
	*advice.Base
}

func (a AccessDeniedAdvice) CanHandle(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

func (a AccessDeniedAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, http.StatusForbidden)
	code, title, detail := a.Resolvers(problem.KeySecurityAccessDenied, status, err.Error())
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}
