// Package httpadvice provides advices for HTTP-infrastructure failures
// raised by the middleware (timeouts, rate limits, recovered panics),
// passthrough of application problem errors, and the generic fallback.
package httpadvice

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// Sentinel errors raised by the HTTP middleware.
var (
	// ErrRequestTimeout is reported when a request exceeds its deadline.
	ErrRequestTimeout = errors.New("request timeout")
	// ErrRateLimitExceeded is reported when a client sends too many
	// requests.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrPanic wraps a recovered panic.
	ErrPanic = errors.New("panic recovered")
)

// Bundle returns the HTTP advices in dispatch order. The application
// problem passthrough goes first: an explicit problem.Error beats every
// generic classification.
func Bundle(base *advice.Base) []advice.Advice {
	return []advice.Advice{
		ProblemErrorAdvice{Base: base},
		TimeoutAdvice{Base: base},
		RateLimitAdvice{Base: base},
		PanicAdvice{Base: base},
	}
}

// ProblemErrorAdvice handles problem.Error values raised by application
// code: the error already declares its status, code/title and parameters.
type ProblemErrorAdvice struct {
	*advice.Base
}

func (a ProblemErrorAdvice) CanHandle(err error) bool {
	var pe *problem.Error
	return errors.As(err, &pe)
}

func (a ProblemErrorAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	var pe *problem.Error
	errors.As(err, &pe)

	status := pe.StatusCode()
	errorKey := pe.Code()
	code := message.NewResolver(problem.CodeKeyPrefix+errorKey, pe.Code())
	title := message.NewResolver(problem.TitleKeyPrefix+errorKey, pe.Title())
	detail := message.NewResolver(problem.DetailKeyPrefix+errorKey, pe.Error())

	p := a.NewProblem(ctx, pe, status, code, title, detail, pe.Params())
	return advice.Resolution{Status: status, Problem: p}
}

// TimeoutAdvice maps request timeouts to 504.
type TimeoutAdvice struct {
	*advice.Base
}

func (a TimeoutAdvice) CanHandle(err error) bool {
	return errors.Is(err, ErrRequestTimeout) || errors.Is(err, context.DeadlineExceeded)
}

func (a TimeoutAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, http.StatusGatewayTimeout)
	code, title, detail := a.Resolvers(problem.KeyRequestTimeout, status, "request took too long to process")
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// RateLimitAdvice maps rate-limit rejections to 429.
type RateLimitAdvice struct {
	*advice.Base
}

func (a RateLimitAdvice) CanHandle(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func (a RateLimitAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, http.StatusTooManyRequests)
	code, title, detail := a.Resolvers(problem.KeyRateLimitExceeded, status, err.Error())
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// PanicAdvice maps recovered panics to 500 without leaking the panic value
// into the default detail.
type PanicAdvice struct {
	*advice.Base
}

func (a PanicAdvice) CanHandle(err error) bool {
	return errors.Is(err, ErrPanic)
}

func (a PanicAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := http.StatusInternalServerError
	code, title, detail := a.Resolvers(problem.KeyPanic, status, "an unexpected error occurred")
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// DefaultAdvice is the registry fallback: the status comes from the status
// registry walk over the cause chain, the messages from the status itself.
type DefaultAdvice struct {
	*advice.Base
}

func (a DefaultAdvice) CanHandle(error) bool { return true }

func (a DefaultAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.Statuses.Resolve(err)
	code, title, detail := a.Resolvers(strconv.Itoa(status), status, err.Error())
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}
