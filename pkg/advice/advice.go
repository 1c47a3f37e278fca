// Package advice converts errors raised in request handling into Problem
// documents. Each Advice is bound to one error kind; a Registry composes
// them and dispatches most-specific-first, falling back to a generic advice
// when nothing narrower matches.
package advice

import (
	"context"

	"github.com/hakantaylan/problem-handler/pkg/problem"
)

// Resolution is the outcome of handling one error: the response status and
// the problem body.
type Resolution struct {
	Status  int
	Problem problem.Problem
}

// Advice handles exactly one kind of error. Implementations are stateless
// beyond their injected configuration and must be safe for concurrent use.
type Advice interface {
	// CanHandle reports whether this advice is bound to err's kind.
	CanHandle(err error) bool

	// Handle builds the resolution for err. Only called when CanHandle
	// returned true. The context carries the request locale.
	Handle(ctx context.Context, err error) Resolution
}

// Registry dispatches errors across a set of advices. Advices are consulted
// in registration order, so register the most specific ones first; the
// fallback handles whatever no advice claimed.
type Registry struct {
	advices  []Advice
	fallback Advice
}

// NewRegistry creates a registry with the given fallback advice.
func NewRegistry(fallback Advice, advices ...Advice) *Registry {
	return &Registry{advices: advices, fallback: fallback}
}

// Register appends advices to the dispatch order.
func (r *Registry) Register(advices ...Advice) {
	r.advices = append(r.advices, advices...)
}

// Resolve finds the first advice claiming err and returns its resolution.
// It always produces a resolution: unclaimed errors go to the fallback.
func (r *Registry) Resolve(ctx context.Context, err error) Resolution {
	for _, a := range r.advices {
		if a.CanHandle(err) {
			return a.Handle(ctx, err)
		}
	}
	return r.fallback.Handle(ctx, err)
}
