package problem

import (
	"errors"
	"net/http"
	"sync"
)

// StatusError is implemented by errors that declare the HTTP status their
// responses should carry. It takes precedence over registry entries.
type StatusError interface {
	error
	StatusCode() int
}

type statusEntry struct {
	match  func(error) bool
	status int
}

// StatusRegistry maps error values and types to HTTP statuses. It replaces
// annotation-driven status declaration with explicit registration: callers
// register a matcher per error kind, typically at startup.
type StatusRegistry struct {
	mu      sync.RWMutex
	entries []statusEntry
}

// NewStatusRegistry returns an empty registry.
func NewStatusRegistry() *StatusRegistry {
	return &StatusRegistry{}
}

// Register adds a matcher with its status. Matchers are consulted in
// registration order.
func (r *StatusRegistry) Register(match func(error) bool, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, statusEntry{match: match, status: status})
}

// RegisterIs maps every error matching errors.Is(err, target) to status.
func (r *StatusRegistry) RegisterIs(target error, status int) {
	r.Register(func(err error) bool { return errors.Is(err, target) }, status)
}

// RegisterAs maps every error assignable to T to status.
func RegisterAs[T error](r *StatusRegistry, status int) {
	r.Register(func(err error) bool {
		var target T
		return errors.As(err, &target)
	}, status)
}

// Resolve walks err and its cause chain one link at a time until a link
// declares its own status or matches a registered entry, defaulting to
// 500 when the chain is exhausted.
func (r *StatusRegistry) Resolve(err error) int {
	if status, ok := r.Declared(err); ok {
		return status
	}
	return http.StatusInternalServerError
}

// Declared reports the status err or any link in its cause chain declares,
// either through StatusError or through a registered entry. It returns
// false when no link declares one.
func (r *StatusRegistry) Declared(err error) (int, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if se, ok := e.(StatusError); ok {
			return se.StatusCode(), true
		}
		if status, ok := r.lookup(e); ok {
			return status, true
		}
	}
	return 0, false
}

func (r *StatusRegistry) lookup(err error) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.match(err) {
			return e.status, true
		}
	}
	return 0, false
}
