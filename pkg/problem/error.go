package problem

import (
	"fmt"
	"net/http"
	"strconv"
)

// Error is an application error that declares its own HTTP status and
// optionally its own code/title/detail triple. It captures the stack at
// creation so the handlers can report and truncate frames.
type Error struct {
	status int
	code   string
	title  string
	detail string
	params *Params
	cause  error
	stack  []Frame
}

// NewError creates an Error with the given status and detail. Code defaults
// to the status number and title to the standard reason phrase.
func NewError(status int, detail string) *Error {
	return newError(status, detail, nil)
}

// NewErrorf is NewError with fmt-style formatting of the detail.
func NewErrorf(status int, format string, args ...any) *Error {
	return newError(status, fmt.Sprintf(format, args...), nil)
}

// WrapError creates an Error carrying cause as its underlying error, so the
// cause-chain handlers can build nested problems from it.
func WrapError(status int, detail string, cause error) *Error {
	return newError(status, detail, cause)
}

func newError(status int, detail string, cause error) *Error {
	return &Error{
		status: status,
		code:   strconv.Itoa(status),
		title:  http.StatusText(status),
		detail: detail,
		cause:  cause,
		stack:  CaptureStack(2),
	}
}

// WithCode overrides the machine-readable code.
func (e *Error) WithCode(code string) *Error {
	e.code = code
	return e
}

// WithTitle overrides the human-readable title.
func (e *Error) WithTitle(title string) *Error {
	e.title = title
	return e
}

// WithParam appends an extension parameter reported on the problem.
func (e *Error) WithParam(key string, value any) *Error {
	if e.params == nil {
		e.params = NewParams()
	}
	e.params.Add(key, value)
	return e
}

func (e *Error) Error() string { return e.detail }

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// StatusCode implements StatusError.
func (e *Error) StatusCode() int { return e.status }

// StackTrace implements StackTracer.
func (e *Error) StackTrace() []Frame { return e.stack }

// Code returns the machine-readable identifier.
func (e *Error) Code() string { return e.code }

// Title returns the human-readable label.
func (e *Error) Title() string { return e.title }

// Params returns the extension parameters attached to the error.
func (e *Error) Params() *Params { return e.params.clone() }
