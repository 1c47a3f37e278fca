// Package problem provides the RFC 7807 problem representation shared by all
// advice handlers: an immutable Problem document, ordered extension
// parameters, stack-frame capture and an explicit status registry.
package problem

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
)

// Problem represents an RFC 7807 Problem Details document with the
// code/title/detail triple used by this library. Extension parameters are
// kept in insertion order and serialized inline next to the standard fields.
type Problem struct {
	code   string
	title  string
	detail string
	status int
	params *Params
	cause  *Problem
}

// Builder assembles a Problem. A zero Builder is not usable, start with New.
type Builder struct {
	p Problem
}

// New starts building a Problem from a code/title/detail triple.
func New(code, title, detail string) *Builder {
	return &Builder{p: Problem{code: code, title: title, detail: detail}}
}

// Of builds a Problem entirely from an HTTP status: code is the status
// number, title the standard reason phrase.
func Of(status int, detail string) *Builder {
	return New(strconv.Itoa(status), http.StatusText(status), detail).Status(status)
}

// Status sets the HTTP status of the problem.
func (b *Builder) Status(status int) *Builder {
	b.p.status = status
	return b
}

// Cause attaches a nested problem describing the underlying cause.
func (b *Builder) Cause(cause *Problem) *Builder {
	b.p.cause = cause
	return b
}

// Param appends a single extension parameter.
func (b *Builder) Param(key string, value any) *Builder {
	if b.p.params == nil {
		b.p.params = NewParams()
	}
	b.p.params.Add(key, value)
	return b
}

// Params attaches a parameter set. The set is copied so later mutation of
// the argument does not leak into the built problem.
func (b *Builder) Params(params *Params) *Builder {
	b.p.params = params.clone()
	return b
}

// Build returns the assembled Problem.
func (b *Builder) Build() Problem {
	if b.p.params == nil {
		b.p.params = NewParams()
	}
	return b.p
}

// Code returns the stable machine-readable identifier.
func (p Problem) Code() string { return p.code }

// Title returns the short human-readable label.
func (p Problem) Title() string { return p.title }

// Detail returns the occurrence-specific human-readable message.
func (p Problem) Detail() string { return p.detail }

// Status returns the HTTP status of the problem.
func (p Problem) Status() int { return p.status }

// Parameters returns the extension parameters in insertion order.
func (p Problem) Parameters() []ParamEntry {
	return p.params.Entries()
}

// Parameter returns the first parameter stored under key.
func (p Problem) Parameter(key string) (any, bool) {
	return p.params.Get(key)
}

// CauseProblem returns the nested cause, or nil when none was attached.
func (p Problem) CauseProblem() *Problem { return p.cause }

// With returns a copy of the problem with one extra parameter appended.
// The receiver is left untouched.
func (p Problem) With(key string, value any) Problem {
	params := p.params.clone()
	params.Add(key, value)
	p.params = params
	return p
}

// reservedParamKeys may not be shadowed by extension parameters.
var reservedParamKeys = map[string]struct{}{
	"code":   {},
	"title":  {},
	"detail": {},
	"status": {},
	"cause":  {},
}

// MarshalJSON flattens extension parameters into the problem object while
// preserving their insertion order and protecting the standard field names.
func (p Problem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := writeField("code", p.code); err != nil {
		return nil, err
	}
	if err := writeField("title", p.title); err != nil {
		return nil, err
	}
	if err := writeField("detail", p.detail); err != nil {
		return nil, err
	}
	if p.status != 0 {
		if err := writeField("status", p.status); err != nil {
			return nil, err
		}
	}
	for _, entry := range p.params.Entries() {
		if _, reserved := reservedParamKeys[entry.Key]; reserved {
			continue
		}
		if err := writeField(entry.Key, entry.Value); err != nil {
			return nil, err
		}
	}
	if p.cause != nil {
		if err := writeField("cause", p.cause); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Write serializes the problem to w with the problem+json media type and the
// problem's status code.
func Write(w http.ResponseWriter, p Problem) error {
	status := p.Status()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", MediaTypeProblem)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(p)
}
