// Package message resolves symbolic message keys into localized text. A
// Resolver pairs a lookup key with a fallback template and positional
// arguments; a Provider consults a localized Source first and falls back to
// the template on a miss. Missing keys are routine, never an error.
package message

import "golang.org/x/text/language"

// Resolver is one message-resolution request. It is built per handler
// invocation, consumed immediately and discarded. The exported fields let
// debug mode serialize the raw request next to the resolved text.
type Resolver struct {
	Key         string `json:"key"`
	DefaultText string `json:"defaultText"`
	Args        []any  `json:"args,omitempty"`
}

// NewResolver pairs a lookup key with its fallback template and arguments.
func NewResolver(key, defaultText string, args ...any) Resolver {
	return Resolver{Key: key, DefaultText: defaultText, Args: args}
}

// Source is a localized message lookup. Implementations must be safe for
// concurrent reads.
type Source interface {
	// Lookup returns the template stored under key for the given locale.
	// The second return is false when no entry exists in the locale or any
	// of its fallbacks.
	Lookup(locale language.Tag, key string) (string, bool)
}

// Provider resolves Resolvers against a Source.
type Provider struct {
	source Source
}

// NewProvider returns a Provider backed by source. A nil source always
// resolves to the default text.
func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

// Message resolves r for the given locale. The source entry wins over the
// default text; both go through the same placeholder substitution so
// authored messages and generated fallbacks are interchangeable.
func (p *Provider) Message(locale language.Tag, r Resolver) string {
	if p != nil && p.source != nil {
		if tpl, ok := p.source.Lookup(locale, r.Key); ok {
			return Format(tpl, r.Args...)
		}
	}
	return Format(r.DefaultText, r.Args...)
}
