package message

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeKey struct{}

// WithLocale returns a context carrying the request locale for the handlers.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

// LocaleOf extracts the locale from ctx, defaulting to English. Safe with a
// nil context.
func LocaleOf(ctx context.Context) language.Tag {
	if ctx == nil {
		return language.English
	}
	if tag, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return tag
	}
	return language.English
}

// LocaleFromRequest parses the request's Accept-Language header into the
// preferred locale, defaulting to English on absence or parse failure.
func LocaleFromRequest(r *http.Request) language.Tag {
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	return tags[0]
}
