package advice

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// Base carries the collaborators every advice needs: the configuration
// snapshot, the message provider and the status registry. Visibility flags
// are read on every invocation, not cached, so a reloaded configuration
// takes effect immediately.
type Base struct {
	Props    *config.ProblemProperties
	Messages *message.Provider
	Statuses *problem.StatusRegistry
}

// NewBase assembles the shared helper set used by all advices.
func NewBase(props *config.ProblemProperties, messages *message.Provider, statuses *problem.StatusRegistry) *Base {
	return &Base{Props: props, Messages: messages, Statuses: statuses}
}

// StatusOr returns the status declared by err or its cause chain, falling
// back to the advice's own default when none is declared. A declared status
// always wins over the classification default.
func (b *Base) StatusOr(err error, fallback int) int {
	if status, ok := b.Statuses.Declared(err); ok {
		return status
	}
	return fallback
}

// Resolvers builds the code/title/detail resolution requests for an error
// key, with the conventional fallbacks: the status number, the status
// reason phrase and the supplied detail text.
func (b *Base) Resolvers(errorKey string, status int, defaultDetail string, detailArgs ...any) (code, title, detail message.Resolver) {
	code = message.NewResolver(problem.CodeKeyPrefix+errorKey, strconv.Itoa(status))
	title = message.NewResolver(problem.TitleKeyPrefix+errorKey, http.StatusText(status))
	detail = message.NewResolver(problem.DetailKeyPrefix+errorKey, defaultDetail, detailArgs...)
	return code, title, detail
}

// NewProblem resolves the three messages and assembles a Problem from err,
// applying the debug, stacktrace and cause-chain policies.
func (b *Base) NewProblem(ctx context.Context, err error, status int, code, title, detail message.Resolver, params *problem.Params) problem.Problem {
	if params == nil {
		params = problem.NewParams()
	}
	if b.Props.DebugEnabled {
		params.Add(problem.CodeResolverKey, code)
		params.Add(problem.TitleResolverKey, title)
		params.Add(problem.DetailResolverKey, detail)
	}

	locale := message.LocaleOf(ctx)
	return b.prepare(ctx, err, status,
		b.Messages.Message(locale, code),
		b.Messages.Message(locale, title),
		b.Messages.Message(locale, detail),
		params)
}

// prepare builds the immutable Problem: stack trace parameter when enabled,
// recursively nested cause when cause chains are enabled.
func (b *Base) prepare(ctx context.Context, err error, status int, code, title, detail string, params *problem.Params) problem.Problem {
	if b.Props.StacktraceEnabled {
		params.Add(problem.StacktraceKey, b.stackTrace(err))
	}

	builder := problem.New(code, title, detail).Status(status).Params(params)

	if b.Props.CauseChainsEnabled {
		if cause := errors.Unwrap(err); cause != nil {
			nested := b.causeProblem(ctx, cause)
			builder.Cause(&nested)
		}
	}
	return builder.Build()
}

// causeProblem builds one nested Problem per cause-chain link. Code, title
// and detail fall back to the resolved status and the link's own message.
func (b *Base) causeProblem(ctx context.Context, err error) problem.Problem {
	status := b.Statuses.Resolve(err)
	return b.prepare(ctx, err, status,
		strconv.Itoa(status),
		http.StatusText(status),
		err.Error(),
		problem.NewParams())
}

// stackTrace returns err's frames, truncated against its cause's frames
// when cause chains are shown so the shared tail is not printed twice.
// Errors that carry no stack report the handling-time stack instead.
func (b *Base) stackTrace(err error) []problem.Frame {
	frames := problem.StackOf(err)
	if frames == nil {
		frames = problem.CaptureStack(3)
	}

	cause := errors.Unwrap(err)
	if cause == nil || !b.Props.CauseChainsEnabled {
		return frames
	}
	causeFrames := problem.StackOf(cause)
	if causeFrames == nil {
		return frames
	}
	return problem.TruncateAgainstCause(frames, causeFrames)
}
