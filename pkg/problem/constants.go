package problem

// Media types for problem responses. The x. variant is kept for clients of
// earlier releases.
const (
	MediaTypeProblem = "application/problem+json"

	// Deprecated: use MediaTypeProblem.
	MediaTypeXProblem = "application/x.problem+json"
)

// Message key prefixes. A handler derives three lookup keys per error,
// <prefix><errorKey>, one for each of code, title and detail.
const (
	CodeKeyPrefix   = "code."
	TitleKeyPrefix  = "title."
	DetailKeyPrefix = "detail."
)

// Dot joins error key segments.
const Dot = "."

// Well-known parameter keys.
const (
	// PropertyPathKey reports the offending field of a validation failure.
	PropertyPathKey = "propertyPath"
	// StacktraceKey carries the captured stack frames when enabled.
	StacktraceKey = "stacktrace"
	// TypeKey and InstanceKey carry the help page URL and request path.
	TypeKey     = "type"
	InstanceKey = "instance"
	// ErrorIDKey carries a per-occurrence identifier in debug mode.
	ErrorIDKey = "errorId"
)

// Debug-only parameter keys under which the raw message resolvers are
// exposed when debug mode is on. Never present in production output.
const (
	CodeResolverKey   = "codeResolver"
	TitleResolverKey  = "titleResolver"
	DetailResolverKey = "detailResolver"
)

// General error keys shared by the built-in advices.
const (
	KeyConstraintViolations    = "constraint.violations"
	KeyConstraintViolation     = "constraint.violation"
	KeyTypeMismatch            = "type.mismatch"
	KeyMessageNotReadable      = "message.not.readable"
	KeyMissingRequestParameter = "missing.request.parameter"
	KeyNoHandlerFound          = "no.handler.found"
	KeyMethodNotSupported      = "request.method.not.supported"
	KeyMediaTypeNotSupported   = "media.type.not.supported"
	KeySecurityUnauthorized    = "security.unauthorized"
	KeySecurityAccessDenied    = "security.access.denied"
	KeyRequestTimeout          = "request.timeout"
	KeyRateLimitExceeded       = "rate.limit.exceeded"
	KeyPanic                   = "panic"
)
