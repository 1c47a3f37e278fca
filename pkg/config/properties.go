// Package config binds the problem-handling configuration from the
// application's viper instance. The snapshot is bound once at startup and
// read by every handler on each invocation.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ProblemProperties controls the problem handling mechanism.
// yaml example:
//
//	problem:
//	  enabled: true
//	  type-url: https://example.com/problems/help.html
//	  debug-enabled: false
//	  stacktrace-enabled: false
//	  cause-chains-enabled: false
//	  codec-module-enabled: true
//	  dao-advice-enabled: true
//	  security-advice-enabled: true
//	  open-api:
//	    path: /oas/api.json
//	    exclude-patterns: [/health/*]
//	    req-validation-enabled: false
//	    res-validation-enabled: false
type ProblemProperties struct {
	// Enabled is the master switch for the whole mechanism.
	Enabled bool `mapstructure:"enabled"`

	// TypeURL is the help page base reported as the problem type.
	TypeURL string `mapstructure:"type-url"`

	// DebugEnabled additionally exposes the raw message resolvers in the
	// problem parameters. Never enable in production.
	DebugEnabled bool `mapstructure:"debug-enabled"`

	// StacktraceEnabled attaches the captured stack trace as a parameter.
	StacktraceEnabled bool `mapstructure:"stacktrace-enabled"`

	// CauseChainsEnabled nests a problem per link of the error's cause chain.
	CauseChainsEnabled bool `mapstructure:"cause-chains-enabled"`

	// CodecModuleEnabled serves problems under the problem media types.
	// When false they are written as plain application/json.
	CodecModuleEnabled bool `mapstructure:"codec-module-enabled"`

	// DAOAdviceEnabled wires the storage constraint-violation advices.
	DAOAdviceEnabled bool `mapstructure:"dao-advice-enabled"`

	// SecurityAdviceEnabled wires the authentication/authorization advices.
	SecurityAdviceEnabled bool `mapstructure:"security-advice-enabled"`

	OpenAPI OpenAPIProperties `mapstructure:"open-api"`
}

// OpenAPIProperties configures OpenAPI specification validation.
type OpenAPIProperties struct {
	// Path the API specification json is served at.
	Path string `mapstructure:"path"`

	// ExcludePatterns lists path patterns excluded from validation.
	ExcludePatterns []string `mapstructure:"exclude-patterns"`

	// ReqValidationEnabled validates incoming requests against the spec.
	ReqValidationEnabled bool `mapstructure:"req-validation-enabled"`

	// ResValidationEnabled validates outgoing responses against the spec.
	ResValidationEnabled bool `mapstructure:"res-validation-enabled"`
}

// DefaultProperties returns the defaults applied when the problem section is
// absent or partial.
func DefaultProperties() *ProblemProperties {
	return &ProblemProperties{
		Enabled:               true,
		TypeURL:               "http://localhost:8080/problems/help.html",
		CodecModuleEnabled:    true,
		DAOAdviceEnabled:      true,
		SecurityAdviceEnabled: true,
		OpenAPI: OpenAPIProperties{
			Path: "/oas/api.json",
		},
	}
}

func newProperties(v *viper.Viper) (*ProblemProperties, error) {
	props := DefaultProperties()

	sub := v.Sub("problem")
	if sub == nil {
		return props, nil
	}
	if err := sub.Unmarshal(props); err != nil {
		return nil, fmt.Errorf("failed to load problem config: %w", err)
	}
	return props, nil
}
