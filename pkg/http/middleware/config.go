package middleware

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the HTTP middleware settings loaded from the config file.
// yaml example:
//
//	http:
//	  timeout:
//	    enabled: true
//	    request-timeout: 30s
//	  rate-limit:
//	    enabled: false
//	    requests-per-second: 100
//	    burst: 50
type Config struct {
	Timeout   TimeoutConfig   `mapstructure:"timeout"`
	RateLimit RateLimitConfig `mapstructure:"rate-limit"`
}

// TimeoutConfig configures the request timeout middleware.
type TimeoutConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
	Burst             int     `mapstructure:"burst"`
}

func newConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Timeout:   TimeoutConfig{RequestTimeout: 30 * time.Second},
		RateLimit: RateLimitConfig{RequestsPerSecond: 100, Burst: 50},
	}

	sub := v.Sub("http")
	if sub == nil {
		return cfg, nil
	}
	if err := sub.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load http config: %w", err)
	}
	return cfg, nil
}
