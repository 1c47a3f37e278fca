package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the HTTP server settings loaded from the config file.
// yaml example:
//
//	server:
//	  port: 8080
//	  connection:
//	    read-header-timeout: 10s
//	    read-timeout: 30s
//	    write-timeout: 40s
//	    idle-timeout: 120s
type Config struct {
	Port int `mapstructure:"port"`

	Connection ConnectionConfig `mapstructure:"connection"`
}

// ConnectionConfig contains low-level connection settings. These are hard
// timeouts that close the connection without an HTTP response; the
// request-timeout middleware handles the in-protocol case.
type ConnectionConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read-header-timeout"`
	ReadTimeout       time.Duration `mapstructure:"read-timeout"`
	WriteTimeout      time.Duration `mapstructure:"write-timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle-timeout"`
	MaxHeaderBytes    int           `mapstructure:"max-header-bytes"`
}

func newConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port: 8080,
		Connection: ConnectionConfig{
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      40 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	sub := v.Sub("server")
	if sub == nil {
		return cfg, nil
	}
	if err := sub.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load server config: %w", err)
	}
	return cfg, nil
}
