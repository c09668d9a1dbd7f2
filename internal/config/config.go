package config

import (
	"fmt"
	"time"
)

// Config holds the static allow-list and numeric limits for the service.
// It is built once at startup and never mutated afterwards.
type Config struct {
	AllowedHosts      []string
	MaxPingCount      int
	DefaultPingCount  int
	MaxHops           int
	DefaultHops       int
	MaxBulkHosts      int
	PingTimeout       time.Duration
	TracerouteTimeout time.Duration
	Port              int
}

// Default returns the fixed service configuration.
func Default() Config {
	return Config{
		AllowedHosts: []string{
			"1.1.1.1",
			"8.8.8.8",
			"8.8.4.4",
			"1.0.0.1",
			"google.com",
			"cloudflare.com",
			"github.com",
			"stackoverflow.com",
			"python.org",
			"go.dev",
		},
		MaxPingCount:      10,
		DefaultPingCount:  4,
		MaxHops:           50,
		DefaultHops:       30,
		MaxBulkHosts:      5,
		PingTimeout:       30 * time.Second,
		TracerouteTimeout: 60 * time.Second,
		Port:              8000,
	}
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if len(c.AllowedHosts) == 0 {
		return fmt.Errorf("at least one allowed host must be specified")
	}
	if c.MaxPingCount <= 0 {
		return fmt.Errorf("max ping count must be positive")
	}
	if c.DefaultPingCount <= 0 || c.DefaultPingCount > c.MaxPingCount {
		return fmt.Errorf("default ping count must be between 1 and %d", c.MaxPingCount)
	}
	if c.MaxHops <= 0 {
		return fmt.Errorf("max hops must be positive")
	}
	if c.DefaultHops <= 0 || c.DefaultHops > c.MaxHops {
		return fmt.Errorf("default hops must be between 1 and %d", c.MaxHops)
	}
	if c.MaxBulkHosts <= 0 {
		return fmt.Errorf("max bulk hosts must be positive")
	}
	if c.PingTimeout <= 0 {
		return fmt.Errorf("ping timeout must be positive")
	}
	if c.TracerouteTimeout <= 0 {
		return fmt.Errorf("traceroute timeout must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
