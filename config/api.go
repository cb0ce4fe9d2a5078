package config

import (
	"strings"
	"time"
)

// APIConfig contains the library REST API endpoint configuration.
type APIConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api/v1".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080/api/v1"`

	// Timeout bounds each API round trip.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}
