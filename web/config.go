package web

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPort is the port of the meal page.
const DefaultPort = 8501

// Config holds server configuration.
type Config struct {
	Address string
	Port    int

	// Rate limiting of the page, health and metrics are not limited.
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the defaults, PORT overrides the port.
func DefaultConfig() *Config {
	cfg := &Config{
		Port:            DefaultPort,
		RateLimit:       5,
		RateLimitBurst:  10,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    60 * time.Second, // a page fetches up to eight days
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string { return fmt.Sprintf("%s:%d", c.Address, c.Port) }
