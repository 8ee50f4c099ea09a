package server

import (
	"fmt"

	"github.com/ipni/cidgen"
	"github.com/ipni/cidgen/metrics"
)

// config contains all options for the server.
type config struct {
	metrics  *metrics.Metrics
	hashType cidgen.HashAlgorithm
}

// Option is a function that sets a value in a config.
type Option func(*config) error

// getOpts creates a config and applies Options to it.
func getOpts(opts []Option) (config, error) {
	cfg := config{
		hashType: cidgen.SHA2_256,
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, fmt.Errorf("option %d error: %s", i, err)
		}
	}
	return cfg, nil
}

// WithMetrics configures metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithDefaultHashType sets the hash algorithm used by requests that carry
// no `hash` query parameter.
func WithDefaultHashType(a cidgen.HashAlgorithm) Option {
	return func(c *config) error {
		c.hashType = a
		return nil
	}
}
