package cidgen

import (
	"fmt"
)

// config contains all options for a single Sum call.
type config struct {
	hashType HashAlgorithm
	base     Base
}

// Option is a function that sets a value in a config.
type Option func(*config) error

// getOpts creates a config and applies Options to it.
func getOpts(opts []Option) (config, error) {
	cfg := config{
		hashType: SHA2_256,
		base:     DefaultBase(),
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, fmt.Errorf("option %d error: %s", i, err)
		}
	}
	return cfg, nil
}

// WithHashType selects the hash algorithm. The value is not checked here;
// an algorithm without a wired implementation surfaces as ErrUnknownHashType
// from Sum.
func WithHashType(a HashAlgorithm) Option {
	return func(c *config) error {
		c.hashType = a
		return nil
	}
}

// WithBase selects the textual encoding for this call, overriding the
// process-wide default. The value is not checked here; an unrecognized base
// surfaces as ErrInvalidBase from Sum, after hashing.
func WithBase(b Base) Option {
	return func(c *config) error {
		c.base = b
		return nil
	}
}
