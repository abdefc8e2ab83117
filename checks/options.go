package checks

import (
	"errors"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// checkConfig holds mutable state during check construction.
type checkConfig struct {
	timeout time.Duration
	headers map[string]string
	workDir string
	env     map[string]string
}

// Option configures a check adapter during construction.
//
// Options return an error if validation fails. Not every option applies to
// every adapter: [WithHeaders] is HTTP-only, [WithWorkDir] and [WithEnv]
// apply to [Command].
type Option func(*checkConfig) error

// WithTimeout bounds a single check attempt: one HTTP request for the HTTP
// adapters, one command execution for [Command].
//
// This is distinct from the poll's overall budget — a slow attempt is cut
// off and classified retryable, leaving the remaining attempts intact.
// Defaults to 30 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *checkConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithHeaders adds HTTP headers to every request made by an HTTP adapter,
// e.g. for endpoints behind authentication.
//
// Accepts variadic key-value pairs. Returns an error if an odd number of
// arguments is provided.
func WithHeaders(keyValues ...string) Option {
	return func(cfg *checkConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithWorkDir sets the working directory for [Command] executions.
func WithWorkDir(dir string) Option {
	return func(cfg *checkConfig) error {
		if dir == "" {
			return errors.New("work dir cannot be empty")
		}
		cfg.workDir = dir
		return nil
	}
}

// WithEnv adds environment variables to [Command] executions, on top of the
// current process environment.
//
// Accepts variadic key-value pairs. Returns an error if an odd number of
// arguments is provided.
func WithEnv(keyValues ...string) Option {
	return func(cfg *checkConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithEnv requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.env[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// newCheckConfig applies opts over the defaults.
func newCheckConfig(opts []Option) (*checkConfig, error) {
	cfg := &checkConfig{
		timeout: defaultRequestTimeout,
		headers: make(map[string]string),
		env:     make(map[string]string),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
