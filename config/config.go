// Package config provides YAML configuration parsing for relwait.
//
// This package enables running relwait as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	max_concurrency: 4
//
//	defaults:
//	  max_attempts: 30
//	  delay: 10s
//
//	waits:
//	  - name: graph has 4.14.9
//	    type: release-in-graph
//	    endpoint: https://api.openshift.com/api/upgrades_info/v1/graph
//	    channel: candidate-4.14
//	    version: 4.14.9
//	    arches: [amd64, arm64]
//	    max_attempts: 60
//	    delay: 1m
//
//	  - name: 4.13.2 accepted
//	    type: stable-release
//	    endpoint: https://${RELEASE_CONTROLLER}/api/v1/releasestream/4-stable/latest
//	    release: 4.13.2
//	    max_attempts: 36
//	    delay: 5m
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Wait types accepted in the "type" field.
const (
	TypeReleaseInGraph = "release-in-graph"
	TypeStableRelease  = "stable-release"
	TypeCommand        = "command"
)

const (
	defaultMaxConcurrency = 4
	// minDelay guards against hammering shared release infrastructure
	minDelay = time.Second
)

// Config is the root configuration structure for the relwait binary.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// MaxConcurrency caps how many waits poll simultaneously.
	// Defaults to 4.
	MaxConcurrency int `yaml:"max_concurrency"`

	// Defaults supplies budget values for waits that omit them.
	Defaults Budget `yaml:"defaults"`

	// Waits defines the conditions to wait for.
	Waits []WaitConfig `yaml:"waits"`
}

// Budget is the poll budget portion of a wait definition.
type Budget struct {
	// MaxAttempts is the attempt cap. Zero means inherit (or the SDK
	// default of 30 at the top level).
	MaxAttempts int `yaml:"max_attempts"`

	// Delay is the base delay between attempts.
	// Accepts duration strings like "10s", "1m", "500ms".
	Delay Duration `yaml:"delay"`

	// Deadline is an optional overall elapsed-time budget.
	Deadline Duration `yaml:"deadline"`
}

// WaitConfig defines a single wait.
type WaitConfig struct {
	// Name identifies the wait in output and logs. Required and unique.
	Name string `yaml:"name"`

	// Type selects the check adapter: "release-in-graph",
	// "stable-release", or "command".
	Type string `yaml:"type"`

	// Budget fields; zero values inherit from Defaults.
	Budget `yaml:",inline"`

	// Timeout bounds a single check attempt (one HTTP request or one
	// command execution).
	Timeout Duration `yaml:"timeout"`

	// Labels are metadata key-value pairs carried through to results.
	Labels map[string]string `yaml:"labels"`

	// Endpoint is the URL polled by the HTTP wait types.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Endpoint string `yaml:"endpoint"`

	// Headers are custom HTTP headers sent with each request.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`

	// Channel and Version configure release-in-graph waits.
	Channel string `yaml:"channel"`
	Version string `yaml:"version"`

	// Arches expands a release-in-graph wait into one wait per
	// architecture. Defaults to [amd64].
	Arches []string `yaml:"arches"`

	// Release is the target release name for stable-release waits.
	Release string `yaml:"release"`

	// Command is the command line for command waits.
	// Supports environment variable substitution.
	Command string `yaml:"command"`

	// SuccessPattern is the regular expression a command wait matches
	// against combined output. Empty means exit status alone decides.
	SuccessPattern string `yaml:"success_pattern"`

	// WorkDir is the working directory for command waits.
	WorkDir string `yaml:"work_dir"`

	// Env adds environment variables to command waits.
	// Values support environment variable substitution.
	Env map[string]string `yaml:"env"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values. A reference to an unset variable with no default is
// an error.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in endpoints, headers, commands, and
// env values. Defaults are applied and the result is validated.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}

	for i := range cfg.Waits {
		if err := expandWait(&cfg.Waits[i]); err != nil {
			return nil, fmt.Errorf("wait %q: %w", cfg.Waits[i].Name, err)
		}
		applyDefaults(&cfg.Waits[i], cfg.Defaults)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandWait applies env substitution to the fields that may carry secrets
// or deployment-specific values.
func expandWait(w *WaitConfig) error {
	var err error
	if w.Endpoint, err = expandEnvVars(w.Endpoint); err != nil {
		return err
	}
	if w.Command, err = expandEnvVars(w.Command); err != nil {
		return err
	}
	for k, v := range w.Headers {
		if w.Headers[k], err = expandEnvVars(v); err != nil {
			return err
		}
	}
	for k, v := range w.Env {
		if w.Env[k], err = expandEnvVars(v); err != nil {
			return err
		}
	}
	return nil
}

// applyDefaults fills a wait's zero budget fields from the config-level
// defaults.
func applyDefaults(w *WaitConfig, d Budget) {
	if w.MaxAttempts == 0 {
		w.MaxAttempts = d.MaxAttempts
	}
	if w.Delay == 0 {
		w.Delay = d.Delay
	}
	if w.Deadline == 0 {
		w.Deadline = d.Deadline
	}
}

// validate checks the whole config for the mistakes that should fail fast
// rather than surface mid-wait.
func validate(cfg *Config) error {
	if cfg.MaxConcurrency < 1 {
		return errors.New("max_concurrency must be positive")
	}
	if len(cfg.Waits) == 0 {
		return errors.New("at least one wait is required")
	}

	seen := make(map[string]bool, len(cfg.Waits))
	for i := range cfg.Waits {
		w := &cfg.Waits[i]
		if w.Name == "" {
			return fmt.Errorf("wait %d: name is required", i)
		}
		if seen[w.Name] {
			return fmt.Errorf("duplicate wait name: %q", w.Name)
		}
		seen[w.Name] = true

		if err := validateWait(w); err != nil {
			return fmt.Errorf("wait %q: %w", w.Name, err)
		}
	}
	return nil
}

func validateWait(w *WaitConfig) error {
	if w.MaxAttempts < 0 {
		return errors.New("max_attempts must not be negative")
	}
	if w.Delay < 0 {
		return errors.New("delay must not be negative")
	}
	if w.Delay != 0 && w.Delay.Duration() < minDelay {
		return fmt.Errorf("delay must be at least %s", minDelay)
	}

	switch w.Type {
	case TypeReleaseInGraph:
		if w.Endpoint == "" {
			return errors.New("endpoint is required for release-in-graph waits")
		}
		if w.Channel == "" {
			return errors.New("channel is required for release-in-graph waits")
		}
		if w.Version == "" {
			return errors.New("version is required for release-in-graph waits")
		}
	case TypeStableRelease:
		if w.Endpoint == "" {
			return errors.New("endpoint is required for stable-release waits")
		}
		if w.Release == "" {
			return errors.New("release is required for stable-release waits")
		}
	case TypeCommand:
		if w.Command == "" {
			return errors.New("command is required for command waits")
		}
	case "":
		return errors.New("type is required")
	default:
		return fmt.Errorf("unknown wait type %q (expected %q, %q, or %q)",
			w.Type, TypeReleaseInGraph, TypeStableRelease, TypeCommand)
	}
	return nil
}
