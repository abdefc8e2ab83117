package ocp

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FreezeState is the automation-freeze posture declared in a release
// stream's group configuration.
type FreezeState string

const (
	// FreezeNone means automation may build and compose freely.
	FreezeNone FreezeState = "none"

	// FreezeAll means all automated builds and composes are frozen.
	FreezeAll FreezeState = "all"

	// FreezeScheduled means ad-hoc (manually triggered) automation is
	// frozen but scheduled runs may proceed.
	FreezeScheduled FreezeState = "scheduled"
)

// groupConfig is the subset of a group configuration document the gate
// reads. freeze_automation historically appears as a bool or as the
// strings "yes"/"True"/"scheduled", so it is decoded loosely.
type groupConfig struct {
	FreezeAutomation yaml.Node `yaml:"freeze_automation"`
}

// ParseFreeze reads the freeze_automation field from a group configuration
// document and normalizes it to a [FreezeState].
//
// Accepted spellings, matching what appears in ocp-build-data over the
// years: booleans, "yes"/"no", "true"/"false", and "scheduled". An absent
// field means no freeze. Any other value is an error — a typo in a freeze
// flag must not silently unfreeze a stream.
func ParseFreeze(doc []byte) (FreezeState, error) {
	var cfg groupConfig
	if err := yaml.Unmarshal(doc, &cfg); err != nil {
		return "", fmt.Errorf("invalid group config: %w", err)
	}

	if cfg.FreezeAutomation.IsZero() {
		return FreezeNone, nil
	}

	var raw string
	if err := cfg.FreezeAutomation.Decode(&raw); err != nil {
		var b bool
		if err := cfg.FreezeAutomation.Decode(&b); err != nil {
			return "", fmt.Errorf("freeze_automation has unsupported type")
		}
		if b {
			return FreezeAll, nil
		}
		return FreezeNone, nil
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "no", "false":
		return FreezeNone, nil
	case "yes", "true":
		return FreezeAll, nil
	case "scheduled":
		return FreezeScheduled, nil
	default:
		return "", fmt.Errorf("unrecognized freeze_automation value %q", raw)
	}
}

// BuildPermitted decides whether an automated build or compose may proceed
// under the given freeze state. scheduled reports whether this run was
// triggered by a timer rather than a human.
func BuildPermitted(state FreezeState, scheduled bool) bool {
	switch state {
	case FreezeAll:
		return false
	case FreezeScheduled:
		return scheduled
	default:
		return true
	}
}
