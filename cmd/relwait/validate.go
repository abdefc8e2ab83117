package main

import (
	"fmt"

	"github.com/openshift-eng/relwait/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without running any waits.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a relwait configuration file without running any waits.

This command parses the YAML, expands environment variables, validates
all fields, and builds the checks. It's useful for CI/CD pipelines or
pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  relwait validate -c waits.yaml
  relwait validate --config /etc/relwait/waits.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Building catches errors parsing alone cannot, like a version that
	// is not semver or a success pattern that is not a valid regular
	// expression.
	waits, err := config.Build(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Max concurrency: %d\n", cfg.MaxConcurrency)
	fmt.Printf("  Waits:           %d configured, %d after arch expansion\n",
		len(cfg.Waits), len(waits))

	return nil
}
