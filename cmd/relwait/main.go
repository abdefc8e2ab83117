// Package main is the entry point for the relwait CLI.
//
// relwait can be used either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	relwait run -c waits.yaml      # Run the configured waits
//	relwait validate -c waits.yaml # Validate configuration
//	relwait version                # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "relwait",
	Short: "Wait for release conditions to become true",
	Long: `relwait polls external release systems until awaited conditions hold.

It runs a batch of named waits concurrently: each wait checks one
condition (a version in an upgrade graph, a stable release, a command's
output) at a fixed cadence until it succeeds or its budget runs out.

Quick start:
  1. Create a config file (waits.yaml)
  2. Run: relwait run -c waits.yaml
  3. The exit code reports whether every wait succeeded

Example config:
  waits:
    - name: graph has 4.14.9
      type: release-in-graph
      endpoint: https://api.openshift.com/api/upgrades_info/v1/graph
      channel: candidate-4.14
      version: 4.14.9
      max_attempts: 60
      delay: 1m`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this relwait binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("relwait %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
