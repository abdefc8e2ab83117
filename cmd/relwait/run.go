package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openshift-eng/relwait"
	"github.com/openshift-eng/relwait/config"
	"github.com/openshift-eng/relwait/internal/runner"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// runCmd executes the configured waits.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured waits",
	Long: `Run every wait in the configuration file concurrently.

Each wait polls its condition at the configured cadence until the
condition holds, the budget is exhausted, or the process is interrupted
(Ctrl+C / SIGTERM). Results are logged as each wait finishes.

Exit codes:
  0 - Every wait succeeded
  1 - At least one wait failed (or the run was interrupted)

With --soft, failed waits are logged but do not affect the exit code;
use this when the invoking pipeline treats a missed condition as
informational.

Example:
  relwait run -c waits.yaml
  relwait run --config /etc/relwait/waits.yaml --soft`,
	RunE: runWaits,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	runCmd.Flags().Bool("soft", false, "log failed waits without failing the run")
	runCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	_ = runCmd.MarkFlagRequired("config")
}

func runWaits(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	soft, _ := cmd.Flags().GetBool("soft")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	waits, err := config.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to build waits: %w", err)
	}

	logger.Info("starting waits",
		"count", len(waits),
		"max_concurrency", cfg.MaxConcurrency,
	)

	// cancel on SIGINT/SIGTERM so in-flight waits report cancellation
	// instead of being killed mid-sleep
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runnerWaits := make([]runner.Wait, len(waits))
	for i, w := range waits {
		runnerWaits[i] = runner.Wait{
			Name:   w.Name,
			Labels: w.Labels,
			Spec:   w.Spec,
			Check:  w.Check,
		}
	}

	r := runner.New(runnerWaits, cfg.MaxConcurrency, logger)
	r.Start(ctx)

	failed := 0
	for res := range r.Results() {
		logResult(logger, res)
		if res.Result.Err != nil {
			failed++
		}
	}
	r.Stop()

	if failed > 0 {
		logger.Warn("waits finished with failures",
			"failed", failed,
			"total", len(runnerWaits),
		)
		if !soft {
			return fmt.Errorf("%d of %d waits failed", failed, len(runnerWaits))
		}
		return nil
	}

	logger.Info("all waits succeeded", "total", len(runnerWaits))
	return nil
}

// logResult reports one finished wait at a level matching its outcome.
func logResult(logger *slog.Logger, res runner.WaitResult) {
	attrs := []any{
		"wait", res.Name,
		"attempts", res.Result.Attempts,
		"elapsed", res.Result.Elapsed.String(),
	}
	for k, v := range res.Labels {
		attrs = append(attrs, "label_"+k, v)
	}

	switch {
	case res.Result.Err == nil:
		attrs = append(attrs, "payload", fmt.Sprintf("%v", res.Result.Payload))
		logger.Info("wait succeeded", attrs...)
	case errors.Is(res.Result.Err, relwait.ErrCancelled):
		logger.Warn("wait cancelled", append(attrs, "error", res.Result.Err.Error())...)
	default:
		logger.Error("wait failed", append(attrs, "error", res.Result.Err.Error())...)
	}
}
