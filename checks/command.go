package checks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/openshift-eng/relwait"
)

// Command returns a check that runs an external command and inspects its
// output.
//
// The command line is split with shell-style quoting rules (no shell is
// invoked). When pattern is non-empty it is compiled as a regular
// expression and matched against the command's combined stdout/stderr:
//
//   - exit 0 and pattern matches (or no pattern given): success. The
//     payload is the first capture group when the pattern has one, the
//     whole match otherwise, or the trimmed output when no pattern was
//     given.
//   - exit 0 but no match: condition not yet met, retry.
//   - non-zero exit or failure to start: retry. External tools in these
//     pipelines routinely fail transiently; callers wanting to fail fast
//     attach a stricter classifier to their Spec.
//
// An empty command line or an invalid pattern is a construction error.
//
// Example:
//
//	check, err := checks.Command(
//	    "brew latest-build rhaos-4.14-rhel-8 openshift",
//	    `openshift-(4\.14\.\d+)-`,
//	)
func Command(command, pattern string, opts ...Option) (relwait.Check, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid command line: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("command cannot be empty")
	}

	var re *regexp.Regexp
	if pattern != "" {
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid success pattern: %w", err)
		}
	}

	cfg, err := newCheckConfig(opts)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) relwait.Outcome {
		runCtx := ctx
		if cfg.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
		cmd.Dir = cfg.workDir
		if len(cfg.env) > 0 {
			cmd.Env = os.Environ()
			for k, v := range cfg.env {
				cmd.Env = append(cmd.Env, k+"="+v)
			}
		}

		out, err := cmd.CombinedOutput()
		if err != nil {
			return relwait.Retry(fmt.Errorf("%s: %w (output: %s)", argv[0], err, firstLine(out)))
		}

		if re == nil {
			return relwait.Success(strings.TrimSpace(string(out)))
		}

		match := re.FindSubmatch(out)
		if match == nil {
			return relwait.NotYet(fmt.Sprintf("%s output does not match %q", argv[0], pattern))
		}
		if len(match) > 1 {
			return relwait.Success(string(match[1]))
		}
		return relwait.Success(string(match[0]))
	}, nil
}

// firstLine trims command output to its first line for error messages.
func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "<no output>"
	}
	return s
}
