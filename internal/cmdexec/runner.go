// Package cmdexec executes external command-line tools and captures their
// results. It is the single choke point for all process spawning in the
// server: commands are always launched from an argument vector (never through
// a shell), bounded by a wall-clock timeout, and every failure mode -
// missing binary, spawn error, non-zero exit, timeout - is reported as an
// ordinary Result so that callers branch on one uniform type instead of
// handling raised errors.
package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/kubestellar/mcp-kubestellar/internal/instrumentation"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// DefaultTimeout bounds a command when the caller does not supply one.
const DefaultTimeout = 300 * time.Second

// waitDelay is how long Wait may linger after the process is killed before
// abandoning inherited pipes. Prevents a killed child's grandchildren from
// holding the runner open.
const waitDelay = 5 * time.Second

// Command describes one external process invocation.
type Command struct {
	// Argv is the command and its arguments. Argv[0] is the binary.
	Argv []string

	// Timeout is the wall-clock bound; zero means DefaultTimeout.
	Timeout time.Duration

	// Dir is the working directory; empty means the process inherits ours.
	Dir string

	// Env holds environment overrides appended to the inherited environment.
	Env map[string]string
}

// Result is the outcome of one invocation. It is produced exactly once and
// never mutated.
type Result struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Success reports whether the command exited cleanly.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes external commands.
type Runner interface {
	// Run executes cmd and returns its result. Run never returns a Go error:
	// spawn failures and timeouts are encoded as a Result with ExitCode 1
	// and a descriptive Stderr.
	Run(ctx context.Context, cmd Command) Result

	// LookPath searches for a binary on the execution search path.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	defaultTimeout time.Duration
	logger         *slog.Logger
	metrics        *instrumentation.Metrics
}

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithDefaultTimeout overrides the runner-wide default timeout.
func WithDefaultTimeout(d time.Duration) ExecOption {
	return func(r *ExecRunner) {
		if d > 0 {
			r.defaultTimeout = d
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) ExecOption {
	return func(r *ExecRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder for command executions.
func WithMetrics(m *instrumentation.Metrics) ExecOption {
	return func(r *ExecRunner) {
		r.metrics = m
	}
}

// NewExecRunner creates a Runner that spawns real processes.
func NewExecRunner(opts ...ExecOption) *ExecRunner {
	r := &ExecRunner{
		defaultTimeout: DefaultTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) Result {
	if len(cmd.Argv) == 0 {
		return Result{ExitCode: 1, Stderr: "no command specified"}
	}

	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.logger.Debug("executing command", logging.Command(cmd.Argv), logging.Duration(timeout))

	proc := exec.CommandContext(runCtx, cmd.Argv[0], cmd.Argv[1:]...)
	proc.Dir = cmd.Dir
	proc.WaitDelay = waitDelay
	if len(cmd.Env) > 0 {
		env := os.Environ()
		for k, v := range cmd.Env {
			env = append(env, k+"="+v)
		}
		proc.Env = env
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	start := time.Now()
	err := proc.Run()
	elapsed := time.Since(start)

	result := r.resolve(runCtx, proc, err, &stdout, &stderr, timeout)

	r.metrics.RecordCommand(ctx, filepath.Base(cmd.Argv[0]), result.ExitCode, elapsed)
	if result.ExitCode != 0 {
		r.logger.Debug("command failed",
			logging.Command(cmd.Argv),
			logging.ExitCode(result.ExitCode),
			slog.String("stderr", result.Stderr),
			logging.Duration(elapsed))
	} else {
		r.logger.Debug("command completed", logging.Command(cmd.Argv), logging.Duration(elapsed))
	}

	return result
}

// resolve maps the raw outcome of proc.Run onto the errors-are-data Result
// contract.
func (r *ExecRunner) resolve(runCtx context.Context, proc *exec.Cmd, err error, stdout, stderr *bytes.Buffer, timeout time.Duration) Result {
	// The timeout wins over whatever exit state the killed process reports.
	if runCtx.Err() == context.DeadlineExceeded {
		return Result{
			ExitCode: 1,
			Stderr:   timeoutMessage(timeout),
		}
	}

	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return Result{
				ExitCode: proc.ProcessState.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}
		// Spawn failure: binary not found, permission denied, canceled parent
		// context. Converted to a failing result, never propagated.
		return Result{ExitCode: 1, Stderr: err.Error()}
	}

	return Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func timeoutMessage(timeout time.Duration) string {
	return fmt.Sprintf("Command timed out after %d seconds", int(timeout.Seconds()))
}
