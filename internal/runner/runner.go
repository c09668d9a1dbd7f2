package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"connectivity-api/internal/models"
)

// Execution failures, checked by callers with errors.Is.
var (
	ErrTimeout   = errors.New("command timed out")
	ErrExecution = errors.New("command execution failed")
)

// waitDelay bounds how long Wait may block on output pipes after the
// context kills the process, so a run can never leave a zombie behind.
const waitDelay = 5 * time.Second

// Runner executes external commands with a timeout
type Runner struct {
	log *zap.Logger
}

// New creates a new Runner
func New(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Run spawns name with args and waits up to timeout for it to finish.
// A non-zero exit is not an error as long as the command produced
// output; utilities like ping exit 1 on packet loss while still
// printing a parseable summary. The process is always reaped before
// Run returns, including on timeout.
func (r *Runner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (models.RunOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	out := models.RunOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}

	r.log.Debug("command finished",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Int("exit_code", out.ExitCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)

	if ctx.Err() == context.DeadlineExceeded {
		return out, fmt.Errorf("%w: %s did not finish within %s", ErrTimeout, name, timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if out.Stdout == "" && out.Stderr == "" {
				return out, fmt.Errorf("%w: %s exited with code %d and produced no output", ErrExecution, name, out.ExitCode)
			}
			// Non-zero exit with usable output; the caller parses it.
			return out, nil
		}
		return out, fmt.Errorf("%w: %s: %v", ErrExecution, name, err)
	}

	return out, nil
}
