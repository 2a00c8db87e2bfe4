package executor

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	Logger *zerolog.Logger
	// Stdout and Stderr default to the process streams
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory for commands; empty means the current one
	Dir string
}

// Executor starts subprocesses and waits for them
type Executor struct {
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
	dir    string
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Executor{
		logger: logger,
		stdout: stdout,
		stderr: stderr,
		dir:    opts.Dir,
	}
}

// Run starts name with args and waits for it to exit
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.dir
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Run(); err != nil {
		e.logger.Debug().
			Err(err).
			Str("command", name).
			Strs("args", args).
			Msg("Command failed")
		sweepErr := errors.Wrap(err, errors.ErrCommandFailed, "Command failed").
			WithDetail("command", name).
			WithDetail("args", args)
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			sweepErr.WithDetail("exitCode", exitErr.ExitCode())
		}
		return sweepErr
	}

	return nil
}
