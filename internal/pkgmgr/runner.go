package pkgmgr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/backendgen/backendgen/internal/logging"
)

// Runner executes one command in dir and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExecRunner runs commands as child processes sharing the given streams, so
// the user sees installer output live.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// lookPath resolves binaries; tests replace it.
	lookPath func(string) (string, error)
}

// Compile-time interface compliance check.
var _ Runner = (*ExecRunner)(nil)

// NewExecRunner returns a Runner attached to the process's own stdio.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logging.OrDiscard(logger),
		lookPath: exec.LookPath,
	}
}

// Run starts name with args in dir. A missing binary yields a CommandError
// wrapping ErrNotFound; a non-zero exit yields a CommandError carrying the
// child's exit code.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	argv := append([]string{name}, args...)
	logger := logging.OrDiscard(r.Logger)

	lookPath := r.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(name)
	if err != nil {
		return &CommandError{Args: argv, ExitCode: -1, Err: errors.Join(ErrNotFound, err)}
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logger.Debug("running command", "args", argv, "dir", dir)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return &CommandError{Args: argv, ExitCode: exitErr.ExitCode(), Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return &CommandError{Args: argv, ExitCode: -1, Err: err}
	}
	return nil
}
