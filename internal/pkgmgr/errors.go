// Package pkgmgr drives the external Node package manager: manifest
// initialisation, dependency installation and tool execution.
package pkgmgr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownManager indicates a package manager name with no command table.
	ErrUnknownManager = errors.New("unknown package manager")

	// ErrNotFound indicates the package manager binary is not on PATH.
	ErrNotFound = errors.New("package manager not found in PATH")
)

// CommandError reports a subprocess that could not start or exited non-zero.
type CommandError struct {
	// Args is the full command line, program first.
	Args []string
	// ExitCode is the child's exit status, or -1 if it never ran.
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
