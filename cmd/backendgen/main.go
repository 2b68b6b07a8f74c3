// @MX:ANCHOR: [AUTO] main is the only entry point of the backendgen binary.
// @MX:REASON: [AUTO] maps command errors to the process exit status
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backendgen/backendgen/internal/cli"
	"github.com/backendgen/backendgen/internal/pkgmgr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode propagates a failed subprocess's status; other errors exit 1.
func exitCode(err error) int {
	var ce *pkgmgr.CommandError
	if errors.As(err, &ce) && ce.ExitCode > 0 {
		return ce.ExitCode
	}
	return 1
}
