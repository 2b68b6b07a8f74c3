package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/backendgen/backendgen/internal/pkgmgr"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", errors.New("boom"), 1},
		{"command", &pkgmgr.CommandError{Args: []string{"npm", "install"}, ExitCode: 3}, 3},
		{"wrapped command", fmt.Errorf("install dependencies: %w", &pkgmgr.CommandError{ExitCode: 127}), 127},
		{"missing binary", &pkgmgr.CommandError{ExitCode: -1, Err: pkgmgr.ErrNotFound}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
