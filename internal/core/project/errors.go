// Package project implements the scaffold run itself: resolving the target
// directory from the project name and driving a plan through file emission,
// dependency installation and manifest patching.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrDeclined indicates the user declined to scaffold into a non-empty
	// directory. It is not a failure; callers exit with status 0.
	ErrDeclined = errors.New("scaffold into non-empty directory declined")

	// ErrInvalidName indicates a project name that cannot name a directory
	// under the working directory.
	ErrInvalidName = errors.New("invalid project name")

	// ErrInvalidRoot indicates the target path exists but is not a directory.
	ErrInvalidRoot = errors.New("invalid project root path")
)
