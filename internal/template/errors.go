// Package template renders the embedded project templates and writes the
// results into a target directory under an explicit write policy.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates the named template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingTemplateKey indicates template execution referenced a missing key.
	ErrMissingTemplateKey = errors.New("template references missing key")

	// ErrUnexpandedToken indicates template delimiters survived rendering.
	ErrUnexpandedToken = errors.New("unexpanded template token in output")

	// ErrPathTraversal indicates a file path escapes the project root.
	ErrPathTraversal = errors.New("path escapes project root")

	// ErrInvalidWritePolicy indicates an unknown write policy name.
	ErrInvalidWritePolicy = errors.New("invalid write policy")
)
