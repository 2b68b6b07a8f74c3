package template

import (
	"fmt"
	"strings"
)

// WritePolicy controls what the Deployer does when a planned file already
// exists at its destination.
type WritePolicy string

const (
	// PolicyPreserve writes a file only if nothing exists at its path.
	PolicyPreserve WritePolicy = "preserve"

	// PolicyOverwrite writes every file, replacing existing content.
	PolicyOverwrite WritePolicy = "overwrite"
)

// ParseWritePolicy converts a config value into a WritePolicy.
// The empty string maps to PolicyPreserve.
func ParseWritePolicy(s string) (WritePolicy, error) {
	switch WritePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPreserve:
		return PolicyPreserve, nil
	case PolicyOverwrite:
		return PolicyOverwrite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidWritePolicy, s)
	}
}

// String implements fmt.Stringer.
func (p WritePolicy) String() string {
	return string(p)
}
