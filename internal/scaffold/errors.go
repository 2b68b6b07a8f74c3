// Package scaffold turns an AnswerSet into a ScaffoldPlan: the fixed
// directory list, the gated file table and the dependency sets.
package scaffold

import "errors"

var (
	// ErrInvalidCatalog indicates the dependency catalog could not be parsed
	// or references unknown answers.
	ErrInvalidCatalog = errors.New("invalid dependency catalog")

	// ErrUnknownDatabase indicates an AnswerSet with no catalog entry for its database.
	ErrUnknownDatabase = errors.New("unknown database choice")
)
