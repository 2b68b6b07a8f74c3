// Package wizard asks the generation questions with charmbracelet/huh and
// turns the answers into a models.AnswerSet.
package wizard

import (
	"errors"

	"github.com/backendgen/backendgen/pkg/models"
)

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeInput is a free-text question.
	QuestionTypeInput QuestionType = iota
	// QuestionTypeConfirm is a yes/no question.
	QuestionTypeConfirm
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect
)

// Question defines a single wizard question.
type Question struct {
	ID          string       // Answer key; a models.Feature name, "project_name" or "database"
	Type        QuestionType // Input, Confirm or Select
	Title       string
	Description string
	Options     []Option // Options for select questions
	// Default is the preselected answer. Confirm questions use "true" or "false".
	Default  string
	Required bool
	Validate func(string) error
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// WizardResult accumulates answers while the wizard runs.
type WizardResult struct {
	ProjectName string
	Features    map[models.Feature]bool
	Database    models.Database
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user aborts a prompt or the process
	// is interrupted while prompting.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrInvalidAnswer is returned when a stored answer cannot be decoded.
	ErrInvalidAnswer = errors.New("invalid wizard answer")
)
