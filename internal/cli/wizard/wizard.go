package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/backendgen/backendgen/pkg/models"
)

// PromptFunc asks a single question and stores the answer in value, which
// holds the question's default on entry. Confirm answers are "true" or "false".
type PromptFunc func(ctx context.Context, q Question, value *string) error

// Wizard asks questions one at a time. Each question runs as its own
// huh.Form so a long list never shares a scrolled viewport.
type Wizard struct {
	theme      *huh.Theme
	accessible bool
	input      io.Reader
	output     io.Writer
	prompt     PromptFunc
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithAccessible switches huh to its line-based accessible mode.
func WithAccessible(on bool) WizardOption {
	return func(w *Wizard) { w.accessible = on }
}

// WithIO sets the streams forms read from and render to.
func WithIO(in io.Reader, out io.Writer) WizardOption {
	return func(w *Wizard) {
		w.input = in
		w.output = out
	}
}

// WithNoColor uses the unstyled huh theme.
func WithNoColor(on bool) WizardOption {
	return func(w *Wizard) { w.theme = newWizardTheme(on) }
}

// WithPrompt replaces the huh prompt, mainly for tests.
func WithPrompt(p PromptFunc) WizardOption {
	return func(w *Wizard) { w.prompt = p }
}

// New creates a Wizard with the default theme.
func New(opts ...WizardOption) *Wizard {
	w := &Wizard{theme: newWizardTheme(false)}
	for _, opt := range opts {
		opt(w)
	}
	if w.prompt == nil {
		w.prompt = w.runForm
	}
	return w
}

// AskProjectName asks for the project name.
func (w *Wizard) AskProjectName(ctx context.Context) (string, error) {
	result, err := w.Ask(ctx, []Question{ProjectNameQuestion()})
	if err != nil {
		return "", err
	}
	return result.ProjectName, nil
}

// AskStack asks the technology questions and combines them with name.
func (w *Wizard) AskStack(ctx context.Context, name string) (models.AnswerSet, error) {
	result, err := w.Ask(ctx, StackQuestions())
	if err != nil {
		return models.AnswerSet{}, err
	}
	result.ProjectName = name
	return result.AnswerSet(), nil
}

// Confirm asks a yes/no question. It satisfies project.Confirmer.
func (w *Wizard) Confirm(ctx context.Context, title string, defaultValue bool) (bool, error) {
	value := strconv.FormatBool(defaultValue)
	q := Question{ID: "confirm", Type: QuestionTypeConfirm, Title: title, Default: value}
	if err := w.ask(ctx, q, &value); err != nil {
		return false, err
	}
	return strconv.ParseBool(value)
}

// Ask runs questions in order and collects the answers.
func (w *Wizard) Ask(ctx context.Context, questions []Question) (*WizardResult, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &WizardResult{
		Features: make(map[models.Feature]bool),
		Database: models.DatabasePrisma,
	}
	for _, q := range questions {
		value := q.Default
		if err := w.ask(ctx, q, &value); err != nil {
			return nil, err
		}
		if err := saveAnswer(q, value, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (w *Wizard) ask(ctx context.Context, q Question, value *string) error {
	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}
	err := w.prompt(ctx, q, value)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return ErrCancelled
	default:
		return fmt.Errorf("wizard error: %w", err)
	}
}

// runForm is the default PromptFunc.
func (w *Wizard) runForm(ctx context.Context, q Question, value *string) error {
	var (
		field huh.Field
		on    bool
	)
	switch q.Type {
	case QuestionTypeConfirm:
		on, _ = strconv.ParseBool(*value)
		field = huh.NewConfirm().
			Title(q.Title).
			Description(q.Description).
			Affirmative("Yes").
			Negative("No").
			Value(&on)
	case QuestionTypeSelect:
		field = buildSelectField(q, value)
	default:
		field = buildInputField(q, value)
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(w.theme).
		WithAccessible(w.accessible).
		WithShowHelp(false)
	if w.input != nil {
		form = form.WithInput(w.input)
	}
	if w.output != nil {
		form = form.WithOutput(w.output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	switch q.Type {
	case QuestionTypeConfirm:
		*value = strconv.FormatBool(on)
	case QuestionTypeInput:
		*value = withDefault(*value, q.Default)
	}
	return nil
}

func buildSelectField(q Question, value *string) *huh.Select[string] {
	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	return huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(value)
}

func buildInputField(q Question, value *string) *huh.Input {
	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(value)

	if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}

	required := q.Required
	defVal := q.Default
	validate := q.Validate
	return inp.Validate(func(val string) error {
		v := withDefault(val, defVal)
		if required && v == "" {
			return errors.New("this field is required")
		}
		if validate != nil {
			return validate(v)
		}
		return nil
	})
}

func withDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// saveAnswer stores a raw answer in the result.
func saveAnswer(q Question, value string, result *WizardResult) error {
	switch q.ID {
	case IDProjectName:
		v := withDefault(value, q.Default)
		if q.Validate != nil {
			if err := q.Validate(v); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidAnswer, q.ID, err)
			}
		}
		result.ProjectName = v
	case IDDatabase:
		db := models.Database(value)
		if !db.IsValid() {
			return fmt.Errorf("%w: database %q", ErrInvalidAnswer, value)
		}
		result.Database = db
	default:
		f := models.Feature(q.ID)
		if !f.IsValid() {
			return fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, q.ID)
		}
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %q", ErrInvalidAnswer, q.ID, value)
		}
		result.Features[f] = on
	}
	return nil
}

// AnswerSet converts the collected answers.
func (r *WizardResult) AnswerSet() models.AnswerSet {
	return models.NewAnswerSet(r.ProjectName, r.Features, r.Database)
}
