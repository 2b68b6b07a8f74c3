package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/backendgen/backendgen/internal/defs"
	"github.com/backendgen/backendgen/internal/logging"
	"github.com/backendgen/backendgen/pkg/models"
)

// NonEmptyPrompt is the question asked before scaffolding into a directory
// that already has entries.
const NonEmptyPrompt = "Directory is not empty. Continue?"

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, title string, defaultValue bool) (bool, error)
}

// Target is the resolved destination of a scaffold run.
type Target struct {
	// Dir is the absolute project root. All later steps address files
	// relative to it; the process working directory is never changed.
	Dir string
	// InPlace is true when the project name was the current-directory sentinel.
	InPlace bool
	// Created is true when Dir did not exist before resolution.
	Created bool
	// NonEmpty is true when Dir had entries and the user chose to continue.
	NonEmpty bool
}

// Resolver turns a project name into a Target.
type Resolver struct {
	confirmer Confirmer
	logger    *slog.Logger
}

// NewResolver creates a Resolver that asks confirmer before using a
// non-empty directory.
func NewResolver(confirmer Confirmer, logger *slog.Logger) *Resolver {
	return &Resolver{confirmer: confirmer, logger: logging.OrDiscard(logger)}
}

// Resolve maps name onto cwd, creating the directory if needed. When the
// directory already has entries the user is asked to confirm; a "no"
// returns ErrDeclined.
func (r *Resolver) Resolve(ctx context.Context, cwd, name string) (*Target, error) {
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	t := &Target{Dir: absCwd, InPlace: name == models.CurrentDirSentinel}
	if !t.InPlace {
		t.Dir = filepath.Join(absCwd, filepath.FromSlash(name))
	}

	info, err := os.Stat(t.Dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(t.Dir, defs.DirPerm); err != nil {
			return nil, fmt.Errorf("create project directory: %w", err)
		}
		t.Created = true
		r.logger.Debug("project directory created", "dir", t.Dir)
		return t, nil
	case err != nil:
		return nil, fmt.Errorf("stat project directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, t.Dir)
	}

	entries, err := os.ReadDir(t.Dir)
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}
	if len(entries) == 0 {
		return t, nil
	}

	r.logger.Debug("project directory not empty", "dir", t.Dir, "entries", len(entries))
	ok, err := r.confirmer.Confirm(ctx, NonEmptyPrompt, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDeclined
	}
	t.NonEmpty = true
	return t, nil
}
