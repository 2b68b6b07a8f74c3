// Package cli provides the Cobra command tree and dependency wiring for the
// backendgen CLI. This file defines the Dependencies struct (Composition
// Root) that wires the domain packages together.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/backendgen/backendgen/internal/cli/wizard"
	"github.com/backendgen/backendgen/internal/config"
	"github.com/backendgen/backendgen/internal/core/project"
	"github.com/backendgen/backendgen/internal/logging"
	"github.com/backendgen/backendgen/internal/manifest"
	"github.com/backendgen/backendgen/internal/pkgmgr"
	"github.com/backendgen/backendgen/internal/scaffold"
	"github.com/backendgen/backendgen/internal/template"
	"github.com/backendgen/backendgen/internal/ui"
	"github.com/backendgen/backendgen/pkg/models"
)

// Prompter collects answers from the user.
type Prompter interface {
	project.Confirmer
	AskProjectName(ctx context.Context) (string, error)
	AskStack(ctx context.Context, name string) (models.AnswerSet, error)
}

// Dependencies holds the services used by the root command. This is the
// only place where concrete types are instantiated and wired together.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Prompter Prompter
	Runner   pkgmgr.Runner
	// Getwd returns the directory the project is resolved against.
	Getwd func() (string, error)
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// @MX:ANCHOR: [AUTO] InitDependencies is the Composition Root for the CLI
// @MX:REASON: [AUTO] fan_in=3, called from Execute, deps_test.go and root_test.go
// InitDependencies loads the configuration and wires production services.
// stdin, stdout and stderr are the streams prompts and logs use.
func InitDependencies(stdin *os.File, stdout, stderr io.Writer) error {
	cfg, err := config.NewLoader().Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(stderr, cfg.LogLevel)
	hm := ui.NewHeadlessManagerFor(stdin)
	theme := ui.NewTheme(ui.ThemeConfig{NoColor: cfg.NoColor})

	prompter := wizard.New(
		wizard.WithAccessible(cfg.Accessible || hm.IsHeadless()),
		wizard.WithNoColor(cfg.NoColor),
		wizard.WithIO(stdin, stdout),
	)

	deps = &Dependencies{
		Config:   cfg,
		Logger:   logger,
		Theme:    theme,
		Headless: hm,
		Prompter: prompter,
		Runner:   pkgmgr.NewExecRunner(logger),
		Getwd:    os.Getwd,
	}
	return nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// Resolver builds the target resolver, confirming through the prompter.
func (d *Dependencies) Resolver() *project.Resolver {
	return project.NewResolver(d.Prompter, d.Logger)
}

// Generator builds a generator that reports progress to out.
func (d *Dependencies) Generator(out io.Writer) (*project.Generator, error) {
	policy, err := template.ParseWritePolicy(d.Config.WritePolicy)
	if err != nil {
		return nil, err
	}
	manager, err := pkgmgr.Lookup(d.Config.PackageManager)
	if err != nil {
		return nil, err
	}

	planner, err := scaffold.NewPlanner(nil)
	if err != nil {
		return nil, fmt.Errorf("load dependency catalog: %w", err)
	}
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return project.NewGenerator(
		planner,
		template.NewRenderer(fsys),
		pkgmgr.NewInstaller(manager, d.Runner, d.Logger),
		manifest.NewPatcher(d.Logger),
		project.WithWritePolicy(policy),
		project.WithProgress(ui.NewProgress(d.Theme, d.Headless, out)),
		project.WithLogger(d.Logger),
	), nil
}
