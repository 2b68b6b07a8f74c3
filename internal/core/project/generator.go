package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/backendgen/backendgen/internal/defs"
	"github.com/backendgen/backendgen/internal/logging"
	"github.com/backendgen/backendgen/internal/manifest"
	"github.com/backendgen/backendgen/internal/scaffold"
	"github.com/backendgen/backendgen/internal/template"
	"github.com/backendgen/backendgen/internal/ui"
	"github.com/backendgen/backendgen/pkg/models"
)

// Planner computes the scaffold for an answer set.
type Planner interface {
	Plan(a models.AnswerSet) (*scaffold.Plan, error)
}

// Installer runs the package-manager steps.
type Installer interface {
	Init(ctx context.Context, dir string) error
	Install(ctx context.Context, dir string, runtime, dev []string) error
	InitORM(ctx context.Context, dir string) error
}

// ManifestPatcher rewrites package.json.
type ManifestPatcher interface {
	PatchFile(path string, f manifest.Fields) error
}

// Result summarises a scaffold run.
type Result struct {
	Dir         string
	PackageName string
	CreatedDirs []string
	Written     []string
	Skipped     []string
	Runtime     []string
	Dev         []string
	// ORMInitialized is true when the ORM init command ran in this run.
	ORMInitialized bool
	Warnings       []string
}

// Generator runs one scaffold: plan, directories, source files, install,
// manifest patch, ORM init, ORM-owned files. Steps run strictly in that
// order and the first error ends the run with no rollback.
type Generator struct {
	planner   Planner
	renderer  template.Renderer
	installer Installer
	patcher   ManifestPatcher
	policy    template.WritePolicy
	progress  ui.Progress
	logger    *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithWritePolicy sets the policy for generated files. Default PolicyPreserve.
func WithWritePolicy(p template.WritePolicy) GeneratorOption {
	return func(g *Generator) { g.policy = p }
}

// WithProgress reports file emission, package-manager steps and manifest
// patching through p. Default ui.Discard().
func WithProgress(p ui.Progress) GeneratorOption {
	return func(g *Generator) { g.progress = p }
}

// WithLogger sets the generator's logger.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator wires a Generator.
func NewGenerator(planner Planner, renderer template.Renderer, installer Installer, patcher ManifestPatcher, opts ...GeneratorOption) *Generator {
	g := &Generator{
		planner:   planner,
		renderer:  renderer,
		installer: installer,
		patcher:   patcher,
		policy:    template.PolicyPreserve,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.OrDiscard(g.logger)
	if g.progress == nil {
		g.progress = ui.Discard()
	}
	return g
}

// @MX:ANCHOR: [AUTO] Generate is the single orchestration path of a scaffold run.
// @MX:REASON: [AUTO] fan_in=3, called from the root command, generator tests and CLI tests
// Generate scaffolds a into target.Dir.
func (g *Generator) Generate(ctx context.Context, target *Target, a models.AnswerSet) (*Result, error) {
	plan, err := g.planner.Plan(a)
	if err != nil {
		return nil, fmt.Errorf("plan scaffold: %w", err)
	}

	result := &Result{
		Dir:         target.Dir,
		PackageName: PackageName(a.ProjectName()),
		Runtime:     plan.Runtime,
		Dev:         plan.Dev,
	}
	g.logger.Info("generating project",
		"dir", target.Dir,
		"package", result.PackageName,
		"database", a.Database(),
		"files", len(plan.Files),
		"policy", g.policy,
	)

	tc := template.NewTemplateContext(template.WithAnswers(a))

	// Render everything before touching the disk so a template error leaves
	// the target untouched.
	sources, err := scaffold.Render(g.renderer, tc, plan.FilesIn(scaffold.StageSource))
	if err != nil {
		return nil, err
	}
	postInstall, err := scaffold.Render(g.renderer, tc, plan.FilesIn(scaffold.StagePostInstall))
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.createDirs(target.Dir, plan.Dirs, result); err != nil {
		return result, err
	}

	if err := g.deploy(ctx, target.Dir, g.policy, sources, result); err != nil {
		return result, err
	}

	err = g.step("Creating "+defs.PackageJSON, func() error {
		return g.installer.Init(ctx, target.Dir)
	})
	if err != nil {
		return result, fmt.Errorf("initialize package manifest: %w", err)
	}
	err = g.step(fmt.Sprintf("Installing %d dependencies, %d dev dependencies", len(plan.Runtime), len(plan.Dev)), func() error {
		return g.installer.Install(ctx, target.Dir, plan.Runtime, plan.Dev)
	})
	if err != nil {
		return result, fmt.Errorf("install dependencies: %w", err)
	}

	if err := g.patchManifest(target.Dir, a); err != nil {
		return result, err
	}

	if a.Database().UsesORM() {
		if err := g.initORM(ctx, target.Dir, postInstall, result); err != nil {
			return result, err
		}
	} else if err := g.deploy(ctx, target.Dir, g.policy, postInstall, result); err != nil {
		return result, err
	}

	g.logger.Info("project generated",
		"dirs", len(result.CreatedDirs),
		"written", len(result.Written),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

func (g *Generator) createDirs(root string, dirs []string, result *Result) error {
	for _, dir := range dirs {
		path := filepath.Join(root, filepath.FromSlash(dir))
		if err := os.MkdirAll(path, defs.DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, dir)
	}
	return nil
}

func (g *Generator) deploy(ctx context.Context, root string, policy template.WritePolicy, files []template.File, result *Result) error {
	if len(files) == 0 {
		return nil
	}

	tracker := g.progress.Files(len(files))
	d := template.NewDeployer(policy,
		template.WithLogger(g.logger),
		template.WithObserver(tracker.Record),
	)

	res, err := d.Deploy(ctx, root, files)
	tally := tracker.Done()
	g.logger.Debug("files deployed", "written", tally.Written, "kept", tally.Kept, "total", tally.Total)
	if res != nil {
		result.Written = append(result.Written, res.Written...)
		result.Skipped = append(result.Skipped, res.Skipped...)
		for _, dr := range res.Drift {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s kept; differs from the generated version (+%d -%d lines)", dr.Path, dr.Added, dr.Removed))
		}
	}
	if err != nil {
		return fmt.Errorf("write files: %w", err)
	}
	return nil
}

// step runs fn, which drives a child process, under a progress step.
func (g *Generator) step(title string, fn func() error) error {
	task := g.progress.Step(title)
	err := fn()
	task.Done(err)
	return err
}

func (g *Generator) patchManifest(root string, a models.AnswerSet) error {
	task := g.progress.Spin("Configuring " + defs.PackageJSON)
	fields := manifest.Fields{
		Name:    PackageName(a.ProjectName()),
		Type:    manifest.ModuleType,
		Scripts: manifest.Scripts(a.Database().UsesORM()),
	}
	err := g.patcher.PatchFile(filepath.Join(root, defs.PackageJSON), fields)
	task.Done(err)
	if err != nil {
		return fmt.Errorf("configure %s: %w", defs.PackageJSON, err)
	}
	return nil
}

// initORM runs the ORM init unless its schema already exists, then writes
// the ORM-owned files. Files the init command just generated are replaced
// regardless of policy; otherwise the configured policy applies.
func (g *Generator) initORM(ctx context.Context, root string, files []template.File, result *Result) error {
	schema := filepath.Join(root, filepath.FromSlash(defs.PrismaSchema))
	_, err := os.Stat(schema)
	switch {
	case err == nil:
		msg := fmt.Sprintf("%s already exists, skipped prisma init", defs.PrismaSchema)
		result.Warnings = append(result.Warnings, msg)
		g.logger.Warn("skipping ORM init", "schema", defs.PrismaSchema)
		return g.deploy(ctx, root, g.policy, files, result)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", defs.PrismaSchema, err)
	}

	err = g.step("Initializing prisma", func() error {
		return g.installer.InitORM(ctx, root)
	})
	if err != nil {
		return fmt.Errorf("initialize prisma: %w", err)
	}
	result.ORMInitialized = true
	return g.deploy(ctx, root, template.PolicyOverwrite, files, result)
}
