package scaffold

import (
	"fmt"
	"slices"

	"github.com/backendgen/backendgen/internal/defs"
	"github.com/backendgen/backendgen/internal/template"
	"github.com/backendgen/backendgen/pkg/models"
)

// Stage orders file emission relative to the package manager.
type Stage int

const (
	// StageSource files are written before dependencies are installed.
	StageSource Stage = iota

	// StagePostInstall files are owned by a tool run after installation
	// (the ORM init) and are written once that tool has had its turn.
	StagePostInstall
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case StageSource:
		return "source"
	case StagePostInstall:
		return "post-install"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Directories is the fixed directory set created for every project.
var Directories = []string{
	"src",
	"src/controllers",
	"src/routes",
	"src/models",
	"src/middlewares",
	"src/validators",
	"src/config",
}

// PlannedFile is one entry of the file table.
type PlannedFile struct {
	// Path is slash-separated and relative to the project root.
	Path string
	// Template names the embedded template rendered for this file.
	Template string
	Stage    Stage
}

// fileRule gates a file on the answer set.
type fileRule struct {
	file PlannedFile
	when func(a models.AnswerSet) bool
}

func always(models.AnswerSet) bool { return true }

var fileRules = []fileRule{
	{
		file: PlannedFile{Path: "src/index.ts", Template: "src/index.ts.tmpl"},
		when: func(a models.AnswerSet) bool { return a.Express() || a.TypeScript() },
	},
	{
		file: PlannedFile{Path: "src/controllers/Status.ts", Template: "src/controllers/Status.ts.tmpl"},
		when: models.AnswerSet.Express,
	},
	{
		file: PlannedFile{Path: "src/routes/index.ts", Template: "src/routes/index.ts.tmpl"},
		when: models.AnswerSet.Express,
	},
	{
		file: PlannedFile{Path: "src/middlewares/Auth.ts", Template: "src/middlewares/Auth.ts.tmpl"},
		when: models.AnswerSet.JSONWebToken,
	},
	{
		file: PlannedFile{Path: defs.DotEnv, Template: "env.tmpl"},
		when: always,
	},
	{
		file: PlannedFile{Path: defs.TSConfigJSON, Template: "tsconfig.json.tmpl"},
		when: always,
	},
	{
		file: PlannedFile{Path: "src/config/db.ts", Template: "src/config/db.ts.tmpl"},
		when: always,
	},
	{
		file: PlannedFile{Path: defs.PrismaSchema, Template: "prisma/schema.prisma.tmpl", Stage: StagePostInstall},
		when: func(a models.AnswerSet) bool { return a.Database() == models.DatabasePrisma },
	},
	{
		file: PlannedFile{Path: "src/models/UserSchema.ts", Template: "src/models/UserSchema.ts.tmpl"},
		when: func(a models.AnswerSet) bool { return a.Database() == models.DatabaseMongoose },
	},
	{
		file: PlannedFile{Path: "src/validators/example.schema.ts", Template: "src/validators/example.schema.ts.tmpl"},
		when: models.AnswerSet.Zod,
	},
}

// Plan is the derived, single-use scaffold for one run.
type Plan struct {
	Answers models.AnswerSet
	Dirs    []string
	Files   []PlannedFile
	Runtime []string
	Dev     []string
}

// FilesIn returns the planned files of one stage, in table order.
func (p *Plan) FilesIn(stage Stage) []PlannedFile {
	var out []PlannedFile
	for _, f := range p.Files {
		if f.Stage == stage {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether path is planned.
func (p *Plan) Has(path string) bool {
	return slices.ContainsFunc(p.Files, func(f PlannedFile) bool { return f.Path == path })
}

// Planner builds plans from answers.
type Planner struct {
	catalog *Catalog
}

// NewPlanner returns a Planner using catalog. A nil catalog selects the
// built-in one.
func NewPlanner(catalog *Catalog) (*Planner, error) {
	if catalog == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	return &Planner{catalog: catalog}, nil
}

// Plan computes the scaffold for a. It is deterministic and touches nothing
// outside memory.
func (p *Planner) Plan(a models.AnswerSet) (*Plan, error) {
	if !a.Database().IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatabase, a.Database())
	}

	runtime, dev, err := p.catalog.Dependencies(a)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Answers: a,
		Dirs:    slices.Clone(Directories),
		Runtime: runtime,
		Dev:     dev,
	}
	for _, r := range fileRules {
		if r.when(a) {
			plan.Files = append(plan.Files, r.file)
		}
	}
	return plan, nil
}

// Render renders the given planned files with r and tc into deployable files.
func Render(r template.Renderer, tc *template.TemplateContext, files []PlannedFile) ([]template.File, error) {
	out := make([]template.File, 0, len(files))
	for _, f := range files {
		content, err := r.Render(f.Template, tc)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f.Path, err)
		}
		out = append(out, template.File{Path: f.Path, Content: content})
	}
	return out, nil
}
