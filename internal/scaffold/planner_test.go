package scaffold

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/backendgen/backendgen/internal/template"
	"github.com/backendgen/backendgen/pkg/models"
)

func newPlanner(t *testing.T) *Planner {
	t.Helper()
	p, err := NewPlanner(nil)
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	return p
}

func answerSet(name string, db models.Database, enabled ...models.Feature) models.AnswerSet {
	fs := make(map[models.Feature]bool)
	for _, f := range enabled {
		fs[f] = true
	}
	return models.NewAnswerSet(name, fs, db)
}

// everyAnswerSet enumerates all feature and database combinations.
func everyAnswerSet() []models.AnswerSet {
	features := models.AllFeatures()
	var out []models.AnswerSet
	for mask := 0; mask < 1<<len(features); mask++ {
		var enabled []models.Feature
		for i, f := range features {
			if mask&(1<<i) != 0 {
				enabled = append(enabled, f)
			}
		}
		for _, db := range models.AllDatabases() {
			out = append(out, answerSet("app", db, enabled...))
		}
	}
	return out
}

func paths(files []PlannedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestPlan_DirectoriesAreFixed(t *testing.T) {
	p := newPlanner(t)
	want := []string{
		"src", "src/controllers", "src/routes", "src/models",
		"src/middlewares", "src/validators", "src/config",
	}
	for _, a := range everyAnswerSet() {
		plan, err := p.Plan(a)
		if err != nil {
			t.Fatalf("Plan(%v): %v", a.Features(), err)
		}
		if !slices.Equal(plan.Dirs, want) {
			t.Fatalf("Dirs = %v, want %v", plan.Dirs, want)
		}
	}
}

func TestPlan_EntryPointGating(t *testing.T) {
	p := newPlanner(t)
	for _, a := range everyAnswerSet() {
		plan, err := p.Plan(a)
		if err != nil {
			t.Fatal(err)
		}
		want := a.Express() || a.TypeScript()
		if got := plan.Has("src/index.ts"); got != want {
			t.Errorf("express=%v typescript=%v: index.ts planned = %v", a.Express(), a.TypeScript(), got)
		}
	}
}

func TestPlan_DatabaseExclusivity(t *testing.T) {
	p := newPlanner(t)
	for _, a := range everyAnswerSet() {
		plan, err := p.Plan(a)
		if err != nil {
			t.Fatal(err)
		}
		prisma := plan.Has("prisma/schema.prisma")
		mongoose := plan.Has("src/models/UserSchema.ts")
		if prisma == mongoose {
			t.Fatalf("database %q: schema.prisma=%v UserSchema=%v, want exactly one", a.Database(), prisma, mongoose)
		}
		if prisma != (a.Database() == models.DatabasePrisma) {
			t.Errorf("database %q planned the wrong schema", a.Database())
		}
	}
}

func TestPlan_AlwaysPlannedFiles(t *testing.T) {
	p := newPlanner(t)
	plan, err := p.Plan(answerSet("app", models.DatabaseMongoose))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".env", "tsconfig.json", "src/config/db.ts", "src/models/UserSchema.ts"}
	if got := paths(plan.Files); !slices.Equal(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
	if !slices.Equal(plan.Runtime, []string{"cookie-parser", "dotenv", "mongoose"}) {
		t.Errorf("runtime = %v", plan.Runtime)
	}
	if len(plan.Dev) != 0 {
		t.Errorf("dev = %v, want none", plan.Dev)
	}
}

func TestPlan_ExpressPrismaScenario(t *testing.T) {
	p := newPlanner(t)
	a := answerSet(models.CurrentDirSentinel, models.DatabasePrisma,
		models.FeatureExpress, models.FeatureCORS, models.FeatureTypeScript, models.FeatureZod)

	plan, err := p.Plan(a)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	wantFiles := []string{
		"src/index.ts",
		"src/controllers/Status.ts",
		"src/routes/index.ts",
		".env",
		"tsconfig.json",
		"src/config/db.ts",
		"prisma/schema.prisma",
		"src/validators/example.schema.ts",
	}
	if got := paths(plan.Files); !slices.Equal(got, wantFiles) {
		t.Errorf("files = %v, want %v", got, wantFiles)
	}
	for _, absent := range []string{"src/middlewares/Auth.ts", "src/models/UserSchema.ts"} {
		if plan.Has(absent) {
			t.Errorf("%s should not be planned", absent)
		}
	}

	for _, pkg := range []string{"express", "cors", "zod", "@prisma/client", "cookie-parser", "dotenv"} {
		if !slices.Contains(plan.Runtime, pkg) {
			t.Errorf("runtime %v missing %s", plan.Runtime, pkg)
		}
	}
	if slices.Contains(plan.Runtime, "bcrypt") || slices.Contains(plan.Runtime, "jsonwebtoken") {
		t.Errorf("runtime %v has unselected packages", plan.Runtime)
	}

	wantDev := []string{"prisma", "typescript", "ts-node-dev", "@types/node", "@types/express", "@types/cors", "@types/cookie-parser"}
	if !slices.Equal(plan.Dev, wantDev) {
		t.Errorf("dev = %v, want %v", plan.Dev, wantDev)
	}

	if got := paths(plan.FilesIn(StagePostInstall)); !slices.Equal(got, []string{"prisma/schema.prisma"}) {
		t.Errorf("post-install files = %v", got)
	}
}

func TestPlan_TypesFollowSelectedPackages(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(answerSet("app", models.DatabaseMongoose,
		models.FeatureTypeScript, models.FeatureBcrypt, models.FeatureJSONWebToken))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"typescript", "ts-node-dev", "@types/node", "@types/bcrypt", "@types/jsonwebtoken", "@types/cookie-parser"}
	if !slices.Equal(plan.Dev, want) {
		t.Errorf("dev = %v, want %v", plan.Dev, want)
	}

	plan, err = p.Plan(answerSet("app", models.DatabaseMongoose, models.FeatureExpress, models.FeatureBcrypt))
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range plan.Dev {
		if strings.HasPrefix(d, "@types/") {
			t.Errorf("dev %v has type declarations without typescript", plan.Dev)
		}
	}
}

func TestPlan_UnknownDatabase(t *testing.T) {
	_, err := newPlanner(t).Plan(answerSet("app", models.Database("SQLite")))
	if !errors.Is(err, ErrUnknownDatabase) {
		t.Errorf("Plan error = %v, want ErrUnknownDatabase", err)
	}
}

func TestRender_EmbeddedPlan(t *testing.T) {
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		t.Fatal(err)
	}
	r := template.NewRenderer(fsys)

	for _, a := range everyAnswerSet() {
		plan, err := newPlanner(t).Plan(a)
		if err != nil {
			t.Fatal(err)
		}
		tc := template.NewTemplateContext(template.WithAnswers(a))
		files, err := Render(r, tc, plan.Files)
		if err != nil {
			t.Fatalf("Render(%v, %s): %v", a.Features(), a.Database(), err)
		}
		if len(files) != len(plan.Files) {
			t.Fatalf("rendered %d files, want %d", len(files), len(plan.Files))
		}
	}
}

func TestParseCatalog(t *testing.T) {
	t.Run("unknown_feature", func(t *testing.T) {
		doc := "features:\n  - name: graphql\n    runtime: [graphql]\n"
		if _, err := ParseCatalog([]byte(doc)); !errors.Is(err, ErrInvalidCatalog) {
			t.Errorf("error = %v, want ErrInvalidCatalog", err)
		}
	})

	t.Run("missing_database", func(t *testing.T) {
		doc := "databases:\n  - name: prisma\n    runtime: [\"@prisma/client\"]\n"
		if _, err := ParseCatalog([]byte(doc)); !errors.Is(err, ErrInvalidCatalog) {
			t.Errorf("error = %v, want ErrInvalidCatalog", err)
		}
	})

	t.Run("unknown_field", func(t *testing.T) {
		doc := "base:\n  peer: [react]\n"
		if _, err := ParseCatalog([]byte(doc)); !errors.Is(err, ErrInvalidCatalog) {
			t.Errorf("error = %v, want ErrInvalidCatalog", err)
		}
	})

	t.Run("builtin", func(t *testing.T) {
		c, err := DefaultCatalog()
		if err != nil {
			t.Fatalf("DefaultCatalog: %v", err)
		}
		if len(c.Features) == 0 {
			t.Error("built-in catalog has no features")
		}
	})
}
