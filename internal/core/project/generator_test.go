package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/backendgen/backendgen/internal/manifest"
	"github.com/backendgen/backendgen/internal/pkgmgr"
	"github.com/backendgen/backendgen/internal/scaffold"
	"github.com/backendgen/backendgen/internal/template"
	"github.com/backendgen/backendgen/internal/ui"
	"github.com/backendgen/backendgen/pkg/models"
)

// fakeInstaller stands in for the package manager. Init writes the manifest
// npm would write; InitORM writes the files prisma init would write.
type fakeInstaller struct {
	calls   []string
	runtime []string
	dev     []string
	failOn  string
}

func (f *fakeInstaller) step(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return &pkgmgr.CommandError{Args: []string{"npm", name}, ExitCode: 2}
	}
	return nil
}

func (f *fakeInstaller) Init(_ context.Context, dir string) error {
	if err := f.step("init"); err != nil {
		return err
	}
	doc := `{"name":"tmp","version":"1.0.0","scripts":{"test":"exit 1"},"license":"ISC"}`
	return os.WriteFile(filepath.Join(dir, "package.json"), []byte(doc), 0o644)
}

func (f *fakeInstaller) Install(_ context.Context, _ string, runtime, dev []string) error {
	f.runtime, f.dev = runtime, dev
	return f.step("install")
}

func (f *fakeInstaller) InitORM(_ context.Context, dir string) error {
	if err := f.step("prisma-init"); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "prisma"), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "prisma", "schema.prisma"), []byte("// prisma init stub\n"), 0o644)
}

func newTestGenerator(t *testing.T, inst Installer, opts ...GeneratorOption) *Generator {
	t.Helper()
	planner, err := scaffold.NewPlanner(nil)
	if err != nil {
		t.Fatal(err)
	}
	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		t.Fatal(err)
	}
	return NewGenerator(planner, template.NewRenderer(fsys), inst, manifest.NewPatcher(nil), opts...)
}

func scenarioAnswers() models.AnswerSet {
	return models.NewAnswerSet(models.CurrentDirSentinel, map[models.Feature]bool{
		models.FeatureExpress:      true,
		models.FeatureCORS:         true,
		models.FeatureTypeScript:   true,
		models.FeatureZod:          true,
		models.FeatureBcrypt:       false,
		models.FeatureJSONWebToken: false,
	}, models.DatabasePrisma)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestGenerate_ExpressPrismaScenario(t *testing.T) {
	dir := t.TempDir()
	inst := &fakeInstaller{}
	g := newTestGenerator(t, inst)

	result, err := g.Generate(context.Background(), &Target{Dir: dir, InPlace: true}, scenarioAnswers())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, d := range []string{"src", "src/controllers", "src/routes", "src/models", "src/middlewares", "src/validators", "src/config"} {
		if info, err := os.Stat(filepath.Join(dir, d)); err != nil || !info.IsDir() {
			t.Errorf("directory %s missing", d)
		}
	}
	for _, f := range []string{
		"src/index.ts", "src/controllers/Status.ts", "src/routes/index.ts", ".env",
		"tsconfig.json", "src/config/db.ts", "prisma/schema.prisma", "src/validators/example.schema.ts",
	} {
		if !exists(filepath.Join(dir, f)) {
			t.Errorf("file %s missing", f)
		}
	}
	for _, f := range []string{"src/middlewares/Auth.ts", "src/models/UserSchema.ts"} {
		if exists(filepath.Join(dir, f)) {
			t.Errorf("file %s should not exist", f)
		}
	}

	env, _ := os.ReadFile(filepath.Join(dir, ".env"))
	if strings.Contains(string(env), "JWT") {
		t.Errorf(".env has a JWT secret without jsonwebtoken:\n%s", env)
	}
	db, _ := os.ReadFile(filepath.Join(dir, "src", "config", "db.ts"))
	if !strings.Contains(string(db), "PrismaClient") {
		t.Errorf("db.ts is not the Prisma client:\n%s", db)
	}
	schema, _ := os.ReadFile(filepath.Join(dir, "prisma", "schema.prisma"))
	if !bytes.Contains(schema, []byte("model User")) {
		t.Errorf("schema.prisma should be replaced after prisma init:\n%s", schema)
	}

	if want := []string{"init", "install", "prisma-init"}; !slices.Equal(inst.calls, want) {
		t.Errorf("installer calls = %v, want %v", inst.calls, want)
	}
	for _, pkg := range []string{"express", "cors", "zod", "@prisma/client", "cookie-parser", "dotenv"} {
		if !slices.Contains(inst.runtime, pkg) {
			t.Errorf("runtime %v missing %s", inst.runtime, pkg)
		}
	}
	wantDev := []string{"prisma", "typescript", "ts-node-dev", "@types/node", "@types/express", "@types/cors", "@types/cookie-parser"}
	if !slices.Equal(inst.dev, wantDev) {
		t.Errorf("dev = %v, want %v", inst.dev, wantDev)
	}

	var pkg struct {
		Name    string            `json:"name"`
		Type    string            `json:"type"`
		Version string            `json:"version"`
		Scripts map[string]string `json:"scripts"`
	}
	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("package.json: %v", err)
	}
	if pkg.Name != "backend-app" || pkg.Type != "module" || pkg.Version != "1.0.0" {
		t.Errorf("package.json = %+v", pkg)
	}
	if pkg.Scripts["prisma:generate"] == "" || pkg.Scripts["dev"] == "" {
		t.Errorf("scripts = %v", pkg.Scripts)
	}

	if !result.ORMInitialized || result.PackageName != "backend-app" {
		t.Errorf("result = %+v", result)
	}
	if len(result.CreatedDirs) != 7 || len(result.Written) != 8 || len(result.Skipped) != 0 {
		t.Errorf("result dirs=%d written=%d skipped=%d", len(result.CreatedDirs), len(result.Written), len(result.Skipped))
	}
}

func TestGenerate_PreserveRerunKeepsEdits(t *testing.T) {
	dir := t.TempDir()
	target := &Target{Dir: dir, InPlace: true}
	a := scenarioAnswers()

	if _, err := newTestGenerator(t, &fakeInstaller{}).Generate(context.Background(), target, a); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	index := filepath.Join(dir, "src", "index.ts")
	if err := os.WriteFile(index, []byte("// mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(filepath.Join(dir, ".env"))

	inst := &fakeInstaller{}
	result, err := newTestGenerator(t, inst).Generate(context.Background(), target, a)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	if got, _ := os.ReadFile(index); string(got) != "// mine\n" {
		t.Errorf("edit lost under preserve policy: %q", got)
	}
	if after, _ := os.ReadFile(filepath.Join(dir, ".env")); !bytes.Equal(before, after) {
		t.Error(".env changed on re-run")
	}
	if len(result.Written) != 0 || len(result.Skipped) != 8 {
		t.Errorf("written=%v skipped=%d", result.Written, len(result.Skipped))
	}
	if slices.Contains(inst.calls, "prisma-init") {
		t.Error("prisma init ran although the schema exists")
	}
	// One warning for the skipped prisma init, one for the edited entry point.
	if result.ORMInitialized || len(result.Warnings) != 2 {
		t.Fatalf("result = %+v", result)
	}
	if !strings.HasPrefix(result.Warnings[0], "src/index.ts kept; differs") {
		t.Errorf("drift warning = %q", result.Warnings[0])
	}
}

func TestGenerate_OverwriteLosesEdits(t *testing.T) {
	dir := t.TempDir()
	target := &Target{Dir: dir}
	a := scenarioAnswers()
	g := newTestGenerator(t, &fakeInstaller{}, WithWritePolicy(template.PolicyOverwrite))

	if _, err := g.Generate(context.Background(), target, a); err != nil {
		t.Fatal(err)
	}
	index := filepath.Join(dir, "src", "index.ts")
	if err := os.WriteFile(index, []byte("// mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Generate(context.Background(), target, a); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(index); string(got) == "// mine\n" {
		t.Error("edit survived overwrite policy")
	}
}

func TestGenerate_MongooseHasNoORMStep(t *testing.T) {
	dir := t.TempDir()
	inst := &fakeInstaller{}
	a := models.NewAnswerSet("api", map[models.Feature]bool{models.FeatureJSONWebToken: true}, models.DatabaseMongoose)

	result, err := newTestGenerator(t, inst).Generate(context.Background(), &Target{Dir: dir}, a)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if slices.Contains(inst.calls, "prisma-init") {
		t.Error("prisma init ran for mongoose")
	}
	if exists(filepath.Join(dir, "src", "index.ts")) {
		t.Error("entry point written without express or typescript")
	}
	for _, f := range []string{"src/models/UserSchema.ts", "src/middlewares/Auth.ts"} {
		if !exists(filepath.Join(dir, f)) {
			t.Errorf("%s missing", f)
		}
	}
	if result.PackageName != "api" {
		t.Errorf("PackageName = %q", result.PackageName)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	if bytes.Contains(data, []byte("prisma")) {
		t.Errorf("package.json has prisma scripts for mongoose:\n%s", data)
	}
}

func TestGenerate_InstallerFailureStopsRun(t *testing.T) {
	dir := t.TempDir()
	inst := &fakeInstaller{failOn: "install"}

	_, err := newTestGenerator(t, inst).Generate(context.Background(), &Target{Dir: dir}, scenarioAnswers())
	var cmdErr *pkgmgr.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.ExitCode != 2 {
		t.Fatalf("Generate error = %v, want CommandError exit 2", err)
	}
	if slices.Contains(inst.calls, "prisma-init") {
		t.Error("run continued after install failure")
	}
	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	if bytes.Contains(data, []byte(`"module"`)) {
		t.Error("manifest patched after install failure")
	}
}

func TestGenerate_TemplateErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	planner, _ := scaffold.NewPlanner(nil)
	inst := &fakeInstaller{}
	g := NewGenerator(planner, template.NewRenderer(fstest.MapFS{}), inst, manifest.NewPatcher(nil))

	_, err := g.Generate(context.Background(), &Target{Dir: dir}, scenarioAnswers())
	if !errors.Is(err, template.ErrTemplateNotFound) {
		t.Fatalf("Generate error = %v, want ErrTemplateNotFound", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("target has %d entries after a template error", len(entries))
	}
	if len(inst.calls) != 0 {
		t.Errorf("installer called: %v", inst.calls)
	}
}

func plainProgress(out *bytes.Buffer) ui.Progress {
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)
	return ui.NewProgress(ui.NewTheme(ui.ThemeConfig{NoColor: true, Mode: "dark"}), hm, out)
}

func TestGenerate_ReportsProgress(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	if _, err := newTestGenerator(t, &fakeInstaller{}, WithProgress(plainProgress(&out))).Generate(context.Background(), &Target{Dir: dir}, scenarioAnswers()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out.String(), "\n")
	order := []string{
		"[1/7] src/index.ts",
		"✓ 7 files: 7 written, 0 kept",
		"○ Creating package.json",
		"✓ Creating package.json",
		"✓ Installing",
		"✓ Configuring package.json",
		"○ Initializing prisma",
		"✓ Initializing prisma",
		"[1/1] prisma/schema.prisma",
		"✓ 1 files: 1 written, 0 kept",
	}
	next := 0
	for _, line := range lines {
		if next < len(order) && strings.HasPrefix(line, order[next]) {
			next++
		}
	}
	if next != len(order) {
		t.Errorf("progress output missing %q (in order):\n%s", order[next], out.String())
	}
}

func TestGenerate_ReportsKeptFiles(t *testing.T) {
	dir := t.TempDir()
	target := &Target{Dir: dir}
	if _, err := newTestGenerator(t, &fakeInstaller{}).Generate(context.Background(), target, scenarioAnswers()); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if _, err := newTestGenerator(t, &fakeInstaller{}, WithProgress(plainProgress(&out))).Generate(context.Background(), target, scenarioAnswers()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"[1/7] src/index.ts (kept)",
		"✓ 7 files: 0 written, 7 kept",
		"[1/1] prisma/schema.prisma (kept)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("progress output missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "Initializing prisma") {
		t.Errorf("prisma init reported on a re-run:\n%s", out.String())
	}
}

func TestGenerate_ReportsFailedStep(t *testing.T) {
	var out bytes.Buffer
	inst := &fakeInstaller{failOn: "install"}

	_, err := newTestGenerator(t, inst, WithProgress(plainProgress(&out))).Generate(context.Background(), &Target{Dir: t.TempDir()}, scenarioAnswers())
	if err == nil {
		t.Fatal("expected install error")
	}
	if !strings.Contains(out.String(), "✗ Installing") {
		t.Errorf("failed step not reported:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Configuring package.json") {
		t.Errorf("manifest step ran after a failed install:\n%s", out.String())
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inst := &fakeInstaller{}

	_, err := newTestGenerator(t, inst).Generate(ctx, &Target{Dir: t.TempDir()}, scenarioAnswers())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate error = %v, want context.Canceled", err)
	}
	if len(inst.calls) != 0 {
		t.Errorf("installer called: %v", inst.calls)
	}
}
