package scaffold

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/backendgen/backendgen/pkg/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// typesScope prefixes a package name to get its DefinitelyTyped declarations.
const typesScope = "@types/"

// PackageSet lists packages contributed by one answer.
type PackageSet struct {
	Runtime []string `yaml:"runtime"`
	Dev     []string `yaml:"dev"`
	// Types names packages whose @types/* declarations are installed as dev
	// dependencies when TypeScript is selected.
	Types []string `yaml:"types"`
}

type namedSet struct {
	Name       string `yaml:"name"`
	PackageSet `yaml:",inline"`
}

// Catalog maps answers to the packages they install.
type Catalog struct {
	Base       PackageSet `yaml:"base"`
	Features   []namedSet `yaml:"features"`
	Databases  []namedSet `yaml:"databases"`
	TypeScript PackageSet `yaml:"typescript"`
}

// ParseCatalog decodes a catalog document and checks that every feature
// and database it names is known.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	for _, f := range c.Features {
		if !models.Feature(f.Name).IsValid() {
			return nil, fmt.Errorf("%w: unknown feature %q", ErrInvalidCatalog, f.Name)
		}
	}
	for _, db := range models.AllDatabases() {
		if _, ok := c.database(db); !ok {
			return nil, fmt.Errorf("%w: no entry for database %q", ErrInvalidCatalog, db.Key())
		}
	}
	return &c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
})

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

func (c *Catalog) database(db models.Database) (PackageSet, bool) {
	for _, d := range c.Databases {
		if d.Name == db.Key() {
			return d.PackageSet, true
		}
	}
	return PackageSet{}, false
}

// Dependencies returns the runtime and dev package lists for a.
//
// Runtime: base packages, then each selected feature in catalog order, then
// the database driver or ORM client. Dev: the database's tooling, then, if
// TypeScript is selected, the compiler packages followed by @types/*
// declarations for every selected runtime package that needs them.
func (c *Catalog) Dependencies(a models.AnswerSet) (runtime, dev []string, err error) {
	dbSet, ok := c.database(a.Database())
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDatabase, a.Database())
	}

	runtime = append(runtime, c.Base.Runtime...)
	var typed []string
	for _, f := range c.Features {
		if !a.Enabled(models.Feature(f.Name)) {
			continue
		}
		runtime = append(runtime, f.Runtime...)
		dev = append(dev, f.Dev...)
		typed = append(typed, f.Types...)
	}
	typed = append(typed, c.Base.Types...)

	runtime = append(runtime, dbSet.Runtime...)
	dev = append(dev, dbSet.Dev...)

	if a.TypeScript() {
		dev = append(dev, c.TypeScript.Dev...)
		for _, pkg := range typed {
			dev = append(dev, typesScope+pkg)
		}
	}

	return dedupe(runtime), dedupe(dev), nil
}

// dedupe removes repeated names, keeping first occurrences in order.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
