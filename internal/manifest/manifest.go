// Package manifest patches the package.json written by the package manager.
//
// Only the name, type and scripts fields are touched. Every other field and
// the order of existing keys survive the read-modify-write pass.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/virtuald/go-ordered-json"

	"github.com/backendgen/backendgen/internal/defs"
	"github.com/backendgen/backendgen/internal/logging"
)

// ErrMalformed indicates the manifest is not a JSON object.
var ErrMalformed = errors.New("malformed package manifest")

// ModuleType is the package.json "type" written for the generated sources.
const ModuleType = "module"

// Script is one named entry of the scripts table.
type Script struct {
	Name    string
	Command string
}

// Scripts returns the fixed scripts table. usesORM adds the two Prisma
// entries.
func Scripts(usesORM bool) []Script {
	s := []Script{
		{Name: "dev", Command: "tsc -b && node ./dist/index.js"},
		{Name: "build", Command: "tsc"},
		{Name: "start", Command: "node dist/index.js"},
	}
	if usesORM {
		s = append(s,
			Script{Name: "prisma:generate", Command: "prisma generate"},
			Script{Name: "prisma:migrate", Command: "prisma migrate dev"},
		)
	}
	return s
}

// Fields are the values the patch writes.
type Fields struct {
	Name    string
	Type    string
	Scripts []Script
}

// Patcher rewrites package.json in place.
type Patcher struct {
	logger *slog.Logger
}

// NewPatcher returns a Patcher.
func NewPatcher(logger *slog.Logger) *Patcher {
	return &Patcher{logger: logging.OrDiscard(logger)}
}

// PatchFile reads path, applies f and writes the document back.
func (p *Patcher) PatchFile(path string, f Fields) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	out, err := Patch(data, f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := os.WriteFile(path, out, defs.FilePerm); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	p.logger.Debug("manifest patched", "path", path, "name", f.Name, "scripts", len(f.Scripts))
	return nil
}

// Patch applies f to the manifest document in data and returns the new
// document, indented with two spaces and newline-terminated.
func Patch(data []byte, f Fields) ([]byte, error) {
	doc, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	scripts := make(json.OrderedObject, 0, len(f.Scripts))
	for _, s := range f.Scripts {
		scripts = append(scripts, json.Member{Key: s.Name, Value: s.Command})
	}

	doc = set(doc, "name", f.Name)
	doc = set(doc, "type", f.Type)
	doc = set(doc, "scripts", scripts)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeObject(data []byte) (json.OrderedObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseOrderedObject()
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrMalformed)
	}

	switch obj := v.(type) {
	case json.OrderedObject:
		return obj, nil
	case *json.OrderedObject:
		return *obj, nil
	default:
		return nil, fmt.Errorf("%w: top level is %T, want object", ErrMalformed, v)
	}
}

// set replaces the value of key in place, or appends it.
func set(obj json.OrderedObject, key string, value interface{}) json.OrderedObject {
	for i := range obj {
		if obj[i].Key == key {
			obj[i].Value = value
			return obj
		}
	}
	return append(obj, json.Member{Key: key, Value: value})
}
