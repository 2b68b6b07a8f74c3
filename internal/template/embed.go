package template

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embeddedFS embed.FS

// EmbeddedTemplates returns the built-in project templates rooted at the
// templates directory, so names look like "src/index.ts.tmpl".
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(embeddedFS, "templates")
}
