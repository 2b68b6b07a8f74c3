package project

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/backendgen/backendgen/pkg/models"
)

// FallbackPackageName is the manifest name used when scaffolding in place.
const FallbackPackageName = "backend-app"

var lower = cases.Lower(language.Und)

// ValidateProjectName checks that name is the current-directory sentinel or
// a relative path that stays inside the working directory. Nested names
// such as "apps/api" are accepted.
func ValidateProjectName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == models.CurrentDirSentinel:
		return nil
	case strings.ContainsFunc(name, unicode.IsControl):
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
	case strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || filepath.IsAbs(name):
		return fmt.Errorf("%w: %q is an absolute path", ErrInvalidName, name)
	}

	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return fmt.Errorf("%w: %q leaves the working directory", ErrInvalidName, name)
	}
	if filepath.Clean(local) == "." {
		return fmt.Errorf("%w: %q is the working directory, use %q", ErrInvalidName, name, models.CurrentDirSentinel)
	}
	return nil
}

// PackageName derives the package.json name from a project name: the last
// path element, NFC normalised, lower-cased, with whitespace runs replaced
// by "-". The current-directory sentinel maps to FallbackPackageName.
func PackageName(projectName string) string {
	name := strings.TrimSpace(projectName)
	if name == "" || name == models.CurrentDirSentinel {
		return FallbackPackageName
	}
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = lower.String(norm.NFC.String(name))
	return strings.Join(strings.Fields(name), "-")
}
