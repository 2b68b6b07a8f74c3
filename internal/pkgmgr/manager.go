package pkgmgr

import (
	"fmt"
	"slices"
	"strings"
)

// Manager is the command table for one Node package manager.
type Manager struct {
	Name string
	// Init creates package.json non-interactively.
	Init []string
	// Add installs packages as runtime dependencies.
	Add []string
	// DevFlag marks an Add invocation as development-only.
	DevFlag string
	// Exec runs a binary from the installed dependencies.
	Exec []string
}

var managers = []Manager{
	{
		Name:    "npm",
		Init:    []string{"npm", "init", "-y"},
		Add:     []string{"npm", "install"},
		DevFlag: "-D",
		Exec:    []string{"npx"},
	},
	{
		Name:    "pnpm",
		Init:    []string{"pnpm", "init"},
		Add:     []string{"pnpm", "add"},
		DevFlag: "-D",
		Exec:    []string{"pnpm", "exec"},
	},
	{
		Name:    "yarn",
		Init:    []string{"yarn", "init", "-y"},
		Add:     []string{"yarn", "add"},
		DevFlag: "-D",
		Exec:    []string{"yarn"},
	},
}

// Names lists the supported package managers, default first.
func Names() []string {
	out := make([]string, 0, len(managers))
	for _, m := range managers {
		out = append(out, m.Name)
	}
	return out
}

// Lookup returns the command table for name. The empty name selects npm.
func Lookup(name string) (Manager, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return managers[0], nil
	}
	i := slices.IndexFunc(managers, func(m Manager) bool { return m.Name == name })
	if i < 0 {
		return Manager{}, fmt.Errorf("%w: %q", ErrUnknownManager, name)
	}
	return managers[i], nil
}

// InitCommand returns the argv that creates package.json.
func (m Manager) InitCommand() []string {
	return slices.Clone(m.Init)
}

// AddCommand returns the argv installing pkgs, flagged development-only when dev is true.
func (m Manager) AddCommand(dev bool, pkgs ...string) []string {
	argv := slices.Clone(m.Add)
	if dev {
		argv = append(argv, m.DevFlag)
	}
	return append(argv, pkgs...)
}

// ExecCommand returns the argv running bin with args.
func (m Manager) ExecCommand(bin string, args ...string) []string {
	argv := append(slices.Clone(m.Exec), bin)
	return append(argv, args...)
}
