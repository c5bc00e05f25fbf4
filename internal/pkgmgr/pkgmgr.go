// Package pkgmgr knows how each supported JavaScript package manager spells
// "add a dependency" and "run a package binary", and degrades to npm when the
// requested manager is not installed.
package pkgmgr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/weaver/fledge/generator"
)

// Manager describes one package manager's command vocabulary.
type Manager struct {
	Name string

	add    []string // Subcommand that adds runtime dependencies
	addDev []string // Subcommand that adds development dependencies
	save   []string // Flags appended after runtime dependencies
	dlx    []string // Program and args that run a package binary
	run    []string // Subcommand that runs a package.json script
}

// Add returns the step installing pkgs as runtime dependencies.
func (m Manager) Add(pkgs ...string) *generator.RunCommand {
	args := append(append(clone(m.add), pkgs...), m.save...)
	return &generator.RunCommand{Name: m.Name, Args: args}
}

// AddDev returns the step installing pkgs as development dependencies.
func (m Manager) AddDev(pkgs ...string) *generator.RunCommand {
	return &generator.RunCommand{Name: m.Name, Args: append(clone(m.addDev), pkgs...)}
}

// Exec returns the step running a package binary without installing it
// globally (pnpm dlx, npx).
func (m Manager) Exec(args ...string) *generator.RunCommand {
	return &generator.RunCommand{Name: m.dlx[0], Args: append(clone(m.dlx[1:]), args...)}
}

// RunScript returns the step running a package.json script.
func (m Manager) RunScript(script string) *generator.RunCommand {
	return &generator.RunCommand{Name: m.Name, Args: append(clone(m.run), script)}
}

func (m Manager) String() string {
	return m.Name
}

// Names of the supported managers.
const (
	NPM  = "npm"
	PNPM = "pnpm"
	Yarn = "yarn"
)

var registry = map[string]Manager{
	NPM: {
		Name:   NPM,
		add:    []string{"install"},
		addDev: []string{"install", "-D"},
		save:   []string{"--save"},
		dlx:    []string{"npx"},
		run:    []string{"run"},
	},
	PNPM: {
		Name:   PNPM,
		add:    []string{"add"},
		addDev: []string{"add", "-D"},
		dlx:    []string{"pnpm", "dlx"},
	},
	Yarn: {
		Name:   Yarn,
		add:    []string{"add"},
		addDev: []string{"add", "-D"},
		dlx:    []string{"npx"},
	},
}

// Supported returns the manager names in sorted order.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse looks a manager up by name.
func Parse(name string) (Manager, error) {
	m, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Manager{}, fmt.Errorf("unsupported package manager %q (supported: %s)", name, strings.Join(Supported(), ", "))
	}
	return m, nil
}

// LookPathFunc finds an executable on PATH; exec.LookPath satisfies it.
type LookPathFunc func(file string) (string, error)

// Fallback records a substitution made by Resolve.
type Fallback struct {
	Requested string
	Used      string
}

func (f *Fallback) String() string {
	return fmt.Sprintf("%s not found on PATH, falling back to %s", f.Requested, f.Used)
}

// Resolve returns requested when its binary is on PATH and npm otherwise.
// The returned Fallback is nil when no substitution happened. There is no
// fallback from npm itself: a missing npm surfaces when its step runs.
func Resolve(requested Manager, lookPath LookPathFunc) (Manager, *Fallback) {
	if requested.Name == NPM {
		return requested, nil
	}
	if _, err := lookPath(requested.Name); err == nil {
		return requested, nil
	}
	return registry[NPM], &Fallback{Requested: requested.Name, Used: NPM}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
