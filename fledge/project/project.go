package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Info describes a JavaScript project root.
type Info struct {
	Root string

	// PackageJSON is the path to package.json, or "" when there is none.
	PackageJSON string
	Name        string

	// Dependencies merges dependencies and devDependencies.
	Dependencies map[string]string

	// PackageManager is inferred from the lockfile, "" when none exists.
	PackageManager string
	Lockfile       string
}

// Lockfiles in detection order. The first match wins.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
	{"npm-shrinkwrap.json", "npm"},
}

// Detect inspects root. A directory without package.json is not an error;
// the returned Info simply has no PackageJSON.
func Detect(root string) (*Info, error) {
	info := &Info{Root: root, Dependencies: map[string]string{}}

	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(root, lf.file)); err == nil {
			info.PackageManager = lf.manager
			info.Lockfile = lf.file
			break
		}
	}

	path := filepath.Join(root, "package.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var manifest struct {
		Name            string            `json:"name"`
		PackageManager  string            `json:"packageManager"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	info.PackageJSON = path
	info.Name = manifest.Name
	for name, version := range manifest.DevDependencies {
		info.Dependencies[name] = version
	}
	for name, version := range manifest.Dependencies {
		info.Dependencies[name] = version
	}

	// Corepack's "packageManager": "pnpm@9.1.0" beats a lockfile
	if manager := corepackManager(manifest.PackageManager); manager != "" {
		info.PackageManager = manager
	}

	return info, nil
}

// HasPackageJSON reports whether root has a package.json.
func (i *Info) HasPackageJSON() bool {
	return i.PackageJSON != ""
}

// DependsOn reports whether pkg is a direct or dev dependency.
func (i *Info) DependsOn(pkg string) bool {
	_, ok := i.Dependencies[pkg]
	return ok
}

func corepackManager(field string) string {
	name, _, _ := strings.Cut(field, "@")
	switch name {
	case "npm", "pnpm", "yarn":
		return name
	}
	return ""
}
