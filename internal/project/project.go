package project

import (
	"fmt"
	"path/filepath"

	"github.com/fernvale/modremap/internal/config"
	"github.com/fernvale/modremap/internal/filesystem"
)

// ModuleNames is the fixed, ordered set of recognized module directories.
// Directories outside this list are never touched.
var ModuleNames = []string{"common", "fabric", "forge", "neoforge"}

// EntrypointModule is the module whose descriptor carries entrypoint lists.
const EntrypointModule = "fabric"

// Module is one independently-built subdirectory of the project.
type Module struct {
	// Name is the canonical module name ("common", "fabric", ...)
	Name string

	// RootPath is the absolute path to the module directory
	RootPath string
}

// SourceRoots returns the module's source trees, one per source language.
// Roots that do not exist on disk are still listed; callers treat a missing
// root as empty.
func (m Module) SourceRoots() []string {
	return []string{
		filepath.Join(m.RootPath, "src", "main", "java"),
		filepath.Join(m.RootPath, "src", "main", "kotlin"),
	}
}

// ResourceRoot returns the module's resource tree.
func (m Module) ResourceRoot() string {
	return filepath.Join(m.RootPath, "src", "main", "resources")
}

// Project represents the multi-module project under one root.
type Project struct {
	fs filesystem.FileSystem

	RootPath string
	Modules  []Module
}

// New creates a Project bound to the given root without discovery.
func New(fsys filesystem.FileSystem, root string) *Project {
	p := &Project{fs: fsys, RootPath: root}
	p.loadModules()
	return p
}

// Detect walks up from the working directory to the first directory holding
// gradle.properties and loads the modules present there.
func Detect(fsys filesystem.FileSystem) (*Project, error) {
	cwd, err := fsys.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dir := cwd
	for {
		if fsys.Exists(filepath.Join(dir, config.PropertiesFileName)) {
			return New(fsys, dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("project root not found (no %s above %s)", config.PropertiesFileName, cwd)
		}
		dir = parent
	}
}

// Module returns the named module, or false if it is not present on disk.
func (p *Project) Module(name string) (Module, bool) {
	for _, m := range p.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// StateDir returns the path of the directory holding persisted tool state.
func (p *Project) StateDir() string {
	return filepath.Join(p.RootPath, ".modremap")
}

func (p *Project) loadModules() {
	for _, name := range ModuleNames {
		path := filepath.Join(p.RootPath, name)
		info, err := p.fs.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		p.Modules = append(p.Modules, Module{Name: name, RootPath: path})
	}
}
