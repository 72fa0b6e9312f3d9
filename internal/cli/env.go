package cli

import (
	"fmt"

	"github.com/fernvale/modremap/internal/config"
	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/orchestrate"
	"github.com/fernvale/modremap/internal/project"
	"github.com/fernvale/modremap/internal/tui"
)

// environment bundles the resolved project and its configuration for
// commands that operate on a project tree.
type environment struct {
	Project *project.Project
	Config  *config.Properties
}

func resolveEnvironment(fs filesystem.FileSystem) (*environment, error) {
	proj, err := project.Detect(fs)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(fs, proj.RootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project configuration: %w", err)
	}

	return &environment{Project: proj, Config: cfg}, nil
}

func newOrchestrator(fs filesystem.FileSystem, proj *project.Project) *orchestrate.Orchestrator {
	o := orchestrate.New(fs, proj)
	o.OnInfo = func(format string, args ...interface{}) {
		fmt.Printf(format+"\n", args...)
	}
	o.OnWarn = func(format string, args ...interface{}) {
		fmt.Println(tui.WarnStyle.Render(fmt.Sprintf(format, args...)))
	}
	return o
}
