package orchestrate

import (
	"fmt"
	"path/filepath"

	"github.com/fernvale/modremap/internal/detect"
	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/metadata"
	"github.com/fernvale/modremap/internal/models"
	"github.com/fernvale/modremap/internal/project"
	"github.com/fernvale/modremap/internal/relocate"
	"github.com/fernvale/modremap/internal/rewrite"
	"github.com/fernvale/modremap/internal/scan"
	"github.com/fernvale/modremap/internal/state"
)

// Orchestrator drives a full identity refactor across all modules of a
// project: source rewrites, directory relocation, descriptor and registry
// updates, and finally the entrypoint re-derivation pass.
type Orchestrator struct {
	fs      filesystem.FileSystem
	project *project.Project
	store   *state.Store
	ignore  scan.Ignore

	// OnInfo and OnWarn receive progress lines for user-facing output.
	// Both default to discarding.
	OnInfo func(format string, args ...interface{})
	OnWarn func(format string, args ...interface{})
}

func New(fsys filesystem.FileSystem, proj *project.Project) *Orchestrator {
	return &Orchestrator{
		fs:      fsys,
		project: proj,
		store:   state.NewStore(fsys, proj.StateDir()),
		ignore:  scan.ProjectIgnore(fsys, proj.RootPath),
		OnInfo:  func(string, ...interface{}) {},
		OnWarn:  func(string, ...interface{}) {},
	}
}

// Sync reconciles the tree with the declared identity. The previously
// recorded identity wins as the source baseline; when none was recorded the
// baseline is recovered from package declarations. With no baseline at all
// the declared identity is seeded as-is, on agreement the record is merely
// refreshed, and on drift a full refactor runs.
func (o *Orchestrator) Sync(declared models.Identity) (*Report, error) {
	if !declared.IsValid() {
		return nil, fmt.Errorf("invalid identity %q", declared.String())
	}

	baseline := o.store.Load()
	if baseline == nil {
		baseline = detect.Identity(o.fs, o.project.Modules, o.ignore)
	}

	if baseline == nil {
		report := newReport(declared)
		report.Status = StatusUninitialized
		o.OnInfo("🌱 No previous identity found, recording %s as baseline", declared.String())
		if err := o.store.Save(declared); err != nil {
			return report, err
		}
		o.writeReport(report)
		return report, nil
	}

	if baseline.Equal(declared) {
		report := newReport(declared)
		report.Status = StatusInSync
		report.setSource(*baseline)
		o.OnInfo("✅ Already in sync as %s", declared.String())
		if err := o.store.Save(declared); err != nil {
			return report, err
		}
		o.writeReport(report)
		return report, nil
	}

	o.OnInfo("🔍 Drift detected: %s → %s", baseline.String(), declared.String())
	return o.Refactor(*baseline, declared)
}

// Refactor renames the project from old to new without consulting the
// recorded state, then records new as the current identity. Callers are
// responsible for making sure old actually matches the tree.
func (o *Orchestrator) Refactor(old, new models.Identity) (*Report, error) {
	if !old.IsValid() || !new.IsValid() {
		return nil, fmt.Errorf("invalid identity pair %q → %q", old.String(), new.String())
	}

	report := newReport(new)
	report.Status = StatusDrifted
	report.setSource(old)

	for _, module := range o.project.Modules {
		if err := o.refactorModule(report, module, old, new); err != nil {
			o.writeReport(report)
			return report, err
		}
	}

	if err := o.refreshEntrypoints(report, old, new); err != nil {
		o.writeReport(report)
		return report, err
	}

	if err := o.store.Save(new); err != nil {
		report.Failed = "state/save"
		o.writeReport(report)
		return report, fmt.Errorf("refactor applied but state not recorded: %w", err)
	}

	o.writeReport(report)
	o.OnInfo("🎉 Renamed %s → %s", old.String(), new.String())
	return report, nil
}

// refactorModule applies the per-module step sequence. Source rewrites run
// before relocation so package declarations are already correct when files
// land in their new directories.
func (o *Orchestrator) refactorModule(report *Report, module project.Module, old, new models.Identity) error {
	fail := func(step string, err error) error {
		report.Failed = module.Name + "/" + step
		return fmt.Errorf("module %s: %s: %w", module.Name, step, err)
	}

	for _, srcRoot := range module.SourceRoots() {
		res, err := rewrite.Sources(o.fs, srcRoot, old.PackagePath(), new.PackagePath(), o.ignore)
		if err != nil {
			return fail("rewrite", err)
		}
		report.addStep(module.Name, "rewrite", res.ChangedFiles, nil)
		if len(res.ChangedFiles) > 0 {
			o.OnInfo("✏️  %s: rewrote %d source file(s)", module.Name, len(res.ChangedFiles))
		}
	}

	for _, srcRoot := range module.SourceRoots() {
		res, err := relocate.Packages(o.fs, srcRoot, old, new)
		if err != nil {
			return fail("relocate", err)
		}
		var moved []string
		if res.Moved {
			moved = []string{filepath.Join(srcRoot, new.DirPath())}
			o.OnInfo("📦 %s: moved package directory to %s", module.Name, new.DirPath())
		}
		report.addStep(module.Name, "relocate", moved, res.Warnings)
		for _, warning := range res.Warnings {
			o.OnWarn("⚠️  %s: %s", module.Name, warning)
		}
	}

	descriptors, err := metadata.UpdateDescriptors(o.fs, module.ResourceRoot(), old, new)
	if err != nil {
		return fail("descriptors", err)
	}
	report.addStep(module.Name, "descriptors", descriptors, nil)

	services, err := metadata.UpdateServiceRegistry(o.fs, module.ResourceRoot(), old, new)
	if err != nil {
		return fail("services", err)
	}
	var serviceChanges []string
	for oldPath, newPath := range services.Renamed {
		serviceChanges = append(serviceChanges, oldPath+" → "+newPath)
	}
	serviceChanges = append(serviceChanges, services.Rewritten...)
	report.addStep(module.Name, "services", serviceChanges, nil)

	resources, err := metadata.RenameResourceDirs(o.fs, module.ResourceRoot(), old.ID, new.ID)
	if err != nil {
		return fail("resources", err)
	}
	report.addStep(module.Name, "resources", resources, nil)

	if old.ID != new.ID {
		for _, srcRoot := range module.SourceRoots() {
			constants, err := metadata.UpdateConstants(o.fs, srcRoot, new, old.ID)
			if err != nil {
				return fail("constants", err)
			}
			report.addStep(module.Name, "constants", constants, nil)
		}
	}

	return nil
}

// refreshEntrypoints re-derives the entrypoint lists from the sources after
// every module has been rewritten, then rewrites the fabric descriptor to
// match. Runs last so it sees post-rename class names.
func (o *Orchestrator) refreshEntrypoints(report *Report, old, new models.Identity) error {
	module, ok := o.project.Module(project.EntrypointModule)
	if !ok {
		return nil
	}

	eps, err := metadata.ScanEntrypoints(o.fs, module, o.ignore)
	if err != nil {
		report.Failed = module.Name + "/entrypoints"
		return fmt.Errorf("module %s: entrypoints: %w", module.Name, err)
	}

	descriptorPath := filepath.Join(module.ResourceRoot(), "fabric.mod.json")
	changed, err := metadata.UpdateEntrypointDescriptor(o.fs, descriptorPath, eps)
	if err != nil {
		report.Failed = module.Name + "/entrypoints"
		return fmt.Errorf("module %s: entrypoints: %w", module.Name, err)
	}
	if changed {
		report.addStep(module.Name, "entrypoints", []string{descriptorPath}, nil)
		o.OnInfo("🔌 %s: refreshed entrypoint lists", module.Name)
	}
	return nil
}

func (o *Orchestrator) writeReport(report *Report) {
	if err := report.write(o.fs, o.project.StateDir()); err != nil {
		o.OnWarn("⚠️  Could not write run report: %v", err)
	}
}
