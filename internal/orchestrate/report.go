package orchestrate

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
)

const runsDirName = "runs"

// Status describes what the orchestrator found when comparing the declared
// identity against the one encoded in the tree.
type Status string

const (
	// StatusUninitialized means no prior identity could be recovered and the
	// declared one was seeded as the baseline.
	StatusUninitialized Status = "uninitialized"
	// StatusInSync means the declared and encoded identities already agree.
	StatusInSync Status = "in-sync"
	// StatusDrifted means a refactor was performed to close the gap.
	StatusDrifted Status = "drifted"
)

// StepResult records the outcome of a single refactoring step within one
// module, so a partially applied run can be diagnosed after the fact.
type StepResult struct {
	Module   string   `json:"module"`
	Step     string   `json:"step"`
	Changed  []string `json:"changed,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Report is the persisted record of a single orchestrator run.
type Report struct {
	RunID      string       `json:"runId"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Status     Status       `json:"status"`
	OldGroup   string       `json:"oldGroup,omitempty"`
	OldID      string       `json:"oldId,omitempty"`
	NewGroup   string       `json:"newGroup"`
	NewID      string       `json:"newId"`
	Steps      []StepResult `json:"steps,omitempty"`
	Failed     string       `json:"failed,omitempty"`
}

func newReport(target models.Identity) *Report {
	runID, err := newRunID()
	if err != nil {
		runID = fmt.Sprintf("run_%d", time.Now().UnixNano())
	}
	return &Report{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
		NewGroup:  target.Group,
		NewID:     target.ID,
	}
}

func (r *Report) setSource(old models.Identity) {
	r.OldGroup = old.Group
	r.OldID = old.ID
}

func (r *Report) addStep(module, step string, changed, warnings []string) {
	if len(changed) == 0 && len(warnings) == 0 {
		return
	}
	r.Steps = append(r.Steps, StepResult{
		Module:   module,
		Step:     step,
		Changed:  changed,
		Warnings: warnings,
	})
}

// write persists the report under <stateDir>/runs/<runId>.json. Failures are
// returned but callers treat them as non-fatal: the refactor itself already
// happened.
func (r *Report) write(fs filesystem.FileSystem, stateDir string) error {
	r.FinishedAt = time.Now().UTC()

	runsDir := filepath.Join(stateDir, runsDirName)
	if err := fs.MkdirAll(runsDir, 0755); err != nil {
		return fmt.Errorf("failed to create runs directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	path := filepath.Join(runsDir, r.RunID+".json")
	if err := fs.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}
