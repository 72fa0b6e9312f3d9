package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernvale/modremap/internal/detect"
	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
	"github.com/fernvale/modremap/internal/scan"
	"github.com/fernvale/modremap/internal/state"
	"github.com/fernvale/modremap/internal/tui"
)

// RemapCommand renames the project to an explicitly given identity,
// bypassing the declared configuration.
type RemapCommand struct {
	fs filesystem.FileSystem
}

// NewRemapCommand creates a new remap command
func NewRemapCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &RemapCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "remap",
		Short: "Rename the project to an explicit group/id",
		Long: `Performs a full rename to the given target identity. The source
identity defaults to the recorded one (or, failing that, the one
recovered from package declarations) and can be overridden explicitly.`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("group", "g", "", "Target group, e.g. com.example (required)")
	cobraCmd.Flags().StringP("id", "i", "", "Target mod id (required)")
	cobraCmd.Flags().String("old-group", "", "Source group (defaults to the recorded identity)")
	cobraCmd.Flags().String("old-id", "", "Source mod id (defaults to the recorded identity)")
	cobraCmd.Flags().BoolP("yes", "y", false, "Apply without asking for confirmation")

	_ = cobraCmd.MarkFlagRequired("group")
	_ = cobraCmd.MarkFlagRequired("id")

	return cobraCmd
}

// Run executes the remap command
func (c *RemapCommand) Run(cmd *cobra.Command, args []string) error {
	group, _ := cmd.Flags().GetString("group")
	id, _ := cmd.Flags().GetString("id")
	oldGroup, _ := cmd.Flags().GetString("old-group")
	oldID, _ := cmd.Flags().GetString("old-id")
	yes, _ := cmd.Flags().GetBool("yes")

	target := models.NewIdentity(group, id)
	if !target.IsValid() {
		return fmt.Errorf("invalid target identity %q", target.String())
	}

	env, err := resolveEnvironment(c.fs)
	if err != nil {
		return err
	}

	source, err := c.resolveSource(env, oldGroup, oldID)
	if err != nil {
		return err
	}

	if source.Equal(target) {
		fmt.Printf("✅ Already named %s, nothing to do\n", target.String())
		return nil
	}

	if !yes {
		confirmed, err := tui.ConfirmRename(source.String(), target.String())
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("🚫 Cancelled")
			return nil
		}
	}

	fmt.Printf("🔄 Remapping %s → %s\n\n", source.String(), target.String())

	o := newOrchestrator(c.fs, env.Project)
	if _, err := o.Refactor(source, target); err != nil {
		return fmt.Errorf("remap failed: %w", err)
	}

	return nil
}

// resolveSource determines the identity currently encoded in the tree:
// explicit flags win, then the recorded state, then package declarations,
// then the identity declared in gradle.properties.
func (c *RemapCommand) resolveSource(env *environment, oldGroup, oldID string) (models.Identity, error) {
	if oldGroup != "" || oldID != "" {
		source := models.NewIdentity(oldGroup, oldID)
		if !source.IsValid() {
			return models.Identity{}, fmt.Errorf("both --old-group and --old-id must be given")
		}
		return source, nil
	}

	if recorded := state.NewStore(c.fs, env.Project.StateDir()).Load(); recorded != nil {
		return *recorded, nil
	}

	ignore := scan.ProjectIgnore(c.fs, env.Project.RootPath)
	if detected := detect.Identity(c.fs, env.Project.Modules, ignore); detected != nil {
		return *detected, nil
	}

	if env.Config != nil {
		if declared, ok := env.Config.Identity(); ok {
			return declared, nil
		}
	}

	return models.Identity{}, fmt.Errorf("current identity unknown: pass --old-group and --old-id")
}
