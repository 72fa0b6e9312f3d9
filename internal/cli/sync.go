package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernvale/modremap/internal/filesystem"
)

// SyncCommand reconciles the tree with the identity declared in
// gradle.properties.
type SyncCommand struct {
	fs filesystem.FileSystem
}

// NewSyncCommand creates a new sync command
func NewSyncCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &SyncCommand{fs: fs}

	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the tree with the declared identity",
		Long: `Compares the group/id declared in gradle.properties against the
identity currently encoded in the tree and performs a full rename when
they have drifted apart.`,
		RunE: cmd.Run,
	}
}

// Run executes the sync command
func (c *SyncCommand) Run(cmd *cobra.Command, args []string) error {
	env, err := resolveEnvironment(c.fs)
	if err != nil {
		return err
	}

	if env.Config == nil {
		fmt.Println("⏭️  No gradle.properties found, nothing to sync")
		return nil
	}

	declared, ok := env.Config.Identity()
	if !ok {
		fmt.Println("⏭️  group/id not declared in gradle.properties, nothing to sync")
		return nil
	}

	fmt.Printf("🔄 Syncing %s\n\n", env.Project.RootPath)

	o := newOrchestrator(c.fs, env.Project)
	if _, err := o.Sync(declared); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	return nil
}
