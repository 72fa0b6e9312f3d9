package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernvale/modremap/internal/filesystem"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modremap",
		Short: "Keep a multi-loader mod project's identity in sync",
		Long: `A CLI tool that reconciles a mod project's declared identity
(group and id in gradle.properties) with the identity encoded in its
package declarations, directory layout, descriptors, and registries.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `modremap sync` when no subcommand is provided.
			return (&SyncCommand{fs: fs}).Run(cmd, args)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(NewSyncCommand(fs))
	rootCmd.AddCommand(NewRemapCommand(fs))
	rootCmd.AddCommand(NewCatalogCommand(fs))
	rootCmd.AddCommand(NewGenCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
