package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fernvale/modremap/internal/catalog"
	"github.com/fernvale/modremap/internal/filesystem"
)

// CatalogCommand shows the resolvable library versions from the manifest.
type CatalogCommand struct {
	fs filesystem.FileSystem
}

// NewCatalogCommand creates a new catalog command
func NewCatalogCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &CatalogCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List known libraries and their latest versions",
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().Bool("refresh", false, "Bypass the cached manifest and fetch a fresh one")

	return cobraCmd
}

// Run executes the catalog command
func (c *CatalogCommand) Run(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	env, err := resolveEnvironment(c.fs)
	if err != nil {
		return err
	}

	url := catalog.DefaultURL
	if env.Config != nil && env.Config.CatalogURL != "" {
		url = env.Config.CatalogURL
	}

	client := catalog.NewClient(c.fs, url, filepath.Join(env.Project.StateDir(), "catalog.json"))
	manifest, source, err := client.Resolve(cmd.Context(), refresh)
	if err != nil {
		return fmt.Errorf("failed to resolve version manifest: %w", err)
	}

	fmt.Printf("📚 Version manifest (%s)\n\n", source)
	for _, library := range manifest.Libraries {
		latest, ok := manifest.Latest(library.Name)
		if !ok {
			color.Yellow("  %s: no versions published", library.Name)
			continue
		}
		fmt.Printf("  %s (%s): %s\n", library.Name, library.ModID, color.GreenString(latest))
	}

	return nil
}
