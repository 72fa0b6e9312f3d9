package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fernvale/modremap/internal/catalog"
	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/gen"
	"github.com/fernvale/modremap/internal/state"
)

// GenCommand groups the generators.
type GenCommand struct {
	fs filesystem.FileSystem
}

// NewGenCommand creates the gen command group
func NewGenCommand(fs filesystem.FileSystem) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate descriptor fragments",
	}

	cobraCmd.AddCommand(newGenDepsCommand(fs))

	return cobraCmd
}

func newGenDepsCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &GenCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "deps",
		Short: "Generate a dependency block pinned to the latest known versions",
		RunE:  cmd.RunDeps,
	}

	cobraCmd.Flags().StringP("format", "f", gen.FormatFabric, "Output format: fabric or forge")

	return cobraCmd
}

// RunDeps executes the gen deps command
func (c *GenCommand) RunDeps(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	env, err := resolveEnvironment(c.fs)
	if err != nil {
		return err
	}

	modID, err := c.resolveModID(env)
	if err != nil {
		return err
	}

	url := catalog.DefaultURL
	if env.Config != nil && env.Config.CatalogURL != "" {
		url = env.Config.CatalogURL
	}

	client := catalog.NewClient(c.fs, url, filepath.Join(env.Project.StateDir(), "catalog.json"))
	manifest, _, err := client.Resolve(cmd.Context(), false)
	if err != nil {
		return fmt.Errorf("failed to resolve version manifest: %w", err)
	}

	deps, err := gen.BuildDependencies(manifest, format)
	if err != nil {
		return err
	}

	rendered, err := gen.RenderDeps(format, modID, deps)
	if err != nil {
		return err
	}

	fmt.Print(rendered)
	return nil
}

func (c *GenCommand) resolveModID(env *environment) (string, error) {
	if env.Config != nil {
		if identity, ok := env.Config.Identity(); ok {
			return identity.ID, nil
		}
	}
	if recorded := state.NewStore(c.fs, env.Project.StateDir()).Load(); recorded != nil {
		return recorded.ID, nil
	}
	return "", fmt.Errorf("mod id unknown: declare group/id in gradle.properties")
}
