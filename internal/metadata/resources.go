package metadata

import (
	"path/filepath"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/relocate"
)

// resourceCategories are the fixed top-level resource directories that may
// contain one subdirectory per project id.
var resourceCategories = []string{"assets", "data"}

// RenameResourceDirs renames <category>/<oldID> to <category>/<newID> under
// resourceRoot for each resource category, preserving nested content.
// Returns the old paths that were renamed. No-op when the id is unchanged.
func RenameResourceDirs(fsys filesystem.FileSystem, resourceRoot, oldID, newID string) ([]string, error) {
	if oldID == newID {
		return nil, nil
	}

	var renamed []string
	for _, category := range resourceCategories {
		oldDir := filepath.Join(resourceRoot, category, oldID)
		if !fsys.Exists(oldDir) {
			continue
		}

		newDir := filepath.Join(resourceRoot, category, newID)
		if err := relocate.MoveTree(fsys, oldDir, newDir); err != nil {
			return renamed, err
		}
		renamed = append(renamed, oldDir)
	}

	return renamed, nil
}
