package metadata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
	"github.com/fernvale/modremap/internal/rewrite"
)

// registryDirParts is the fixed service registry location under a module's
// resource root. Each regular file inside is named by the fully-qualified
// identifier of the service it registers.
var registryDirParts = []string{"META-INF", "services"}

// ServiceResult reports what the registry update touched.
type ServiceResult struct {
	// Renamed maps old file paths to their new ones.
	Renamed map[string]string

	// Rewritten lists files whose content changed without a rename.
	Rewritten []string
}

// UpdateServiceRegistry rewrites registry file contents and renames files
// whose own name is a fully-qualified identifier under the old package.
// Content is rewritten first; a renamed file gets the new content written
// at the new name and the old file removed, never leaving both present.
func UpdateServiceRegistry(fsys filesystem.FileSystem, resourceRoot string, old, new models.Identity) (*ServiceResult, error) {
	result := &ServiceResult{Renamed: make(map[string]string)}
	if old.Equal(new) {
		return result, nil
	}

	dir := filepath.Join(append([]string{resourceRoot}, registryDirParts...)...)
	if !fsys.Exists(dir) {
		return result, nil
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read service registry %s: %w", dir, err)
	}

	oldPkg := old.PackagePath()
	newPkg := new.PackagePath()

	for _, entry := range entries {
		if entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		content, contentChanged := rewrite.ReplaceOccurrences(string(data), oldPkg, newPkg)

		newName := entry.Name()
		if strings.HasPrefix(newName, oldPkg+".") {
			newName = newPkg + newName[len(oldPkg):]
		}

		if newName != entry.Name() {
			newPath := filepath.Join(dir, newName)
			if err := fsys.WriteFile(newPath, []byte(content), 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", newPath, err)
			}
			if err := fsys.Remove(path); err != nil {
				return nil, fmt.Errorf("failed to remove %s: %w", path, err)
			}
			result.Renamed[path] = newPath
			continue
		}

		if contentChanged {
			if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", path, err)
			}
			result.Rewritten = append(result.Rewritten, path)
		}
	}

	return result, nil
}
