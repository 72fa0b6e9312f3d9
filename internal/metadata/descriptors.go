// Package metadata rewrites the structured descriptor files that embed a
// project's identity: loader descriptors, mixin configs, service registry
// files, resource directories, and the source constants file.
package metadata

import (
	"fmt"
	"io/fs"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
	"github.com/fernvale/modremap/internal/rewrite"
	"github.com/fernvale/modremap/internal/scan"
)

// Recognized descriptor files: three exact names tied to the two packaging
// formats, plus the mixin config suffix.
var (
	descriptorNames    = []string{"fabric.mod.json", "mods.toml", "neoforge.mods.toml"}
	descriptorPatterns = []string{"*.mixins.json"}
)

const resourceScanDepth = 8

// IsDescriptor reports whether a file name is a recognized descriptor.
func IsDescriptor(name string) bool {
	for _, exact := range descriptorNames {
		if name == exact {
			return true
		}
	}
	for _, pattern := range descriptorPatterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// UpdateDescriptors rewrites identity occurrences in every recognized
// descriptor under resourceRoot: the old dotted package path wherever it
// appears as a whole token, and the old id where it is the value of a
// recognized id key. Returns the paths of changed files.
func UpdateDescriptors(fsys filesystem.FileSystem, resourceRoot string, old, new models.Identity) ([]string, error) {
	if old.Equal(new) {
		return nil, nil
	}

	idRes := idKeyRegexps(old.ID)

	var changed []string
	opts := scan.Options{MaxDepth: resourceScanDepth}
	err := scan.Walk(fsys, resourceRoot, opts, func(path string, entry fs.DirEntry) error {
		if entry.IsDir() || !IsDescriptor(entry.Name()) {
			return nil
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		content, pathChanged := rewrite.ReplaceOccurrences(string(data), old.PackagePath(), new.PackagePath())
		idChanged := false
		if old.ID != new.ID {
			for _, re := range idRes {
				if re.MatchString(content) {
					content = re.ReplaceAllString(content, "${1}"+new.ID+"${2}")
					idChanged = true
				}
			}
		}

		if !pathChanged && !idChanged {
			return nil
		}

		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		changed = append(changed, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return changed, nil
}

// idKeyRegexps matches the old id only as the value of a recognized id key,
// never as a bare string: "id": "x" in the JSON descriptors and modId="x"
// in the TOML ones.
func idKeyRegexps(oldID string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(oldID)
	return []*regexp.Regexp{
		regexp.MustCompile(`("id"\s*:\s*")` + quoted + `(")`),
		regexp.MustCompile(`(\bmodId\s*=\s*")` + quoted + `(")`),
	}
}
