package metadata

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
)

// The fixed-name constants file, looked up at the new package path, and
// the identifier constants whose value carries the project id.
var (
	constantsFileNames = []string{"Constants.java", "Constants.kt"}
	constantKeys       = []string{"MOD_ID", "MODID"}
)

// UpdateConstants rewrites the old id to the new one inside the constants
// file, but only where it appears as the value of one of the recognized
// identifier constants. An exact-key match keeps unrelated string literals
// that happen to equal the old id untouched.
func UpdateConstants(fsys filesystem.FileSystem, srcRoot string, new models.Identity, oldID string) ([]string, error) {
	if oldID == new.ID {
		return nil, nil
	}

	re := constantValueRegexp(oldID)

	var changed []string
	for _, name := range constantsFileNames {
		path := filepath.Join(srcRoot, new.DirPath(), name)
		if !fsys.Exists(path) {
			continue
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return changed, fmt.Errorf("failed to read %s: %w", path, err)
		}

		content := re.ReplaceAllString(string(data), "${1}"+new.ID+"${2}")
		if content == string(data) {
			continue
		}

		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			return changed, fmt.Errorf("failed to write %s: %w", path, err)
		}
		changed = append(changed, path)
	}

	return changed, nil
}

func constantValueRegexp(oldID string) *regexp.Regexp {
	keys := ""
	for i, key := range constantKeys {
		if i > 0 {
			keys += "|"
		}
		keys += key
	}
	return regexp.MustCompile(`(\b(?:` + keys + `)\s*=\s*")` + regexp.QuoteMeta(oldID) + `(")`)
}
