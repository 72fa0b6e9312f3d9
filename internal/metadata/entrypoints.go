package metadata

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/project"
	"github.com/fernvale/modremap/internal/rewrite"
	"github.com/fernvale/modremap/internal/scan"
)

// The three initialization roles and the marker interfaces that declare
// them. A file implementing a marker is an entrypoint for that role.
var roleMarkers = []struct {
	Role   string
	Marker string
}{
	{"main", "ModInitializer"},
	{"client", "ClientModInitializer"},
	{"server", "DedicatedServerModInitializer"},
}

// entrypointsAnchor is the descriptor key the role arrays live under.
const entrypointsAnchor = "entrypoints"

var (
	entrypointPackageRe = regexp.MustCompile(`(?m)^\s*package\s+([A-Za-z_][A-Za-z0-9_.]*)`)
	primaryTypeRe       = regexp.MustCompile(`(?m)^\s*(?:public\s+|final\s+|abstract\s+|open\s+)*(?:class|interface|object|enum)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	anchorOpenRe        = regexp.MustCompile(`("` + entrypointsAnchor + `"\s*:\s*\{)`)
	anchorEmptyRe       = regexp.MustCompile(`"` + entrypointsAnchor + `"\s*:\s*\{\s*\}`)
)

// Entrypoints holds the fully-qualified entrypoint names per role, in
// file-scan order.
type Entrypoints struct {
	Roles map[string][]string
}

// ScanEntrypoints re-derives the entrypoint sets from a module's source
// trees. A file counts for a role when its declaration clause names the
// role's marker interface; its fully-qualified name comes from the package
// declaration and the primary type name.
func ScanEntrypoints(fsys filesystem.FileSystem, module project.Module, ignore scan.Ignore) (*Entrypoints, error) {
	eps := &Entrypoints{Roles: make(map[string][]string)}

	for _, root := range module.SourceRoots() {
		opts := scan.Options{MaxDepth: 24, Ignore: ignore.Rules, IgnoreRoot: ignore.Root}
		err := scan.Walk(fsys, root, opts, func(path string, entry fs.DirEntry) error {
			if entry.IsDir() || !scan.HasExtension(path, rewrite.SourceExtensions) {
				return nil
			}

			data, err := fsys.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			content := string(data)

			pkgMatch := entrypointPackageRe.FindStringSubmatch(content)
			typeMatch := primaryTypeRe.FindStringSubmatch(content)
			if pkgMatch == nil || typeMatch == nil {
				return nil
			}

			for _, rm := range roleMarkers {
				if implementsMarker(content, rm.Marker) {
					fqn := pkgMatch[1] + "." + typeMatch[1]
					eps.Roles[rm.Role] = append(eps.Roles[rm.Role], fqn)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return eps, nil
}

// implementsMarker checks for the marker in an implements/supertype clause.
// The marker must stand alone as a word, so ModInitializer never matches
// inside ClientModInitializer.
func implementsMarker(content, marker string) bool {
	re := regexp.MustCompile(`(?:\bimplements\b|:)[^{;]*\b` + marker + `\b`)
	return re.MatchString(content)
}

// UpdateEntrypointDescriptor overwrites the descriptor's role arrays with
// the freshly-derived sets. Roles with at least one entry replace the
// existing array; roles with zero matches are left as-is; a role whose
// array is absent but has entries is inserted inside the anchor object.
// The entrypoint lists are treated as fully derived from source for the
// roles detected, not hand-maintained.
func UpdateEntrypointDescriptor(fsys filesystem.FileSystem, descriptorPath string, eps *Entrypoints) (bool, error) {
	if !fsys.Exists(descriptorPath) {
		return false, nil
	}

	data, err := fsys.ReadFile(descriptorPath)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", descriptorPath, err)
	}

	content := string(data)
	changed := false

	for _, rm := range roleMarkers {
		entries := eps.Roles[rm.Role]
		if len(entries) == 0 {
			continue
		}

		field := fmt.Sprintf(`"%s": %s`, rm.Role, renderArray(entries))
		roleRe := regexp.MustCompile(`"` + rm.Role + `"\s*:\s*\[[^\]]*\]`)

		switch {
		case roleRe.MatchString(content):
			updated := roleRe.ReplaceAllLiteralString(content, field)
			if updated != content {
				content = updated
				changed = true
			}
		case anchorEmptyRe.MatchString(content):
			content = anchorEmptyRe.ReplaceAllLiteralString(content,
				`"`+entrypointsAnchor+`": { `+field+` }`)
			changed = true
		case anchorOpenRe.MatchString(content):
			content = anchorOpenRe.ReplaceAllString(content, "${1}\n    "+escapeReplacement(field)+",")
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	if err := fsys.WriteFile(descriptorPath, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", descriptorPath, err)
	}
	return true, nil
}

func renderArray(entries []string) string {
	quoted := make([]string, len(entries))
	for i, e := range entries {
		quoted[i] = `"` + e + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// escapeReplacement protects $ in a replacement string used with
// ReplaceAllString; entrypoint names may contain nested-class separators.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
