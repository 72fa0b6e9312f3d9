package rewrite

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/scan"
)

// SourceExtensions tags the project's source languages. Both share the
// same package/import statement conventions.
var SourceExtensions = []string{".java", ".kt"}

// maxDepth bounds the source-tree walk; package hierarchies deeper than
// this are outside convention.
const maxDepth = 24

var (
	packageStmtRe = regexp.MustCompile(`^\s*package\s+`)
	importStmtRe  = regexp.MustCompile(`^\s*import\s+(?:static\s+)?`)

	// dottedTokenRe captures maximal identifier.identifier runs so a
	// replacement can never match inside a longer unrelated path:
	// "com.foo" is replaced in "com.foo.Main" but never in "com.foobar".
	dottedTokenRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_.]*`)
)

// ReplaceOccurrences substitutes oldPath with newPath wherever it appears
// as a whole dotted token or as a dotted prefix of one. This is the single
// boundary-safe policy used for every textual rewrite in the tool.
func ReplaceOccurrences(content, oldPath, newPath string) (string, bool) {
	changed := false
	result := dottedTokenRe.ReplaceAllStringFunc(content, func(token string) string {
		if token == oldPath {
			changed = true
			return newPath
		}
		if strings.HasPrefix(token, oldPath+".") {
			changed = true
			return newPath + token[len(oldPath):]
		}
		return token
	})
	return result, changed
}

// Result reports which files a rewrite changed.
type Result struct {
	ChangedFiles []string
}

// Sources scans source files under root (bounded depth, symlinks excluded,
// ignore rules applied) and rewrites package declarations, imports, and
// static imports referring to oldPath. Files with zero matches are left
// untouched.
func Sources(fsys filesystem.FileSystem, root, oldPath, newPath string, ignore scan.Ignore) (*Result, error) {
	result := &Result{}
	if oldPath == newPath {
		return result, nil
	}

	opts := scan.Options{MaxDepth: maxDepth, Ignore: ignore.Rules, IgnoreRoot: ignore.Root}
	err := scan.Walk(fsys, root, opts, func(path string, entry fs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}
		if !scan.HasExtension(path, SourceExtensions) {
			return nil
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		content, changed := rewriteSource(string(data), oldPath, newPath)
		if !changed {
			return nil
		}

		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.ChangedFiles = append(result.ChangedFiles, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// rewriteSource applies the statement-anchored substitutions to one file.
// Only package and import statements are candidates; qualified references
// in code bodies are left alone.
func rewriteSource(content, oldPath, newPath string) (string, bool) {
	lines := strings.Split(content, "\n")
	changed := false

	for i, line := range lines {
		prefix := statementPrefix(line)
		if prefix == "" {
			continue
		}

		rest := line[len(prefix):]
		rewritten, ok := ReplaceOccurrences(rest, oldPath, newPath)
		if ok {
			lines[i] = prefix + rewritten
			changed = true
		}
	}

	if !changed {
		return content, false
	}
	return strings.Join(lines, "\n"), true
}

func statementPrefix(line string) string {
	if loc := packageStmtRe.FindString(line); loc != "" {
		return loc
	}
	if loc := importStmtRe.FindString(line); loc != "" {
		return loc
	}
	return ""
}
