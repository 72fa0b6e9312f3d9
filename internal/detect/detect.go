package detect

import (
	"io/fs"
	"regexp"
	"strings"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
	"github.com/fernvale/modremap/internal/project"
	"github.com/fernvale/modremap/internal/rewrite"
	"github.com/fernvale/modremap/internal/scan"
)

// Bounds for the per-module scan. Detection is a cheap heuristic; correctness
// depends on convention (one dominant package per tree), so the scan is capped
// rather than exhaustive.
const (
	maxDepth          = 10
	maxFilesPerModule = 200
)

var packageDeclRe = regexp.MustCompile(`(?m)^\s*package\s+([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)`)

// Identity inspects the modules' source trees in order and infers the
// identity currently encoded there: the first 3 dot-segments of the first
// package declaration found. Returns nil when no file qualifies or the
// declaration has fewer than 2 segments; a nil result is "nothing to
// refactor yet", never an error.
func Identity(fsys filesystem.FileSystem, modules []project.Module, ignore scan.Ignore) *models.Identity {
	for _, module := range modules {
		for _, root := range module.SourceRoots() {
			if path := firstPackagePath(fsys, root, ignore); path != "" {
				identity, err := models.ParseIdentity(path)
				if err != nil {
					continue
				}
				return &identity
			}
		}
	}
	return nil
}

func firstPackagePath(fsys filesystem.FileSystem, root string, ignore scan.Ignore) string {
	var found string

	opts := scan.Options{
		MaxDepth:   maxDepth,
		MaxFiles:   maxFilesPerModule,
		Ignore:     ignore.Rules,
		IgnoreRoot: ignore.Root,
	}
	_ = scan.Walk(fsys, root, opts, func(path string, entry fs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}
		if !scan.HasExtension(path, rewrite.SourceExtensions) {
			return nil
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil
		}

		match := packageDeclRe.FindSubmatch(data)
		if match == nil {
			return nil
		}

		segments := strings.Split(string(match[1]), ".")
		if len(segments) < 2 {
			return nil
		}
		if len(segments) > 3 {
			segments = segments[:3]
		}

		found = strings.Join(segments, ".")
		return scan.ErrStop
	})

	return found
}
