package relocate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
)

// maxPruneLevels bounds the upward empty-directory cleanup so unusual
// filesystem structures cannot loop it forever.
const maxPruneLevels = 16

// Result reports what a relocation did.
type Result struct {
	// Moved is true when the package directory changed location,
	// whether by rename, copy, or merge.
	Moved bool

	// Merged is true when the destination already existed and the
	// source's children were folded into it.
	Merged bool

	// Warnings records skipped unsafe operations.
	Warnings []string
}

// Packages moves the package directory for old to the location for new
// under srcRoot. Missing source and identical paths are no-ops. A move
// where one path nests inside the other is skipped with a warning, since
// it would recursively move a directory into its own subtree.
func Packages(fsys filesystem.FileSystem, srcRoot string, old, new models.Identity) (*Result, error) {
	result := &Result{}

	oldDir := filepath.Join(srcRoot, old.DirPath())
	newDir := filepath.Join(srcRoot, new.DirPath())

	if !fsys.Exists(oldDir) {
		return result, nil
	}
	if filepath.Clean(oldDir) == filepath.Clean(newDir) {
		return result, nil
	}
	if isAncestor(oldDir, newDir) || isAncestor(newDir, oldDir) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("skipping move %s -> %s: paths nest inside each other", oldDir, newDir))
		return result, nil
	}

	if fsys.Exists(newDir) {
		if err := mergeInto(fsys, oldDir, newDir); err != nil {
			return result, err
		}
		result.Moved = true
		result.Merged = true
	} else {
		if err := MoveTree(fsys, oldDir, newDir); err != nil {
			return result, err
		}
		result.Moved = true
	}

	pruneEmptyAncestors(fsys, filepath.Dir(oldDir), srcRoot)
	return result, nil
}

func isAncestor(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}

// MoveTree renames src to dst, falling back to a recursive copy followed
// by deletion of the source (e.g. when rename crosses filesystems).
func MoveTree(fsys filesystem.FileSystem, src, dst string) error {
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}

	if err := fsys.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyTree(fsys, src, dst); err != nil {
		return err
	}
	if err := fsys.RemoveAll(src); err != nil {
		return fmt.Errorf("failed to remove %s after copy: %w", src, err)
	}
	return nil
}

// mergeInto moves each child of src into dst, overwriting same-named
// files and merging same-named directories. src is removed afterwards
// only if the merge left it empty.
func mergeInto(fsys filesystem.FileSystem, src, dst string) error {
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if fsys.Exists(to) {
			if entry.IsDir() {
				if err := mergeInto(fsys, from, to); err != nil {
					return err
				}
				continue
			}
			if err := fsys.Remove(to); err != nil {
				return fmt.Errorf("failed to replace %s: %w", to, err)
			}
		}

		if err := MoveTree(fsys, from, to); err != nil {
			return err
		}
	}

	remaining, err := fsys.ReadDir(src)
	if err == nil && len(remaining) == 0 {
		if err := fsys.Remove(src); err != nil {
			return fmt.Errorf("failed to remove emptied %s: %w", src, err)
		}
	}
	return nil
}

func copyTree(fsys filesystem.FileSystem, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if !info.IsDir() {
		data, err := fsys.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", src, err)
		}
		if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
		return nil
	}

	if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if err := copyTree(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// pruneEmptyAncestors deletes now-empty directories walking upward from
// start toward root, stopping at the root or after a bounded number of
// levels. Repeated renames would otherwise leave orphaned package
// hierarchy directories behind.
func pruneEmptyAncestors(fsys filesystem.FileSystem, start, root string) {
	dir := filepath.Clean(start)
	root = filepath.Clean(root)

	for level := 0; level < maxPruneLevels; level++ {
		if dir == root || !isAncestor(root, dir) {
			return
		}

		entries, err := fsys.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := fsys.Remove(dir); err != nil {
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
