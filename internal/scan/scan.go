package scan

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/fernvale/modremap/internal/filesystem"
)

// DefaultMaxDepth bounds how deep a traversal descends below its root.
const DefaultMaxDepth = 10

// ErrStop ends a traversal early from a visit function. Walk swallows it
// and returns nil; it is not an error condition.
var ErrStop = errors.New("scan: stop")

// SkipDir prevents descent into the directory just visited.
var SkipDir = fs.SkipDir

// Options bound a traversal. Symbolic links are never followed.
type Options struct {
	// MaxDepth limits descent below the root; 0 means DefaultMaxDepth.
	MaxDepth int

	// MaxFiles caps the number of regular files visited; 0 means no cap.
	// When the cap is hit the traversal stops without error.
	MaxFiles int

	// Ignore, when set, excludes matching paths. Matching is relative
	// to IgnoreRoot (the root passed to Walk when empty).
	Ignore     gitignore.GitIgnore
	IgnoreRoot string
}

// VisitFunc is called for every directory and regular file encountered.
// Returning SkipDir on a directory prevents descent; returning ErrStop
// ends the whole traversal.
type VisitFunc func(path string, entry fs.DirEntry) error

// Walk traverses root depth-first with the given bounds. Entries within a
// directory are visited in name order. A missing root is not an error.
func Walk(fsys filesystem.FileSystem, root string, opts Options, visit VisitFunc) error {
	if !fsys.Exists(root) {
		return nil
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	ignoreRoot := opts.IgnoreRoot
	if ignoreRoot == "" {
		ignoreRoot = root
	}

	w := &walker{
		fs:         fsys,
		visit:      visit,
		maxDepth:   maxDepth,
		maxFiles:   opts.MaxFiles,
		ignore:     opts.Ignore,
		ignoreRoot: ignoreRoot,
	}

	err := w.walk(root, 0)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

type walker struct {
	fs         filesystem.FileSystem
	visit      VisitFunc
	maxDepth   int
	maxFiles   int
	ignore     gitignore.GitIgnore
	ignoreRoot string

	fileCount int
}

func (w *walker) walk(dir string, depth int) error {
	if depth >= w.maxDepth {
		return nil
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if w.ignored(path, entry.IsDir()) {
			continue
		}

		if entry.IsDir() {
			err := w.visit(path, entry)
			if err == SkipDir {
				continue
			}
			if err != nil {
				return err
			}
			if err := w.walk(path, depth+1); err != nil {
				return err
			}
			continue
		}

		w.fileCount++
		if w.maxFiles > 0 && w.fileCount > w.maxFiles {
			return ErrStop
		}
		if err := w.visit(path, entry); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) ignored(path string, isDir bool) bool {
	if w.ignore == nil {
		return false
	}

	rel, err := filepath.Rel(w.ignoreRoot, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	if match := w.ignore.Relative(rel, isDir); match != nil && match.Ignore() {
		return true
	}
	return false
}

// Ignore pairs loaded ignore rules with the directory they are relative
// to, so walks rooted below that directory can still apply them. The zero
// value excludes nothing.
type Ignore struct {
	Rules gitignore.GitIgnore
	Root  string
}

// ProjectIgnore loads the .gitignore at root, paired with root for walks
// that start further down the tree.
func ProjectIgnore(fsys filesystem.FileSystem, root string) Ignore {
	return Ignore{Rules: LoadIgnore(fsys, root), Root: root}
}

// LoadIgnore reads the .gitignore at root, if any. A missing or unreadable
// file yields a nil matcher.
func LoadIgnore(fsys filesystem.FileSystem, root string) gitignore.GitIgnore {
	ignorePath := filepath.Join(root, ".gitignore")
	if !fsys.Exists(ignorePath) {
		return nil
	}

	data, err := fsys.ReadFile(ignorePath)
	if err != nil {
		return nil
	}

	return gitignore.New(bytes.NewReader(data), root, nil)
}

// HasExtension reports whether path carries one of the given extensions
// (compared case-sensitively, dot included).
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
