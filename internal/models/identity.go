package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Identity is the (group, id) pair a project is known by.
//
// The dotted form ("com.example.mymod") names the root package of the
// project's source code; the slashed form names the matching directory
// under a source root.
type Identity struct {
	// Group is the organization-level namespace prefix, e.g. "com.example".
	Group string

	// ID is the project-specific identifier, e.g. "mymod".
	ID string
}

// NewIdentity creates an Identity from its two components.
func NewIdentity(group, id string) Identity {
	return Identity{Group: group, ID: id}
}

// ParseIdentity splits a dotted package path into group and id, taking the
// last segment as the id and everything before it as the group.
// The path must have at least two segments.
func ParseIdentity(packagePath string) (Identity, error) {
	segments := strings.Split(packagePath, ".")
	if len(segments) < 2 {
		return Identity{}, fmt.Errorf("package path %q has fewer than 2 segments", packagePath)
	}
	for _, s := range segments {
		if s == "" {
			return Identity{}, fmt.Errorf("package path %q has an empty segment", packagePath)
		}
	}

	return Identity{
		Group: strings.Join(segments[:len(segments)-1], "."),
		ID:    segments[len(segments)-1],
	}, nil
}

// PackagePath returns the dotted form, e.g. "com.example.mymod".
func (i Identity) PackagePath() string {
	return i.Group + "." + i.ID
}

// DirPath returns the directory form relative to a source root,
// e.g. "com/example/mymod".
func (i Identity) DirPath() string {
	return filepath.FromSlash(strings.ReplaceAll(i.PackagePath(), ".", "/"))
}

// GroupDirPath returns the directory form of the group alone.
func (i Identity) GroupDirPath() string {
	return filepath.FromSlash(strings.ReplaceAll(i.Group, ".", "/"))
}

// IsValid reports whether both components are non-empty.
func (i Identity) IsValid() bool {
	return i.Group != "" && i.ID != ""
}

// Equal reports exact string equality of both components.
func (i Identity) Equal(other Identity) bool {
	return i.Group == other.Group && i.ID == other.ID
}

func (i Identity) String() string {
	return i.PackagePath()
}
