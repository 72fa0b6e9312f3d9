package state

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
)

const stateFileName = "state.properties"

// Store persists the last identity the engine observed for a project.
// The record is a flat key=value file with exactly two keys, overwritten
// wholesale on every save; last writer wins.
type Store struct {
	fs       filesystem.FileSystem
	stateDir string
}

// NewStore creates a Store rooted at the project's state directory.
func NewStore(fsys filesystem.FileSystem, stateDir string) *Store {
	return &Store{fs: fsys, stateDir: stateDir}
}

// Path returns the on-disk location of the state record.
func (s *Store) Path() string {
	return filepath.Join(s.stateDir, stateFileName)
}

// Load reads the persisted identity. A missing or corrupt record is
// treated as "no previous identity" and returns nil without error.
func (s *Store) Load() *models.Identity {
	path := s.Path()
	if !s.fs.Exists(path) {
		return nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil
	}

	values := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	identity := models.NewIdentity(values["group"], values["id"])
	if !identity.IsValid() {
		return nil
	}
	return &identity
}

// Save overwrites the state record with the given identity.
func (s *Store) Save(identity models.Identity) error {
	if err := s.fs.MkdirAll(s.stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	content := fmt.Sprintf("group=%s\nid=%s\n", identity.Group, identity.ID)
	if err := s.fs.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write state record: %w", err)
	}

	return nil
}
