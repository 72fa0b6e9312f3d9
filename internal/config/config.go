package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fernvale/modremap/internal/filesystem"
	"github.com/fernvale/modremap/internal/models"
	"github.com/spf13/viper"
)

// PropertiesFileName is the project configuration file at the project root.
const PropertiesFileName = "gradle.properties"

// Properties holds the identity-relevant subset of gradle.properties.
type Properties struct {
	Group string
	ID    string

	// CatalogURL optionally overrides the version manifest endpoint.
	CatalogURL string
}

// Load reads gradle.properties at root. A missing file returns (nil, nil):
// the identity feature is opt-in by convention, absence suppresses it.
func Load(fsys filesystem.FileSystem, root string) (*Properties, error) {
	path := filepath.Join(root, PropertiesFileName)
	if !fsys.Exists(path) {
		return nil, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("properties")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Properties{
		Group:      strings.TrimSpace(v.GetString("group")),
		ID:         strings.TrimSpace(v.GetString("id")),
		CatalogURL: strings.TrimSpace(v.GetString("catalog_url")),
	}, nil
}

// Identity returns the configured identity, or false when either
// property is absent.
func (p *Properties) Identity() (models.Identity, bool) {
	if p == nil || p.Group == "" || p.ID == "" {
		return models.Identity{}, false
	}
	return models.NewIdentity(p.Group, p.ID), true
}
