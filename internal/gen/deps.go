// Package gen renders dependency metadata blocks from a resolved version
// catalog, over a fixed schema per packaging format.
package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/fernvale/modremap/internal/catalog"
	toml "github.com/pelletier/go-toml/v2"
)

// Dependency is one declared relationship of the project to a library.
type Dependency struct {
	ModID        string `toml:"modId"`
	Mandatory    bool   `toml:"mandatory"`
	VersionRange string `toml:"versionRange"`
	Ordering     string `toml:"ordering"`
	Side         string `toml:"side"`
}

// Formats the generator knows how to render.
const (
	FormatFabric = "fabric"
	FormatForge  = "forge"
)

// coreLibraries are the libraries every generated block declares, per
// format, in render order.
var coreLibraries = map[string][]string{
	FormatFabric: {"fabric-loader", "fabric-api", "minecraft"},
	FormatForge:  {"forge", "minecraft"},
}

const fabricDependsTemplate = `"depends": {
{{- $deps := .Deps }}
{{- range $i, $d := $deps }}
  "{{ $d.ModID }}": "{{ $d.VersionRange }}"{{ if ne (add $i 1) (len $deps) }},{{ end }}
{{- end }}
}
`

// BuildDependencies derives the dependency list for a format from the
// manifest, pinning each library at its latest published version.
func BuildDependencies(manifest *catalog.Manifest, format string) ([]Dependency, error) {
	names, ok := coreLibraries[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}

	var deps []Dependency
	for _, name := range names {
		latest, ok := manifest.Latest(name)
		if !ok {
			continue
		}

		modID := name
		for _, lib := range manifest.Libraries {
			if lib.Name == name && lib.ModID != "" {
				modID = lib.ModID
			}
		}

		deps = append(deps, Dependency{
			ModID:        modID,
			Mandatory:    true,
			VersionRange: ">=" + latest,
			Ordering:     "NONE",
			Side:         "BOTH",
		})
	}

	if len(deps) == 0 {
		return nil, fmt.Errorf("manifest offers none of the %s core libraries", format)
	}
	return deps, nil
}

// RenderDeps renders the dependency block for the format: a JSON "depends"
// object for fabric packaging, TOML dependency tables for forge packaging.
func RenderDeps(format, modID string, deps []Dependency) (string, error) {
	switch format {
	case FormatFabric:
		return renderFabric(deps)
	case FormatForge:
		return renderForge(modID, deps)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func renderFabric(deps []Dependency) (string, error) {
	tmpl, err := template.New("depends").Funcs(sprig.FuncMap()).Parse(fabricDependsTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse depends template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{"Deps": deps}); err != nil {
		return "", fmt.Errorf("failed to render depends block: %w", err)
	}
	return buf.String(), nil
}

func renderForge(modID string, deps []Dependency) (string, error) {
	doc := map[string]map[string][]Dependency{
		"dependencies": {modID: deps},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render dependency tables: %w", err)
	}
	return string(data), nil
}
