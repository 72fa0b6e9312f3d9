package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// bundledManifestJSON ships a minimal manifest so dependency generation
// works offline on a fresh checkout.
const bundledManifestJSON = `{
  "schemaVersion": 1,
  "libraries": [
    {"name": "minecraft", "modId": "minecraft", "versions": ["1.20.4", "1.21.1"]},
    {"name": "fabric-loader", "modId": "fabricloader", "versions": ["0.15.11", "0.16.9"]},
    {"name": "fabric-api", "modId": "fabric-api", "versions": ["0.97.0", "0.110.5"]},
    {"name": "forge", "modId": "forge", "versions": ["49.0.31", "52.0.17"]},
    {"name": "neoforge", "modId": "neoforge", "versions": ["20.4.237", "21.1.77"]}
  ]
}`

func bundledManifest() (*Manifest, error) {
	var manifest Manifest
	if err := json.Unmarshal([]byte(bundledManifestJSON), &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse bundled manifest: %w", err)
	}
	return &manifest, nil
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
