// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest is the on-disk record of one conversion run.
type Manifest struct {
	Source     string         `yaml:"source"`
	Categories []string       `yaml:"categories"`
	Marker     string         `yaml:"marker"`
	Rows       int            `yaml:"rows"`
	Matched    int            `yaml:"matched"`
	Sheets     []SheetSummary `yaml:"sheets"`
	Snapshot   string         `yaml:"snapshot"`
	Workbook   string         `yaml:"workbook"`
	Timestamp  time.Time      `yaml:"timestamp"`
}

// WriteManifest saves m as YAML to path.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
