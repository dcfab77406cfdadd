// Package manifest records what a batch run produced.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New(inputDir, outputDir string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		InputDir:    inputDir,
		OutputDir:   outputDir,
	}
}

// ComputeStats recalculates aggregate statistics from entries.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.Files = len(m.Entries)
	for _, e := range m.Entries {
		s.TotalInputBytes += e.SourceBytes
		s.TotalOutputBytes += e.Size
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest from disk.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
