package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file name of the run manifest inside the output directory.
const ManifestName = "manifest.yaml"

// Manifest records how the fixtures in a directory were produced.
type Manifest struct {
	RunID       string          `yaml:"run_id"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Seed        int64           `yaml:"seed"`
	Count       int             `yaml:"count"`
	Variant     Variant         `yaml:"variant"`
	Files       []ManifestEntry `yaml:"files"`
}

// ManifestEntry is one successfully written fixture file.
type ManifestEntry struct {
	Kind   Kind   `yaml:"kind"`
	File   string `yaml:"file"`
	Tokens int    `yaml:"tokens"`
	SHA256 string `yaml:"sha256"`
}

// NewManifest builds a Manifest from the successful files of a run.
func NewManifest(r *Report) *Manifest {
	m := &Manifest{
		RunID:       r.RunID,
		GeneratedAt: r.GeneratedAt,
		Seed:        r.Config.Seed,
		Count:       r.Config.Count,
		Variant:     r.Config.Variant,
		Files:       []ManifestEntry{},
	}
	for _, f := range r.Files {
		if f.Err != nil {
			continue
		}
		m.Files = append(m.Files, ManifestEntry{
			Kind:   f.Kind,
			File:   filepath.Base(f.Path),
			Tokens: f.Tokens,
			SHA256: f.SHA256,
		})
	}
	return m
}

// Kinds returns the kinds listed in the manifest.
func (m *Manifest) Kinds() []Kind {
	kinds := make([]Kind, 0, len(m.Files))
	for _, f := range m.Files {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

// WriteManifest writes m to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads dir/manifest.yaml. A missing file yields an error matching
// fs.ErrNotExist.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
