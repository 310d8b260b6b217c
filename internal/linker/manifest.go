package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	rulekitDir   = ".rulekit"
	manifestFile = "manifest.yaml"
	modulesDir   = "modules"

	manifestVersion = 1
)

// LinkMethod selects how module files are materialized into a project.
type LinkMethod string

const (
	MethodSymlink LinkMethod = "symlink"
	MethodCopy    LinkMethod = "copy"
)

// LinkRecord tracks one linked module in a project.
type LinkRecord struct {
	ID       string     `yaml:"id"`
	Source   string     `yaml:"source"` // absolute path to the registry module dir
	Method   LinkMethod `yaml:"method"`
	LinkedAt time.Time  `yaml:"linked_at"`
}

// Manifest is the persisted link state of a project (.rulekit/manifest.yaml).
type Manifest struct {
	Version int          `yaml:"version"`
	Links   []LinkRecord `yaml:"links"`
}

// ManifestPath returns the full path to .rulekit/manifest.yaml for a project.
func ManifestPath(projectPath string) string {
	return filepath.Join(projectPath, rulekitDir, manifestFile)
}

// StateDir returns the project's .rulekit directory.
func StateDir(projectPath string) string {
	return filepath.Join(projectPath, rulekitDir)
}

// ModulesRoot returns the directory modules are materialized into.
func ModulesRoot(projectPath string) string {
	return filepath.Join(projectPath, rulekitDir, modulesDir)
}

// LoadManifest reads the project manifest. A missing file yields an empty
// manifest so that the first link into a fresh project just works.
func LoadManifest(projectPath string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{Version: manifestVersion}, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Version == 0 {
		m.Version = manifestVersion
	}
	return &m, nil
}

// SaveManifest writes the manifest, creating .rulekit/ if needed.
func SaveManifest(projectPath string, m *Manifest) error {
	dir := StateDir(projectPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", rulekitDir, err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := os.WriteFile(ManifestPath(projectPath), data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Find returns the link record for a module ID, if present.
func (m *Manifest) Find(id string) (*LinkRecord, bool) {
	for i := range m.Links {
		if m.Links[i].ID == id {
			return &m.Links[i], true
		}
	}
	return nil, false
}

// Add appends a link record.
func (m *Manifest) Add(rec LinkRecord) {
	m.Links = append(m.Links, rec)
}

// Remove deletes the record for a module ID. Returns true if it was present.
func (m *Manifest) Remove(id string) bool {
	for i := range m.Links {
		if m.Links[i].ID == id {
			m.Links = append(m.Links[:i], m.Links[i+1:]...)
			return true
		}
	}
	return false
}

// IDs returns the linked module IDs in manifest order.
func (m *Manifest) IDs() []string {
	ids := make([]string, len(m.Links))
	for i, l := range m.Links {
		ids[i] = l.ID
	}
	return ids
}
