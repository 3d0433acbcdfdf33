// Package registry loads the optional suite manifest for a test directory.
// The manifest annotates the grading report; discovery and verdicts never
// depend on it.
package registry

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the fixed name of the suite manifest inside the test
// directory.
const ManifestFileName = "suite.yaml"

// Manifest describes a grading suite. All fields are optional.
type Manifest struct {
	Name        string            `yaml:"name,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Notes       map[string]string `yaml:"notes,omitempty"` // per-case annotations keyed by base name
}

// Registry holds the manifest for the configured test directory.
type Registry struct {
	config   Config
	manifest Manifest
	mu       sync.RWMutex
}

// Config contains registry configuration.
type Config struct {
	Log     log.Logger
	TestDir string
}

// NewRegistry creates a registry and loads the suite manifest if one exists.
// A missing or unreadable manifest leaves the registry empty; grading must
// not fail because an annotation file is absent.
func NewRegistry(cfg Config) *Registry {
	if cfg.Log == nil {
		cfg.Log = log.New()
	}

	r := &Registry{config: cfg}
	r.loadManifest()
	return r
}

func (r *Registry) loadManifest() {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.config.TestDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		r.config.Log.Debug("No suite manifest", "path", path, "err", err)
		return
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		r.config.Log.Warn("Ignoring unparsable suite manifest", "path", path, "err", err)
		return
	}
	r.manifest = m
	r.config.Log.Debug("Loaded suite manifest", "path", path, "name", m.Name)
}

// SuiteName returns the manifest's suite name, or the test directory base
// name when no manifest names the suite.
func (r *Registry) SuiteName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.manifest.Name != "" {
		return r.manifest.Name
	}
	return filepath.Base(r.config.TestDir)
}

// Description returns the manifest's suite description, possibly empty.
func (r *Registry) Description() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.manifest.Description
}

// NoteFor returns the annotation for a case base name, or "" when the case
// is not annotated.
func (r *Registry) NoteFor(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.manifest.Notes[name]
}
