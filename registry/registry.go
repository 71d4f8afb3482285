// Package registry indexes form schema documents by connector type name.
// The registry is populated at application start from built-in schemas and
// optionally a schema directory, and is read-only afterwards.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aperture-data/formschema/config"
	"github.com/aperture-data/formschema/core/logger"
	"github.com/aperture-data/formschema/schema"
)

var (
	ErrTypeExists   = errors.New("connector type already registered")
	ErrTypeNotFound = errors.New("connector type not found")
)

type Registry struct {
	docs map[string]*schema.Document
	mu   sync.RWMutex
}

func New() *Registry {
	return &Registry{
		docs: make(map[string]*schema.Document),
	}
}

// Register adds a document under a connector type name. Registering the
// same name twice is a startup defect and fails.
func (r *Registry) Register(name string, doc *schema.Document) error {
	if name == "" {
		return fmt.Errorf("connector type name cannot be empty")
	}
	if doc == nil {
		return fmt.Errorf("connector type %s has no schema document", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[name]; exists {
		return fmt.Errorf("%w: %s", ErrTypeExists, name)
	}
	r.docs[name] = doc
	return nil
}

// Get returns the schema document of a connector type.
func (r *Registry) Get(name string) (*schema.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	}
	return doc, nil
}

// Resolve expands the field groups of one form variant of a connector type.
func (r *Registry) Resolve(name string, variant schema.Variant) ([]schema.FieldGroup, error) {
	doc, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return doc.Resolve(variant)
}

// Types lists registered connector type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.docs))
	for name := range r.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDir registers every *.json schema document found in dir, keyed by
// the file name without extension. A malformed document aborts the load so
// the application does not start with broken forms.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read schema directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read schema document %s: %v", entry.Name(), err)
		}

		doc, err := schema.Parse(data)
		if err != nil {
			return fmt.Errorf("schema document %s: %v", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		if err := r.Register(name, doc); err != nil {
			return err
		}
		logger.Info("registered connector form schema %s", name)
	}
	return nil
}

// LoadFromConfig registers the schema directory named by configuration.
// Nothing happens when no schema path is configured; built-in schemas are
// then the only ones available.
func (r *Registry) LoadFromConfig() error {
	cfg := config.LoadSchemaConfig()
	if cfg == nil || cfg.Path == "" {
		return nil
	}
	return r.LoadDir(cfg.Path)
}
