// Package preset loads named dice expressions from YAML files, e.g.
//
//	presets:
//	  - name: longsword
//	    dice: 1d8+3
//	    description: one-handed longsword with +3 strength
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicestat/internal/dice"
)

// Preset is a named dice expression loaded from YAML.
type Preset struct {
	Name        string `yaml:"name"`
	Notation    string `yaml:"dice"`
	Description string `yaml:"description"`

	// Expression is Notation parsed; set by Validate.
	Expression dice.Expression `yaml:"-"`
}

// file is the top-level document of a preset YAML file.
type file struct {
	Presets []*Preset `yaml:"presets"`
}

// Validate checks that the Preset satisfies its invariants and parses its notation.
//
// Precondition: p is non-nil.
// Postcondition: returns nil iff all fields are valid; p.Expression is then set.
func (p *Preset) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if p.Notation == "" {
		errs = append(errs, errors.New("dice must not be empty"))
	} else if e, err := dice.Parse(p.Notation); err != nil {
		errs = append(errs, err)
	} else {
		p.Expression = e
	}
	if len(errs) > 0 {
		return fmt.Errorf("preset %q validation failed: %w", p.Name, errors.Join(errs...))
	}
	return nil
}

// Registry holds presets indexed by name.
type Registry struct {
	presets map[string]*Preset
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]*Preset)}
}

// Register validates p and adds it to the registry.
//
// Precondition: p must not be nil.
// Postcondition: Lookup(p.Name) returns p; returns error if p is invalid or
// p.Name is already registered.
func (r *Registry) Register(p *Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := r.presets[p.Name]; exists {
		return fmt.Errorf("preset: Registry.Register: preset %q already registered", p.Name)
	}
	r.presets[p.Name] = p
	return nil
}

// Lookup returns the preset for name and whether it was found.
func (r *Registry) Lookup(name string) (*Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// Names returns all registered preset names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered presets.
func (r *Registry) Len() int {
	return len(r.presets)
}

// LoadDir reads all *.yaml files from dir in lexicographic order and registers
// every preset they define.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns a Registry of all presets or the first encountered error.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("preset: LoadDir: cannot read directory %q: %w", dir, err)
	}

	reg := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() || (filepath.Ext(entry.Name()) != ".yaml" && filepath.Ext(entry.Name()) != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("preset: LoadDir: cannot read file %q: %w", path, err)
		}
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("preset: LoadDir: cannot parse file %q: %w", path, err)
		}
		for i, p := range f.Presets {
			if p == nil {
				return nil, fmt.Errorf("preset: LoadDir: empty preset entry %d in %q", i, path)
			}
			if err := reg.Register(p); err != nil {
				return nil, fmt.Errorf("preset: LoadDir: invalid preset in %q: %w", path, err)
			}
		}
	}
	return reg, nil
}
