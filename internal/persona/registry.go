package persona

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openparley/parley/internal/validation"
)

// ErrUnknownPersona is returned when an ID does not resolve to any persona.
var ErrUnknownPersona = errors.New("unknown persona")

// Registry resolves persona IDs. It is built once at startup and treated
// as immutable afterwards; callers wanting fresh files build a new one.
type Registry struct {
	personas map[string]Persona
}

// NewRegistry returns a registry containing only the builtin personas.
func NewRegistry() *Registry {
	r := &Registry{personas: make(map[string]Persona)}
	for _, p := range builtinPersonas() {
		r.personas[p.ID] = p
	}
	return r
}

// LoadRegistry builds a registry from the builtins plus any *.yaml persona
// files under dir. A missing directory is not an error. File personas with
// a builtin's ID override the builtin.
func LoadRegistry(dir string) (*Registry, error) {
	r := NewRegistry()
	if dir == "" {
		return r, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("reading personas dir %q: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading persona file %q: %w", path, err)
		}

		if errs := validation.ValidatePersonaBytes(data); len(errs) > 0 {
			return nil, fmt.Errorf("persona file %q: %s", path, strings.Join(errs, "; "))
		}

		var p Persona
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing persona file %q: %w", path, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("persona file %q: %w", path, err)
		}
		r.personas[p.ID] = p
	}

	return r, nil
}

// Resolve returns the persona with the given ID.
func (r *Registry) Resolve(id string) (Persona, error) {
	p, ok := r.personas[id]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %q", ErrUnknownPersona, id)
	}
	return p, nil
}

// List returns all registered personas sorted by ID.
func (r *Registry) List() []Persona {
	out := make([]Persona, 0, len(r.personas))
	for _, p := range r.personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
