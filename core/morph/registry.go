package morph

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/FocuswithJustin/treebank/core/errors"
)

// DefaultLanguage is used when no language is selected.
const DefaultLanguage = "latin"

// Registry resolves language names and aliases to feature tables.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Table
	tables []*Table
}

// NewRegistry returns a registry holding the given tables.
func NewRegistry(tables ...*Table) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Table)}
	for _, t := range tables {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds t under its name and aliases. A name already taken by
// another table is rejected.
func (r *Registry) Register(t *Table) error {
	if t == nil || t.Name() == "" {
		return errors.NewValidation("language", "table has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{t.Name()}, t.Aliases()...)
	for _, k := range keys {
		if _, ok := r.byName[k]; ok {
			return errors.NewValidation("language", fmt.Sprintf("%q is already registered", k))
		}
	}
	for _, k := range keys {
		r.byName[k] = t
	}
	r.tables = append(r.tables, t)
	return nil
}

// Lookup returns the table registered under name (case-insensitive). An
// empty name selects DefaultLanguage.
func (r *Registry) Lookup(name string) (*Table, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultLanguage
	}
	r.mu.RLock()
	t, ok := r.byName[key]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewUnsupported(
			fmt.Sprintf("language %q", name),
			"supported languages are "+strings.Join(r.Languages(), ", "),
		)
	}
	return t, nil
}

// Languages returns the canonical names of all registered tables, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t.Name())
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = mustRegistry(latin, greek)

func mustRegistry(tables ...*Table) *Registry {
	r, err := NewRegistry(tables...)
	if err != nil {
		panic(fmt.Sprintf("morph: building default registry: %v", err))
	}
	return r
}

// Lookup resolves name against the built-in registry.
func Lookup(name string) (*Table, error) {
	return defaultRegistry.Lookup(name)
}

// Languages lists the languages of the built-in registry.
func Languages() []string {
	return defaultRegistry.Languages()
}

// Register adds a further language to the built-in registry. It is meant to
// be called from an init function.
func Register(t *Table) error {
	return defaultRegistry.Register(t)
}
