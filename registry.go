package linkbook

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps format names and aliases to generators. It is populated
// during service construction and read-only afterwards.
type Registry struct {
	order   []PluginDescriptor
	entries map[string]registryEntry
}

type registryEntry struct {
	desc PluginDescriptor
	gen  Generator
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// register adds a generator under its canonical name and every alias.
// Registration happens only at construction time, so a duplicate name is
// programmer error and panics.
func (r *Registry) register(desc PluginDescriptor, gen Generator) {
	names := append([]string{desc.Name}, desc.Aliases...)
	for _, name := range names {
		if _, exists := r.entries[name]; exists {
			panic("linkbook: duplicate format registration: " + name)
		}
		r.entries[name] = registryEntry{desc: desc, gen: gen}
	}
	r.order = append(r.order, desc)
}

// Resolve returns the generator and descriptor for a format name or alias.
// Lookup is exact: formats register lowercase names and no case folding is
// applied to the query.
func (r *Registry) Resolve(name string) (Generator, PluginDescriptor, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, PluginDescriptor{}, fmt.Errorf("%w %q, available formats: %s",
			ErrUnsupportedFormat, name, strings.Join(r.Names(), ", "))
	}
	return entry.gen, entry.desc, nil
}

// Names returns every registered name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the canonical descriptors in registration order, one per
// format regardless of aliases.
func (r *Registry) List() []PluginDescriptor {
	out := make([]PluginDescriptor, len(r.order))
	copy(out, r.order)
	return out
}
