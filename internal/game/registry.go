package game

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the compiled-in rule variants by id.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rules
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rules)}
}

// Register adds a variant. Panics on duplicate ids.
func (r *Registry) Register(rules Rules) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := rules.Info().ID
	if _, exists := r.rules[id]; exists {
		panic(fmt.Sprintf("rules %q already registered", id))
	}
	r.rules[id] = rules
}

// Get returns a variant by id.
func (r *Registry) Get(id string) (Rules, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.rules[id]
	return rules, ok
}

// Resolve maps variant ids to rules, failing on the first unknown id.
func (r *Registry) Resolve(ids []string) ([]Rules, error) {
	out := make([]Rules, 0, len(ids))
	for _, id := range ids {
		rules, ok := r.Get(id)
		if !ok {
			return nil, fmt.Errorf("unknown rules: %s", id)
		}
		out = append(out, rules)
	}
	return out, nil
}

// List returns info for all registered variants, sorted by id.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.rules))
	for _, rules := range r.rules {
		infos = append(infos, rules.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
