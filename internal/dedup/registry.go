// Package dedup remembers which postings have already been seen so a
// duplicate never costs a second detail fetch.
package dedup

import "sync"

// Registry is a set of posting keys (source:platform_id). The mutex is
// required because maps are not safe for concurrent use and the registry can
// be seeded from the store while a run registers fresh stubs.
type Registry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// RegisterIfNew records key and reports true the first time it is seen.
// Every later call with the same key reports false and changes nothing.
func (r *Registry) RegisterIfNew(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Seed preloads keys persisted by earlier runs.
func (r *Registry) Seed(keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		r.seen[k] = struct{}{}
	}
}

// Len reports how many distinct keys are registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
