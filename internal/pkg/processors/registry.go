package processors

import (
	"api-commonizer/internal/pkg/api"
	"sync"
)

// ClassifierRegistry records which classifiers have merge nodes. Entries are
// added exactly once, when the classifier's node is constructed, and may be
// read at any time afterwards, including while that node's commonization is
// still pending. There is no removal; the registry lives for one tree build.
type ClassifierRegistry struct {
	mu      sync.RWMutex
	classes map[api.FullName]struct{}
	aliases map[api.FullName]struct{}
}

func NewClassifierRegistry() *ClassifierRegistry {
	return &ClassifierRegistry{
		classes: map[api.FullName]struct{}{},
		aliases: map[api.FullName]struct{}{},
	}
}

func (r *ClassifierRegistry) RegisterClass(name api.FullName) {
	r.mu.Lock()
	r.classes[name] = struct{}{}
	r.mu.Unlock()
}

func (r *ClassifierRegistry) RegisterTypeAlias(name api.FullName) {
	r.mu.Lock()
	r.aliases[name] = struct{}{}
	r.mu.Unlock()
}

func (r *ClassifierRegistry) IsClassRegistered(name api.FullName) bool {
	r.mu.RLock()
	_, ok := r.classes[name]
	r.mu.RUnlock()
	return ok
}

func (r *ClassifierRegistry) IsTypeAliasRegistered(name api.FullName) bool {
	r.mu.RLock()
	_, ok := r.aliases[name]
	r.mu.RUnlock()
	return ok
}
