package loader

import (
	"sort"
	"sync"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// CallbackRegistry maps names used in documents ("afterStateUpdated:
// order.line_total") to Go callbacks. It is safe for concurrent use.
type CallbackRegistry struct {
	mu        sync.RWMutex
	callbacks map[string]schema.Callback
}

func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{callbacks: make(map[string]schema.Callback)}
}

// Register adds or replaces a callback. Nil callbacks are ignored.
func (r *CallbackRegistry) Register(name string, cb schema.Callback) *CallbackRegistry {
	if name == "" || cb == nil {
		return r
	}
	r.mu.Lock()
	r.callbacks[name] = cb
	r.mu.Unlock()
	return r
}

func (r *CallbackRegistry) Lookup(name string) (schema.Callback, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.callbacks[name]
	return cb, ok
}

// Names returns the registered names, sorted.
func (r *CallbackRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.callbacks))
	for name := range r.callbacks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
