package cache

import "sync"

// Registry memoises expensive handles (loaded models, pipelines) per
// configuration key. Entries live for the registry's lifetime and are never
// evicted; the registry itself is injected so its lifetime is explicit
// rather than ambient process state.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// GetOrCreate returns the memoised value for key, invoking build at most
// once per key. A build error is returned without caching, so the next call
// retries.
func (r *Registry[T]) GetOrCreate(key string, build func() (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if value, ok := r.entries[key]; ok {
		return value, nil
	}
	value, err := build()
	if err != nil {
		var zero T
		return zero, err
	}
	r.entries[key] = value
	return value, nil
}

// Len reports how many configurations are currently cached.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
