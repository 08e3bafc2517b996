package status

import (
	"maps"
	"slices"
	"sync"
)

// Family holds the named metrics of one value type
// Pointers returned by Get stay valid for the life of the family, so callers
// cache them once and then read or write without touching the family lock
type Family[T any] struct {
	mu     sync.RWMutex
	values map[string]*T
}

func newFamily[T any]() *Family[T] {
	return &Family[T]{values: make(map[string]*T)}
}

// Get returns the metric named key, allocating a zero value on first use
func (f *Family[T]) Get(key string) *T {
	f.mu.RLock()
	v := f.values[key]
	f.mu.RUnlock()
	if v != nil {
		return v
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if v = f.values[key]; v == nil {
		v = new(T)
		f.values[key] = v
	}
	return v
}

func (f *Family[T]) Has(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[key] != nil
}

// Keys lists metric names in sorted order
func (f *Family[T]) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.values))
}

func (f *Family[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.values)
}

// collect reads every metric of f into out through read
func collect[T any](f *Family[T], out map[string]any, read func(*T) any) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for k, v := range f.values {
		out[k] = read(v)
	}
}
