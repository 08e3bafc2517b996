package status

import "sync/atomic"

// Registry groups the metric families of one world
// Systems look their metrics up at construction and write them during Update
type Registry struct {
	Bools   *Family[atomic.Bool]
	Ints    *Family[atomic.Int64]
	Floats  *Family[AtomicFloat]
	Strings *Family[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   newFamily[atomic.Bool](),
		Ints:    newFamily[atomic.Int64](),
		Floats:  newFamily[AtomicFloat](),
		Strings: newFamily[AtomicString](),
	}
}

// TotalCount is the number of metrics across all families
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Snapshot copies every metric value into a plain map keyed by name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	collect(r.Bools, out, func(v *atomic.Bool) any { return v.Load() })
	collect(r.Ints, out, func(v *atomic.Int64) any { return v.Load() })
	collect(r.Floats, out, func(v *AtomicFloat) any { return v.Get() })
	collect(r.Strings, out, func(v *AtomicString) any { return v.Load() })
	return out
}
