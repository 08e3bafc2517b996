package status

import (
	"math"
	"sync/atomic"
)

// MaxStringLen caps string metrics; fits "<crop id> - <x>,<y>"
const MaxStringLen = 48

// AtomicString is a bounded string readable from any goroutine
type AtomicString struct {
	v atomic.Value
}

// Store keeps at most MaxStringLen bytes of val
func (s *AtomicString) Store(val string) {
	s.v.Store(val[:min(len(val), MaxStringLen)])
}

func (s *AtomicString) Load() string {
	str, _ := s.v.Load().(string)
	return str
}

// AtomicFloat is a float64 kept as IEEE bits in a uint64
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) { f.bits.Store(math.Float64bits(val)) }
func (f *AtomicFloat) Get() float64    { return math.Float64frombits(f.bits.Load()) }
