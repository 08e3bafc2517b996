package crop

import "fmt"

// Range is an inclusive unsigned bound pair used for randomized durations and drop amounts
type Range struct {
	Min uint32 `toml:"min" json:"min" yaml:"min"`
	Max uint32 `toml:"max" json:"max" yaml:"max"`
}

// Sampler yields uniformly distributed integers in [min, max]
// engine.RandomResource is the production implementation
type Sampler interface {
	UniformInt(min, max uint32) uint32
}

// DefaultRange is the range an unspecified duration takes
func DefaultRange() Range {
	return Range{Min: 0, Max: 1}
}

// Fixed returns a range that always samples to n
func Fixed(n uint32) Range {
	return Range{Min: n, Max: n}
}

// Validate reports ErrInvalidRange when Min exceeds Max
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Get samples the range; min, max, and every value between are valid results
func (r Range) Get(s Sampler) uint32 {
	if r.Max <= r.Min {
		return r.Min
	}
	return s.UniformInt(r.Min, r.Max)
}

func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d..=%d", r.Min, r.Max)
}
