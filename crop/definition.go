package crop

import "fmt"

// Stage is one entry in a crop's ordered growth sequence
// A nil BeginStatus carries the previous status over unchanged
type Stage struct {
	Model       string  `toml:"model" json:"model" yaml:"model"`
	Duration    Range   `toml:"duration" json:"duration" yaml:"duration"`
	BeginStatus *Status `toml:"begin_status,omitempty" json:"begin_status,omitempty" yaml:"begin_status,omitempty"`
}

// Clone returns a deep copy
func (s Stage) Clone() Stage {
	if s.BeginStatus != nil {
		st := s.BeginStatus.Clone()
		s.BeginStatus = &st
	}
	return s
}

// Equal compares all fields including status payloads
func (s Stage) Equal(o Stage) bool {
	if s.Model != o.Model || s.Duration != o.Duration {
		return false
	}
	if (s.BeginStatus == nil) != (o.BeginStatus == nil) {
		return false
	}
	return s.BeginStatus == nil || s.BeginStatus.Equal(*o.BeginStatus)
}

// Definition is the immutable description of a crop type, loaded from a data file
// Shared read-only by every planted instance through the Library
type Definition struct {
	ID     string  `toml:"id" json:"id" yaml:"id"`
	Stages []Stage `toml:"stages" json:"stages" yaml:"stages"`
}

// CloneStages returns an owned copy of the stage sequence for an instance
func (d *Definition) CloneStages() []Stage {
	out := make([]Stage, len(d.Stages))
	for i, s := range d.Stages {
		out[i] = s.Clone()
	}
	return out
}

// Equal compares id and every stage
func (d *Definition) Equal(o *Definition) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.ID != o.ID || len(d.Stages) != len(o.Stages) {
		return false
	}
	for i := range d.Stages {
		if !d.Stages[i].Equal(o.Stages[i]) {
			return false
		}
	}
	return true
}

// Validate checks the definition is plantable
func (d *Definition) Validate() error {
	if len(d.Stages) == 0 {
		return ErrEmptyStages
	}
	for i, s := range d.Stages {
		if err := s.Duration.Validate(); err != nil {
			return fmt.Errorf("stage %d duration: %w", i, err)
		}
		if s.BeginStatus != nil {
			if err := s.BeginStatus.Validate(); err != nil {
				return fmt.Errorf("stage %d status: %w", i, err)
			}
		}
	}
	return nil
}

// --- Editing ---

// AddStage appends a stage; a zero stage gets the default duration
func (d *Definition) AddStage(s Stage) int {
	if s.Duration == (Range{}) {
		s.Duration = DefaultRange()
	}
	d.Stages = append(d.Stages, s)
	return len(d.Stages) - 1
}

// RemoveStage deletes the stage at index
func (d *Definition) RemoveStage(index int) error {
	if index < 0 || index >= len(d.Stages) {
		return fmt.Errorf("%w: %d of %d", ErrStageIndex, index, len(d.Stages))
	}
	d.Stages = append(d.Stages[:index], d.Stages[index+1:]...)
	return nil
}

// MoveStage shifts the stage at index by delta, clamped to the sequence bounds
// Returns the new index
func (d *Definition) MoveStage(index, delta int) (int, error) {
	if index < 0 || index >= len(d.Stages) {
		return index, fmt.Errorf("%w: %d of %d", ErrStageIndex, index, len(d.Stages))
	}
	target := index + delta
	if target < 0 {
		target = 0
	}
	if target > len(d.Stages)-1 {
		target = len(d.Stages) - 1
	}
	stage := d.Stages[index]
	if target < index {
		copy(d.Stages[target+1:index+1], d.Stages[target:index])
	} else {
		copy(d.Stages[index:target], d.Stages[index+1:target+1])
	}
	d.Stages[target] = stage
	return target, nil
}

// Example is the reference definition emitted by the crop tool
func Example() *Definition {
	fruit := Fruiting("::crate-color.glb", Drop("test", 1, 3))
	growing := Growing()
	return &Definition{
		ID: "Example",
		Stages: []Stage{
			{Model: "::crate-color.glb", Duration: Range{Min: 1, Max: 2}, BeginStatus: &growing},
			{Model: "::crate-color.glb", Duration: Range{Min: 1, Max: 2}},
			{Model: "::crate-color.glb", Duration: Range{Min: 1, Max: 2}, BeginStatus: &fruit},
		},
	}
}
