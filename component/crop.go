package component

import (
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/parameter"
)

// CropComponent is the live lifecycle state of one planted crop
// Stages is an owned copy of the definition so instances never share mutable state
type CropComponent struct {
	ID     string
	Stages []crop.Stage
	Index  int    // Current stage; len(Stages) means the cycle is over
	Timer  uint32 // Ticks remaining in the current stage
	Status crop.Status

	// Harvested is set when the fruit payload of the current status was collected by hand
	Harvested bool
}

// NewCropComponent creates an instance at stage 0 with the default status and timer
// The caller applies stage 0 (model, status, timer) when it spawns the entity
func NewCropComponent(def *crop.Definition) (CropComponent, error) {
	if def == nil || len(def.Stages) == 0 {
		return CropComponent{}, crop.ErrEmptyStages
	}
	return CropComponent{
		ID:     def.ID,
		Stages: def.CloneStages(),
		Status: crop.Growing(),
		Timer:  parameter.CropDefaultTimer,
	}, nil
}

// Stage returns the current stage, false once the index has run past the end
func (c *CropComponent) Stage() (crop.Stage, bool) {
	if c.Index < 0 || c.Index >= len(c.Stages) {
		return crop.Stage{}, false
	}
	return c.Stages[c.Index], true
}

// CropFruitComponent is attached while the crop is Fruiting or Seeding
type CropFruitComponent struct {
	Drops []crop.ItemDrop
}
