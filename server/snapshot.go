package server

import (
	"sync/atomic"

	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/engine"
)

// CropView is the read-only observer view of one crop instance
type CropView struct {
	Entity    core.Entity     `json:"entity"`
	Name      string          `json:"name"`
	CropID    string          `json:"crop"`
	Position  core.Vec3       `json:"position"`
	Index     int             `json:"index"`
	Stages    int             `json:"stages"`
	Timer     uint32          `json:"timer"`
	Status    string          `json:"status"`
	Model     string          `json:"model"`
	Fruit     []crop.ItemDrop `json:"fruit,omitempty"`
	Harvested bool            `json:"harvested"`
}

// Snapshot is a frame-consistent copy of the simulation, published by the simulation goroutine
type Snapshot struct {
	Frame       int64              `json:"frame"`
	Day         int                `json:"day"`
	DayProgress float64            `json:"day_progress"`
	Paused      bool               `json:"paused"`
	Crops       []CropView         `json:"crops"`
	Inventory   []engine.ItemStack `json:"inventory"`
	Status      map[string]any     `json:"status"`
}

// Crop finds a crop by entity
func (s *Snapshot) Crop(e core.Entity) (CropView, bool) {
	for _, c := range s.Crops {
		if c.Entity == e {
			return c, true
		}
	}
	return CropView{}, false
}

// SnapshotStore hands the latest snapshot to readers without locking the simulation
type SnapshotStore struct {
	ptr atomic.Pointer[Snapshot]
}

// NewSnapshotStore creates a store holding an empty snapshot
func NewSnapshotStore() *SnapshotStore {
	s := &SnapshotStore{}
	s.ptr.Store(&Snapshot{Status: map[string]any{}})
	return s
}

// Publish replaces the current snapshot; the value must not be mutated afterwards
func (s *SnapshotStore) Publish(snap *Snapshot) {
	s.ptr.Store(snap)
}

// Load returns the current snapshot
func (s *SnapshotStore) Load() *Snapshot {
	return s.ptr.Load()
}
