package event

import (
	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/crop"
)

// MetaSystemCommandPayload enables or disables a system by registry name
type MetaSystemCommandPayload struct {
	SystemName string `json:"system"`
	Enabled    bool   `json:"enabled"`
}

// NewDayPayload carries the day number that just began (first day is 1)
type NewDayPayload struct {
	Day    int  `json:"day"`
	Manual bool `json:"manual"`
}

// CropPlantRequestPayload plants a crop type at a position
type CropPlantRequestPayload struct {
	CropID   string    `json:"crop"`
	Position core.Vec3 `json:"position"`
}

// CropPlantedPayload reports a new instance
type CropPlantedPayload struct {
	Entity   core.Entity `json:"entity"`
	CropID   string      `json:"crop"`
	Name     string      `json:"name"`
	Position core.Vec3   `json:"position"`
}

// CropStageChangePayload reports a stage transition
type CropStageChangePayload struct {
	Entity   core.Entity     `json:"entity"`
	CropID   string          `json:"crop"`
	Name     string          `json:"name"`
	Position core.Vec3       `json:"position"`
	Index    int             `json:"index"`
	Status   crop.StatusKind `json:"status"`
}

// DropReason records why drops were emitted
type DropReason string

const (
	DropStatusExit DropReason = "status_exit"
	DropHarvest    DropReason = "harvest"
)

// CropDropPayload hands unresolved drops to the inventory
type CropDropPayload struct {
	Entity   core.Entity     `json:"entity"`
	CropID   string          `json:"crop"`
	Position core.Vec3       `json:"position"`
	Drops    []crop.ItemDrop `json:"drops"`
	Reason   DropReason      `json:"reason"`
}

// DespawnReason records why a crop was destroyed
type DespawnReason string

const (
	DespawnEndOfCycle DespawnReason = "end_of_cycle"
	DespawnDead       DespawnReason = "dead"
)

// CropDespawnPayload reports a destroyed instance
type CropDespawnPayload struct {
	Entity   core.Entity   `json:"entity"`
	CropID   string        `json:"crop"`
	Name     string        `json:"name"`
	Position core.Vec3     `json:"position"`
	Reason   DespawnReason `json:"reason"`
}

// CropHarvestRequestPayload targets a crop instance
type CropHarvestRequestPayload struct {
	Entity core.Entity `json:"entity"`
}

// ItemCollectedPayload reports a resolved drop amount
type ItemCollectedPayload struct {
	Source core.Entity `json:"source"`
	Item   crop.ItemID `json:"item"`
	Amount uint32      `json:"amount"`
	Total  uint64      `json:"total"`
}

// VfxSpawnRequestPayload spawns a named effect at a position
type VfxSpawnRequestPayload struct {
	ID       string    `json:"id"`
	Position core.Vec3 `json:"position"`
}
