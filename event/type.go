package event

// @lixen: #dev{base(core),feature[crop(system)],feature[day(system)],feature[vfx(system)]}

// EventType represents the type of game event
type EventType int

const (
	// EventTick is reserved; zero is never emitted
	EventTick EventType = iota

	// === Meta Event ===

	// EventMetaSystemCommandRequest toggles a system on or off by name
	// Trigger: Debug tooling, observer API
	// Consumer: Every system | Payload: *MetaSystemCommandPayload
	EventMetaSystemCommandRequest

	// === Day Event ===

	// EventDayTriggerRequest requests an immediate day (debug shortcut)
	// Trigger: Terminal Enter key, observer API POST /day
	// Consumer: DaySystem | Payload: nil
	EventDayTriggerRequest

	// EventNewDay signals a new simulated day
	// Trigger: DaySystem on timer expiry or manual trigger
	// Consumer: CropSystem, JournalSystem, BroadcastSystem | Payload: *NewDayPayload
	EventNewDay

	// === Crop Event ===

	// EventCropPlantRequest asks for a crop to be planted from a definition id
	// Trigger: Startup plantings, observer API POST /plant
	// Consumer: CropSystem | Payload: *CropPlantRequestPayload
	EventCropPlantRequest

	// EventCropPlanted signals a new crop instance
	// Trigger: CropSystem after stage 0 is applied
	// Consumer: JournalSystem, BroadcastSystem | Payload: *CropPlantedPayload
	EventCropPlanted

	// EventCropStageChange signals a crop entered a new stage
	// Trigger: CropSystem on stage advance
	// Consumer: VfxSystem, AudioSystem, JournalSystem, BroadcastSystem | Payload: *CropStageChangePayload
	EventCropStageChange

	// EventCropDrop hands a drop list to the inventory
	// Trigger: CropSystem leaving Fruiting/Seeding, harvest
	// Consumer: DropSystem, JournalSystem | Payload: *CropDropPayload
	EventCropDrop

	// EventCropDespawn signals a crop instance was destroyed
	// Trigger: CropSystem on stage overrun or Dead status
	// Consumer: AudioSystem, JournalSystem, BroadcastSystem | Payload: *CropDespawnPayload
	EventCropDespawn

	// EventCropHarvestRequest collects an attached fruit payload
	// Trigger: Observer API POST /harvest/:entity
	// Consumer: CropSystem | Payload: *CropHarvestRequestPayload
	EventCropHarvestRequest

	// === Item Event ===

	// EventItemCollected signals resolved drop amounts were credited
	// Trigger: DropSystem
	// Consumer: AudioSystem, JournalSystem, BroadcastSystem | Payload: *ItemCollectedPayload
	EventItemCollected

	// === VFX Event ===

	// EventVfxSpawnRequest spawns a named one-shot effect
	// Trigger: VfxSystem on stage change
	// Consumer: VfxSystem | Payload: *VfxSpawnRequestPayload
	EventVfxSpawnRequest
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
