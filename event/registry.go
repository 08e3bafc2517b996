package event

import (
	"reflect"
	"strings"
	"sync"
)

type eventInfo struct {
	name    string
	payload reflect.Type // nil for events without payload
}

var (
	registry     = make(map[EventType]eventInfo)
	byName       = make(map[string]EventType)
	registryOnce sync.Once
)

// RegisterType binds a name and payload shape to et
// payload is a pointer to a zero payload, or nil
func RegisterType(name string, et EventType, payload any) {
	info := eventInfo{name: name}
	if payload != nil {
		info.payload = reflect.Indirect(reflect.ValueOf(payload)).Type()
	}
	registry[et] = info
	byName[name] = et
}

// GetEventType resolves a registered name; "tick" matches in any case
func GetEventType(name string) (EventType, bool) {
	if strings.EqualFold(name, "tick") {
		return EventTick, true
	}
	et, ok := byName[name]
	return et, ok
}

func GetEventName(et EventType) string {
	if et == EventTick {
		return "Tick"
	}
	return registry[et].name
}

// NewPayloadStruct allocates a zero payload for et, nil when et carries none
func NewPayloadStruct(et EventType) any {
	info, ok := registry[et]
	if !ok || info.payload == nil {
		return nil
	}
	return reflect.New(info.payload).Interface()
}

// InitRegistry registers every event; repeat calls are no-ops
func InitRegistry() {
	registryOnce.Do(func() {
		for _, r := range []struct {
			et      EventType
			name    string
			payload any
		}{
			{EventMetaSystemCommandRequest, "EventMetaSystemCommandRequest", &MetaSystemCommandPayload{}},
			{EventDayTriggerRequest, "EventDayTriggerRequest", nil},
			{EventNewDay, "EventNewDay", &NewDayPayload{}},
			{EventCropPlantRequest, "EventCropPlantRequest", &CropPlantRequestPayload{}},
			{EventCropPlanted, "EventCropPlanted", &CropPlantedPayload{}},
			{EventCropStageChange, "EventCropStageChange", &CropStageChangePayload{}},
			{EventCropDrop, "EventCropDrop", &CropDropPayload{}},
			{EventCropDespawn, "EventCropDespawn", &CropDespawnPayload{}},
			{EventCropHarvestRequest, "EventCropHarvestRequest", &CropHarvestRequestPayload{}},
			{EventItemCollected, "EventItemCollected", &ItemCollectedPayload{}},
			{EventVfxSpawnRequest, "EventVfxSpawnRequest", &VfxSpawnRequestPayload{}},
		} {
			RegisterType(r.name, r.et, r.payload)
		}
	})
}
