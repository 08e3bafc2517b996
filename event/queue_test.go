package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/farmcycle/parameter"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 1; i <= 3; i++ {
		q.Push(GameEvent{Type: EventNewDay, Payload: &NewDayPayload{Day: i}})
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d", q.Len())
	}

	got := q.Consume()
	if len(got) != 3 {
		t.Fatalf("consumed %d", len(got))
	}
	for i, ev := range got {
		if ev.Payload.(*NewDayPayload).Day != i+1 {
			t.Errorf("event %d out of order", i)
		}
	}
	if q.Consume() != nil || q.Len() != 0 {
		t.Error("queue not drained")
	}
}

func TestQueue_OverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventNewDay, Frame: int64(i)})
	}

	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("consumed %d, want %d", len(got), parameter.EventQueueSize)
	}
	if got[0].Frame != 10 || got[len(got)-1].Frame != int64(total-1) {
		t.Errorf("window = [%d, %d]", got[0].Frame, got[len(got)-1].Frame)
	}
	if q.Overwritten() != 10 {
		t.Errorf("Overwritten = %d, want 10", q.Overwritten())
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	const producers, each = 4, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(GameEvent{Type: EventCropHarvestRequest})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != producers*each {
		t.Errorf("consumed %d, want %d", got, producers*each)
	}
}

func TestRegistry_Names(t *testing.T) {
	InitRegistry()

	if GetEventName(EventCropStageChange) != "EventCropStageChange" {
		t.Errorf("name = %q", GetEventName(EventCropStageChange))
	}
	if et, ok := GetEventType("tick"); !ok || et != EventTick {
		t.Errorf("tick lookup = %v, %v", et, ok)
	}
	if _, ok := NewPayloadStruct(EventCropDrop).(*CropDropPayload); !ok {
		t.Error("drop payload not registered")
	}
	if NewPayloadStruct(EventDayTriggerRequest) != nil {
		t.Error("payload-less event returned a payload")
	}
}
