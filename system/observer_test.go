package system

import (
	"testing"

	"github.com/lixenwraith/farmcycle/audio"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/journal"
	"github.com/lixenwraith/farmcycle/server"
)

type fakePlayer struct{ cues []audio.Cue }

func (p *fakePlayer) Play(c audio.Cue) bool {
	p.cues = append(p.cues, c)
	return true
}

type fakeRecorder struct {
	entries  []journal.Entry
	payloads []any
	full     bool
}

func (r *fakeRecorder) Record(e journal.Entry, payload any) bool {
	if r.full {
		return false
	}
	r.entries = append(r.entries, e)
	r.payloads = append(r.payloads, payload)
	return true
}

type fakePublisher struct{ kinds []string }

func (p *fakePublisher) Publish(kind string, frame int64, payload any) {
	p.kinds = append(p.kinds, kind)
}

func TestAudio_CuesFollowLifecycle(t *testing.T) {
	player := &fakePlayer{}
	h := newHarness(t, longDay, func(w *engine.World) engine.System { return NewAudioSystem(w, player) })
	h.plant(t, fruitingDef())

	h.tick()
	h.tick()

	want := []audio.Cue{audio.CueSprout, audio.CueSprout, audio.CueWilt, audio.CueCoin}
	if len(player.cues) != len(want) {
		t.Fatalf("cues = %v, want %v", player.cues, want)
	}
	for i := range want {
		if player.cues[i] != want[i] {
			t.Errorf("cue %d = %v, want %v", i, player.cues[i], want[i])
		}
	}
}

func TestAudio_NilPlayerInert(t *testing.T) {
	h := newHarness(t, longDay, func(w *engine.World) engine.System { return NewAudioSystem(w, nil) })
	h.plant(t, fruitingDef())
	h.world.PushEvent(event.EventMetaSystemCommandRequest, &event.MetaSystemCommandPayload{SystemName: "audio", Enabled: true})
	h.tick()
	h.tick()
}

func TestJournal_RecordsLifecycle(t *testing.T) {
	rec := &fakeRecorder{}
	h := newHarness(t, longDay, func(w *engine.World) engine.System { return NewJournalSystem(w, rec) })
	e := h.plant(t, fruitingDef())

	h.tick()
	h.tick()

	kinds := make(map[string]int)
	for _, entry := range rec.entries {
		kinds[entry.Kind]++
	}
	want := map[string]int{
		"EventCropPlanted":     1,
		"EventNewDay":          2,
		"EventCropStageChange": 2,
		"EventCropDrop":        1,
		"EventCropDespawn":     1,
		"EventItemCollected":   1,
	}
	for k, n := range want {
		if kinds[k] != n {
			t.Errorf("%s recorded %d times, want %d", k, kinds[k], n)
		}
	}

	for _, entry := range rec.entries {
		switch entry.Kind {
		case "EventCropPlanted":
			if entry.Day != 0 || entry.Entity != e || entry.CropID != "test_corn" {
				t.Errorf("planted entry = %+v", entry)
			}
		case "EventCropDespawn":
			if entry.Day != 2 || entry.Entity != e {
				t.Errorf("despawn entry = %+v", entry)
			}
		}
		if entry.Kind != "EventCropPlanted" && entry.Frame == 0 {
			t.Errorf("%s entry has no frame", entry.Kind)
		}
	}
}

func TestJournal_CountsDroppedEntries(t *testing.T) {
	rec := &fakeRecorder{full: true}
	h := newHarness(t, longDay, func(w *engine.World) engine.System { return NewJournalSystem(w, rec) })
	h.tick()

	if got := h.world.Resources.Status.Ints.Get("journal.dropped").Load(); got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
}

func TestBroadcast_PublishesSnapshots(t *testing.T) {
	store := server.NewSnapshotStore()
	pub := &fakePublisher{}
	h := newHarness(t, longDay, func(w *engine.World) engine.System {
		return NewBroadcastSystem(w, store, pub, nil)
	})
	e := h.plant(t, fruitingDef())
	h.step()

	snap := store.Load()
	if snap.Frame != 1 || len(snap.Crops) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	view := snap.Crops[0]
	if view.Entity != e || view.Model != "::sprout.glb" || view.Status != "Growing" || view.Stages != 3 {
		t.Errorf("view = %+v", view)
	}
	if len(pub.kinds) != 1 || pub.kinds[0] != "EventCropPlanted" {
		t.Errorf("published = %v", pub.kinds)
	}

	// Quiet frames reuse the snapshot until the refresh interval
	for i := 0; i < 29; i++ {
		h.step()
	}
	if store.Load() != snap {
		t.Fatal("snapshot replaced without changes")
	}
	h.step()
	if got := store.Load(); got == snap || got.Frame != 31 {
		t.Errorf("refresh frame = %d", got.Frame)
	}
}

func TestBroadcast_FruitAndInventory(t *testing.T) {
	store := server.NewSnapshotStore()
	h := newHarness(t, longDay, func(w *engine.World) engine.System {
		return NewBroadcastSystem(w, store, nil, nil)
	})
	e := h.plant(t, fruitingDef())
	h.tick()

	view, ok := store.Load().Crop(e)
	if !ok || view.Status != "Fruiting" || len(view.Fruit) != 1 {
		t.Fatalf("view = %+v ok=%v", view, ok)
	}

	h.world.PushEvent(event.EventCropHarvestRequest, &event.CropHarvestRequestPayload{Entity: e})
	h.step()

	snap := store.Load()
	if len(snap.Inventory) != 1 || snap.Inventory[0].Amount != 2 {
		t.Errorf("inventory = %+v", snap.Inventory)
	}
	if view, _ := snap.Crop(e); !view.Harvested || len(view.Fruit) != 0 {
		t.Errorf("view after harvest = %+v", view)
	}
}
