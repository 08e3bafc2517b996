package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/event"
)

func newTestServer(t *testing.T) (*Server, *event.EventQueue, *SnapshotStore) {
	t.Helper()
	q := event.NewEventQueue()
	snaps := NewSnapshotStore()
	lib := crop.NewLibrary(t.TempDir()).WithEmbedded(asset.DefaultCropData)
	return New(q, snaps, lib, nil), q, snaps
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.SetupRouter().ServeHTTP(w, req)
	return w
}

func TestServer_Status(t *testing.T) {
	s, _, snaps := newTestServer(t)
	snaps.Publish(&Snapshot{Frame: 12, Day: 3, Crops: []CropView{{Entity: 1}}, Status: map[string]any{"day.count": 3}})

	w := do(t, s, http.MethodGet, "/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["day"].(float64) != 3 || body["crops"].(float64) != 1 {
		t.Errorf("body = %v", body)
	}
}

func TestServer_CropLookup(t *testing.T) {
	s, _, snaps := newTestServer(t)
	snaps.Publish(&Snapshot{Crops: []CropView{{Entity: 7, CropID: "corn", Status: "Growing"}}})

	if w := do(t, s, http.MethodGet, "/crops/7", ""); w.Code != http.StatusOK {
		t.Errorf("existing crop code = %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/crops/8", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing crop code = %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/crops/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id code = %d", w.Code)
	}
}

func TestServer_PlantQueuesRequest(t *testing.T) {
	s, q, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/plant", `{"crop":"corn","x":1.5,"z":-2}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("code = %d body=%s", w.Code, w.Body.String())
	}

	events := q.Consume()
	if len(events) != 1 || events[0].Type != event.EventCropPlantRequest {
		t.Fatalf("queued = %+v", events)
	}
	p := events[0].Payload.(*event.CropPlantRequestPayload)
	if p.CropID != "corn" || p.Position != core.V3(1.5, 0, -2) {
		t.Errorf("payload = %+v", p)
	}
}

func TestServer_PlantUnknownSuggests(t *testing.T) {
	s, q, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/plant", `{"crop":"corm"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"suggestion":"corn"`)) {
		t.Errorf("body = %s", w.Body.String())
	}
	if q.Len() != 0 {
		t.Errorf("unknown crop should not queue, len = %d", q.Len())
	}
}

func TestServer_PlantRequiresCrop(t *testing.T) {
	s, _, _ := newTestServer(t)
	if w := do(t, s, http.MethodPost, "/plant", `{"x":1}`); w.Code != http.StatusBadRequest {
		t.Errorf("code = %d", w.Code)
	}
}

func TestServer_PlantRejectsPathInCropID(t *testing.T) {
	s, q, _ := newTestServer(t)
	w := do(t, s, http.MethodPost, "/plant", `{"crop":"../../../x"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, body = %s", w.Code, w.Body.String())
	}
	if q.Len() != 0 {
		t.Errorf("queued %d events for a rejected id", q.Len())
	}
}

func TestServer_Harvest(t *testing.T) {
	s, q, snaps := newTestServer(t)
	snaps.Publish(&Snapshot{Crops: []CropView{
		{Entity: 1, Status: "Growing"},
		{Entity: 2, Status: "Fruiting", Fruit: []crop.ItemDrop{crop.Drop("corn", 1, 2)}},
	}})

	if w := do(t, s, http.MethodPost, "/harvest/1", ""); w.Code != http.StatusConflict {
		t.Errorf("growing crop code = %d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/harvest/2", ""); w.Code != http.StatusAccepted {
		t.Errorf("fruiting crop code = %d", w.Code)
	}

	events := q.Consume()
	if len(events) != 1 || events[0].Type != event.EventCropHarvestRequest {
		t.Fatalf("queued = %+v", events)
	}
	if p := events[0].Payload.(*event.CropHarvestRequestPayload); p.Entity != 2 {
		t.Errorf("entity = %d", p.Entity)
	}
}

func TestServer_DayAndSystems(t *testing.T) {
	s, q, _ := newTestServer(t)

	do(t, s, http.MethodPost, "/day", "")
	do(t, s, http.MethodPost, "/systems/crop", `{"enabled":false}`)

	events := q.Consume()
	if len(events) != 2 {
		t.Fatalf("queued %d events, want 2", len(events))
	}
	if events[0].Type != event.EventDayTriggerRequest {
		t.Errorf("first = %v", events[0].Type)
	}
	meta := events[1].Payload.(*event.MetaSystemCommandPayload)
	if meta.SystemName != "crop" || meta.Enabled {
		t.Errorf("meta = %+v", meta)
	}
}

func TestServer_Definitions(t *testing.T) {
	s, _, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/definitions", "")
	var ids []string
	if err := json.Unmarshal(w.Body.Bytes(), &ids); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ids) < 2 {
		t.Errorf("ids = %v", ids)
	}

	w = do(t, s, http.MethodGet, "/definitions/corn", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var def crop.Definition
	if err := json.Unmarshal(w.Body.Bytes(), &def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.ID != "corn" || len(def.Stages) == 0 {
		t.Errorf("def = %+v", def)
	}
}

func TestServer_ApplyAction(t *testing.T) {
	s, q, _ := newTestServer(t)

	s.applyAction(ClientAction{Action: "day"})
	s.applyAction(ClientAction{Action: "plant", Crop: "beets", X: 2})
	s.applyAction(ClientAction{Action: "plant", Crop: "nope"})
	s.applyAction(ClientAction{Action: "harvest", Entity: 4})
	s.applyAction(ClientAction{Action: "dance"})

	events := q.Consume()
	want := []event.EventType{event.EventDayTriggerRequest, event.EventCropPlantRequest, event.EventCropHarvestRequest}
	if len(events) != len(want) {
		t.Fatalf("queued %d events, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Type != want[i] {
			t.Errorf("event %d = %v, want %v", i, ev.Type, want[i])
		}
	}
}
