package server

import (
	"log"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/event"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientAction is an inbound websocket command
type ClientAction struct {
	Action string      `json:"action"`
	Crop   string      `json:"crop,omitempty"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
	Z      float64     `json:"z,omitempty"`
	Entity core.Entity `json:"entity,omitempty"`
}

func (s *Server) websocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade: %v", err)
		return
	}

	s.hub.Register(conn)
	if err := s.hub.Send(conn, Message{Type: "snapshot", Frame: s.snapshots.Load().Frame, Payload: s.snapshots.Load()}); err != nil {
		log.Printf("[WARN] websocket initial snapshot: %v", err)
	}

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(conn)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var action ClientAction
		if err := json.Unmarshal(msg, &action); err != nil {
			log.Printf("[WARN] websocket message: %v", err)
			continue
		}
		s.applyAction(action)
	}
}

// applyAction maps a client command onto the event queue
func (s *Server) applyAction(a ClientAction) {
	switch a.Action {
	case "day":
		s.push(event.EventDayTriggerRequest, nil)
	case "plant":
		if _, err := s.library.Get(a.Crop); err != nil {
			log.Printf("[WARN] websocket plant: %v", err)
			return
		}
		s.push(event.EventCropPlantRequest, &event.CropPlantRequestPayload{
			CropID:   a.Crop,
			Position: core.V3(a.X, a.Y, a.Z),
		})
	case "harvest":
		if a.Entity != 0 {
			s.push(event.EventCropHarvestRequest, &event.CropHarvestRequestPayload{Entity: a.Entity})
		}
	default:
		log.Printf("[WARN] websocket unknown action %q", a.Action)
	}
}
