package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/event"
)

// Server is the HTTP observer API
// Reads come from the published snapshot; mutations are pushed onto the event queue
// and applied by the simulation goroutine on its next frame
type Server struct {
	queue     *event.EventQueue
	snapshots *SnapshotStore
	library   *crop.Library
	hub       *Hub
}

// New creates a server over the simulation's queue, snapshot store and crop library
func New(queue *event.EventQueue, snapshots *SnapshotStore, library *crop.Library, hub *Hub) *Server {
	return &Server{
		queue:     queue,
		snapshots: snapshots,
		library:   library,
		hub:       hub,
	}
}

// PlantRequest is the body of POST /plant
type PlantRequest struct {
	Crop string  `json:"crop" binding:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// SystemRequest is the body of POST /systems/:name
type SystemRequest struct {
	Enabled bool `json:"enabled"`
}

// SetupRouter builds the gin engine with every observer route
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/status", s.statusHandler)
	r.GET("/crops", s.cropsHandler)
	r.GET("/crops/:entity", s.cropHandler)
	r.GET("/inventory", s.inventoryHandler)
	r.GET("/definitions", s.definitionsHandler)
	r.GET("/definitions/:id", s.definitionHandler)

	r.POST("/day", s.dayHandler)
	r.POST("/plant", s.plantHandler)
	r.POST("/harvest/:entity", s.harvestHandler)
	r.POST("/systems/:name", s.systemHandler)

	if s.hub != nil {
		r.GET("/ws", s.websocketHandler)
	}
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	core.Go(func() {
		errCh <- srv.ListenAndServe()
	})
	log.Printf("[INFO] observer API listening on %s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) push(t event.EventType, payload any) {
	s.queue.Push(event.GameEvent{Type: t, Payload: payload})
}

func (s *Server) statusHandler(c *gin.Context) {
	snap := s.snapshots.Load()
	c.JSON(http.StatusOK, gin.H{
		"frame":        snap.Frame,
		"day":          snap.Day,
		"day_progress": snap.DayProgress,
		"paused":       snap.Paused,
		"crops":        len(snap.Crops),
		"metrics":      snap.Status,
	})
}

func (s *Server) cropsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshots.Load().Crops)
}

func parseEntity(c *gin.Context) (core.Entity, bool) {
	id, err := strconv.ParseUint(c.Param("entity"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity id"})
		return 0, false
	}
	return core.Entity(id), true
}

func (s *Server) cropHandler(c *gin.Context) {
	e, ok := parseEntity(c)
	if !ok {
		return
	}
	view, found := s.snapshots.Load().Crop(e)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such crop"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) inventoryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshots.Load().Inventory)
}

func (s *Server) definitionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.library.IDs())
}

func (s *Server) definitionHandler(c *gin.Context) {
	def, err := s.library.Get(c.Param("id"))
	if err != nil {
		s.definitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

func (s *Server) definitionError(c *gin.Context, err error) {
	if errors.Is(err, crop.ErrInvalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var loadErr *crop.DefinitionLoadError
	if errors.As(err, &loadErr) && loadErr.Suggestion != "" {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "suggestion": loadErr.Suggestion})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
}

func (s *Server) dayHandler(c *gin.Context) {
	s.push(event.EventDayTriggerRequest, nil)
	c.JSON(http.StatusAccepted, gin.H{"queued": "day"})
}

func (s *Server) plantHandler(c *gin.Context) {
	var req PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Resolve now so typos get a suggestion instead of a silent log line
	if _, err := s.library.Get(req.Crop); err != nil {
		s.definitionError(c, err)
		return
	}
	s.push(event.EventCropPlantRequest, &event.CropPlantRequestPayload{
		CropID:   req.Crop,
		Position: core.V3(req.X, req.Y, req.Z),
	})
	c.JSON(http.StatusAccepted, gin.H{"queued": "plant", "crop": req.Crop})
}

func (s *Server) harvestHandler(c *gin.Context) {
	e, ok := parseEntity(c)
	if !ok {
		return
	}
	view, found := s.snapshots.Load().Crop(e)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such crop"})
		return
	}
	if len(view.Fruit) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "nothing to harvest", "status": view.Status})
		return
	}
	s.push(event.EventCropHarvestRequest, &event.CropHarvestRequestPayload{Entity: e})
	c.JSON(http.StatusAccepted, gin.H{"queued": "harvest", "entity": e})
}

func (s *Server) systemHandler(c *gin.Context) {
	var req SystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.push(event.EventMetaSystemCommandRequest, &event.MetaSystemCommandPayload{
		SystemName: c.Param("name"),
		Enabled:    req.Enabled,
	})
	c.JSON(http.StatusAccepted, gin.H{"system": c.Param("name"), "enabled": req.Enabled})
}
