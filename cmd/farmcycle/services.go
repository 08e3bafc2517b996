package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/lixenwraith/farmcycle/audio"
	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/journal"
	"github.com/lixenwraith/farmcycle/server"
	"github.com/lixenwraith/farmcycle/system"
)

// audioService owns the speaker
type audioService struct {
	engine *audio.Engine
	live   bool
}

func newAudioService(volume int) *audioService {
	cfg := audio.DefaultConfig()
	cfg.MasterVolume = float64(volume) / 100
	return &audioService{engine: audio.NewEngine(audio.LoadConfig(cfg))}
}

func (s *audioService) Name() string           { return "audio" }
func (s *audioService) Dependencies() []string { return nil }

func (s *audioService) Start(context.Context) error {
	if err := s.engine.Start(); err != nil {
		log.Printf("[WARN] audio start failed: %v (continuing without audio)", err)
		return nil
	}
	s.live = true
	return nil
}

func (s *audioService) Stop() error {
	s.engine.Stop()
	return nil
}

// Player returns nil when the engine did not start
func (s *audioService) Player() system.CuePlayer {
	if s == nil || !s.live {
		return nil
	}
	return s.engine
}

// journalService owns the sqlite journal and its writer
// A journal that cannot open is logged and left disabled
type journalService struct {
	path string
	seed int64

	db     *sql.DB
	writer *journal.Writer
}

func (s *journalService) Name() string           { return "journal" }
func (s *journalService) Dependencies() []string { return nil }

func (s *journalService) Start(ctx context.Context) error {
	db, err := journal.Open(s.path)
	if err != nil {
		log.Printf("[ERROR] journal disabled: %v", err)
		return nil
	}
	store := journal.NewStore(db)
	session, err := store.StartSession(ctx, s.seed)
	if err != nil {
		db.Close()
		log.Printf("[ERROR] journal disabled: %v", err)
		return nil
	}
	s.db = db
	s.writer = journal.NewWriter(store, session)
	log.Printf("[INFO] journal session %s at %s", session, s.path)
	return nil
}

func (s *journalService) Stop() error {
	if s.writer != nil {
		s.writer.Close()
		written, dropped, failed := s.writer.Stats()
		log.Printf("[INFO] journal closed: %d written, %d dropped, %d failed", written, dropped, failed)
		s.writer = nil
	}
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Recorder returns nil while the journal is disabled
func (s *journalService) Recorder() system.Recorder {
	if s == nil || s.writer == nil {
		return nil
	}
	return s.writer
}

// hubService fans frames out to websocket clients until the context ends
type hubService struct {
	hub *server.Hub
}

func (s *hubService) Name() string           { return "hub" }
func (s *hubService) Dependencies() []string { return nil }

func (s *hubService) Start(ctx context.Context) error {
	core.Go(func() { s.hub.Run(ctx) })
	return nil
}

func (s *hubService) Stop() error { return nil }

// observerService serves the HTTP API; /ws registrations need the hub running
type observerService struct {
	addr string
	api  *server.Server
}

func (s *observerService) Name() string           { return "observer" }
func (s *observerService) Dependencies() []string { return []string{"hub"} }

func (s *observerService) Start(ctx context.Context) error {
	core.Go(func() {
		if err := s.api.Serve(ctx, s.addr); err != nil {
			log.Printf("[ERROR] observer API: %v", err)
		}
	})
	return nil
}

func (s *observerService) Stop() error { return nil }
