package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/audio"
	"github.com/lixenwraith/farmcycle/config"
	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
	"github.com/lixenwraith/farmcycle/physics"
	"github.com/lixenwraith/farmcycle/server"
	"github.com/lixenwraith/farmcycle/service"
	"github.com/lixenwraith/farmcycle/system"
	"github.com/lixenwraith/farmcycle/view"
)

var (
	configPath = flag.String("config", config.DefaultPath, "settings file, created with defaults if missing")
	debugFlag  = flag.Bool("debug", false, "write logs/farmcycle.log and echo every event")
	headless   = flag.Bool("headless", false, "run without the terminal view")
	seedFlag   = flag.Int64("seed", 0, "rng seed (overrides config)")
	httpAddr   = flag.String("http", "", "observer API listen address, e.g. :8080 (overrides config)")
	journalDB  = flag.String("journal", "", "sqlite journal path (overrides config, \"off\" disables)")
	noAudio    = flag.Bool("no-audio", false, "disable sound cues")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "farmcycle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	event.InitRegistry()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Content and collaborators
	library := crop.NewLibrary(cfg.DataRoot).WithEmbedded(asset.DefaultCropData)
	res := engine.NewResource(cfg.Seed, library, asset.NewFileLoader(cfg.AssetRoot), physics.NewHullRegistry())
	res.Day.Length = cfg.DayLength()
	world := engine.NewWorld(res)
	log.Printf("[INFO] farm starting: seed=%d day=%v %s", res.Rand.Seed(), res.Day.Length, library)

	snapshots := server.NewSnapshotStore()
	hub := server.NewHub()

	// Host services start before the systems that use them
	services := service.NewManager()
	var audioSvc *audioService
	if cfg.AudioEnabled {
		audioSvc = newAudioService(cfg.AudioVolume)
		services.Register(audioSvc)
	}
	var journalSvc *journalService
	if cfg.JournalPath != "" {
		journalSvc = &journalService{path: cfg.JournalPath, seed: cfg.Seed}
		services.Register(journalSvc)
	}
	if cfg.HTTPAddr != "" {
		services.Register(&hubService{hub: hub})
		services.Register(&observerService{
			addr: cfg.HTTPAddr,
			api:  server.New(res.Event.Queue, snapshots, library, hub),
		})
	}
	if err := services.StartAll(ctx); err != nil {
		return err
	}
	defer func() {
		if err := services.StopAll(); err != nil {
			log.Printf("[ERROR] %v", err)
		}
	}()

	player := audioSvc.Player()
	recorder := journalSvc.Recorder()

	var sched *engine.ClockScheduler
	paused := func() bool { return sched != nil && sched.IsPaused() }

	world.AddSystem(system.NewDaySystem(world))
	world.AddSystem(system.NewCropSystem(world))
	world.AddSystem(system.NewDropSystem(world))
	world.AddSystem(system.NewModelSystem(world))
	world.AddSystem(system.NewVfxSystem(world))
	world.AddSystem(system.NewAudioSystem(world, player))
	world.AddSystem(system.NewJournalSystem(world, recorder))
	world.AddSystem(system.NewBroadcastSystem(world, snapshots, hub, paused))

	sched = engine.NewClockScheduler(world, engine.NewPausableClock(engine.NewSystemClock()), parameter.FrameUpdateInterval)
	if *debugFlag {
		sched.Router().Observe(func(ev event.GameEvent) {
			log.Printf("[DEBUG] frame %d %s %+v", ev.Frame, event.GetEventName(ev.Type), ev.Payload)
		})
	}

	for _, p := range cfg.Plantings {
		world.PushEvent(event.EventCropPlantRequest, &event.CropPlantRequestPayload{
			CropID:   p.Crop,
			Position: core.V3(p.X, p.Y, p.Z),
		})
	}

	simDone := make(chan struct{})
	core.Go(func() {
		defer close(simDone)
		sched.Run(ctx)
	})

	if *headless {
		<-ctx.Done()
	} else {
		v, err := view.NewTerminal(snapshots, res.Event.Queue, view.Controls{
			TogglePause: sched.TogglePause,
			ToggleMute:  toggleMute(player),
			CropIDs:     library.IDs,
		})
		if err != nil {
			stop()
			<-simDone
			return fmt.Errorf("terminal: %w", err)
		}
		v.Run(ctx, parameter.ViewRefreshInterval)
		v.Close()
		stop()
	}

	<-simDone
	log.Printf("[INFO] farm stopped after %d frames on day %d", sched.Frame(), res.Day.Day)
	return nil
}

// applyFlags lets explicitly set flags win over the settings file
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seedFlag
		case "http":
			cfg.HTTPAddr = *httpAddr
		case "journal":
			cfg.JournalPath = *journalDB
		case "no-audio":
			cfg.AudioEnabled = !*noAudio
		}
	})
	if cfg.JournalPath == "off" {
		cfg.JournalPath = ""
	}
}

func toggleMute(player system.CuePlayer) func() bool {
	if e, ok := player.(*audio.Engine); ok {
		return e.ToggleMute
	}
	return nil
}
