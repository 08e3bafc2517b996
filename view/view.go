package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/server"
)

// Controls are host operations the view triggers outside the event queue
type Controls struct {
	TogglePause func() bool
	ToggleMute  func() bool
	CropIDs     func() []string
}

// View draws the farm plot from published snapshots and turns keys into requests
type View struct {
	screen    tcell.Screen
	snapshots *server.SnapshotStore
	queue     *event.EventQueue
	controls  Controls

	width, height int
	message       string
	messageAt     time.Time
}

// New initialises screen and installs its finaliser as the crash reset
func New(screen tcell.Screen, snapshots *server.SnapshotStore, queue *event.EventQueue, controls Controls) (*View, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashReset(screen.Fini)

	v := &View{
		screen:    screen,
		snapshots: snapshots,
		queue:     queue,
		controls:  controls,
	}
	v.width, v.height = screen.Size()
	return v, nil
}

// NewTerminal creates a view on the process terminal
func NewTerminal(snapshots *server.SnapshotStore, queue *event.EventQueue, controls Controls) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, snapshots, queue, controls)
}

// Close restores the terminal
func (v *View) Close() {
	core.SetCrashReset(nil)
	v.screen.Fini()
}

// Run draws at interval until ctx is cancelled or the user quits
// Returns true when the user asked to quit
func (v *View) Run(ctx context.Context, interval time.Duration) bool {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})
	defer close(quit)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return false
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return true
			}
		case <-ticker.C:
			v.Draw()
		}
	}
}

// HandleEvent applies one terminal event, returning false on quit
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		v.queue.Push(event.GameEvent{Type: event.EventDayTriggerRequest})
		v.notify("day requested")
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	switch {
	case r == 'q':
		return false
	case r == 'p':
		if v.controls.TogglePause != nil {
			if v.controls.TogglePause() {
				v.notify("paused")
			} else {
				v.notify("resumed")
			}
		}
	case r == 'm':
		if v.controls.ToggleMute != nil {
			if v.controls.ToggleMute() {
				v.notify("sound on")
			} else {
				v.notify("sound off")
			}
		}
	case r == 'h':
		v.harvestAll()
	case r >= '1' && r <= '9':
		v.plantNth(int(r - '1'))
	}
	return true
}

func (v *View) notify(msg string) {
	v.message = msg
	v.messageAt = time.Now()
}

// harvestAll requests a harvest for every crop carrying fruit
func (v *View) harvestAll() {
	n := 0
	for _, c := range v.snapshots.Load().Crops {
		if len(c.Fruit) == 0 {
			continue
		}
		v.queue.Push(event.GameEvent{
			Type:    event.EventCropHarvestRequest,
			Payload: &event.CropHarvestRequestPayload{Entity: c.Entity},
		})
		n++
	}
	v.notify(fmt.Sprintf("harvesting %d crops", n))
}

// plantNth plants the nth known crop id on the next plot slot
func (v *View) plantNth(n int) {
	if v.controls.CropIDs == nil {
		return
	}
	ids := v.controls.CropIDs()
	if n >= len(ids) {
		return
	}
	slot := len(v.snapshots.Load().Crops)
	v.queue.Push(event.GameEvent{
		Type: event.EventCropPlantRequest,
		Payload: &event.CropPlantRequestPayload{
			CropID:   ids[n],
			Position: PlotPosition(slot),
		},
	})
	v.notify("planting " + ids[n])
}

// PlotPosition lays slots out in rows of plotColumns, plotSpacing apart
func PlotPosition(slot int) core.Vec3 {
	return core.V3(float64(slot%plotColumns)*plotSpacing, 0, float64(slot/plotColumns)*plotSpacing)
}

const (
	plotColumns = 6
	plotSpacing = 3.0
	messageTTL  = 3 * time.Second
)

var (
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGrowing = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFruit   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleSeed    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleDead    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func statusStyle(status string) tcell.Style {
	switch status {
	case "Fruiting":
		return styleFruit
	case "Seeding":
		return styleSeed
	case "Dead":
		return styleDead
	default:
		return styleGrowing
	}
}

// Draw renders the current snapshot
func (v *View) Draw() {
	snap := v.snapshots.Load()
	v.screen.Clear()

	header := fmt.Sprintf("Day %d  %s  frame %d", snap.Day, progressBar(snap.DayProgress, 20), snap.Frame)
	if snap.Paused {
		header += "  [PAUSED]"
	}
	v.drawText(0, 0, styleHeader, header)

	y := 2
	v.drawText(0, y, styleDim, fmt.Sprintf("%-24s %-7s %-5s %-9s %s", "crop", "stage", "timer", "status", "model"))
	y++
	for _, c := range snap.Crops {
		if y >= v.height-3 {
			v.drawText(0, y, styleDim, fmt.Sprintf("... %d more", len(snap.Crops)-(y-3)))
			y++
			break
		}
		stage := fmt.Sprintf("%d/%d", c.Index+1, c.Stages)
		v.drawText(0, y, styleText, fmt.Sprintf("%-24s %-7s %-5d", truncate(c.Name, 24), stage, c.Timer))
		v.drawText(38, y, statusStyle(c.Status), fmt.Sprintf("%-9s", c.Status))
		v.drawText(48, y, styleDim, c.Model)
		y++
	}

	y++
	v.drawText(0, y, styleHeader, "inventory: "+inventoryLine(snap))

	if v.message != "" && time.Since(v.messageAt) < messageTTL {
		v.drawText(0, v.height-2, styleText, v.message)
	}
	v.drawText(0, v.height-1, styleDim, "enter: next day  1-9: plant  h: harvest  p: pause  m: mute  q: quit")
	v.screen.Show()
}

func (v *View) drawText(x, y int, style tcell.Style, text string) {
	if y < 0 || y >= v.height {
		return
	}
	for _, r := range text {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func inventoryLine(snap *server.Snapshot) string {
	if len(snap.Inventory) == 0 {
		return "empty"
	}
	parts := make([]string, 0, len(snap.Inventory))
	for _, s := range snap.Inventory {
		parts = append(parts, fmt.Sprintf("%s x%d", s.Item, s.Amount))
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
