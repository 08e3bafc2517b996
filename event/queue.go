package event

// @lixen: #dev{base(core)}

import (
	"sync/atomic"

	"github.com/lixenwraith/farmcycle/parameter"
)

// queueSlot pairs an event with a flag set once the producer finished writing it
type queueSlot struct {
	ev    GameEvent
	ready atomic.Bool
}

// EventQueue is the inbox of the simulation thread
// Any goroutine may Push (HTTP handlers, the view, the simulation itself)
// Only the simulation thread calls Consume
//
// Capacity is fixed; when full the oldest unread events are overwritten and counted
type EventQueue struct {
	slots       [parameter.EventQueueSize]queueSlot
	read        atomic.Uint64
	write       atomic.Uint64
	overwritten atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push reserves the next slot, writes the event, then marks it ready
func (q *EventQueue) Push(ev GameEvent) {
	var pos uint64
	for {
		pos = q.write.Load()
		if q.write.CompareAndSwap(pos, pos+1) {
			break
		}
	}

	s := &q.slots[pos&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Pull the reader forward past anything this write lapped
	end := pos + 1
	for {
		r := q.read.Load()
		if end-r <= parameter.EventQueueSize {
			return
		}
		floor := end - parameter.EventQueueSize
		if q.read.CompareAndSwap(r, floor) {
			q.overwritten.Add(floor - r)
			return
		}
	}
}

// Consume drains every ready event in push order
// Stops early at a slot whose producer has not finished writing
func (q *EventQueue) Consume() []GameEvent {
	for {
		r := q.read.Load()
		w := q.write.Load()
		if w == r {
			return nil
		}

		n := w - r
		if n > parameter.EventQueueSize {
			r = w - parameter.EventQueueSize
			n = parameter.EventQueueSize
		}

		out := make([]GameEvent, 0, n)
		for i := uint64(0); i < n; i++ {
			s := &q.slots[(r+i)&parameter.EventBufferMask]
			if !s.ready.Load() {
				break
			}
			out = append(out, s.ev)
			s.ready.Store(false)
		}

		if q.read.CompareAndSwap(r, r+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len is the approximate number of unread events
func (q *EventQueue) Len() int {
	r, w := q.read.Load(), q.write.Load()
	switch {
	case w <= r:
		return 0
	case w-r > parameter.EventQueueSize:
		return parameter.EventQueueSize
	default:
		return int(w - r)
	}
}

// Overwritten counts events lost to overflow since creation
func (q *EventQueue) Overwritten() uint64 {
	return q.overwritten.Load()
}
