package journal

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"

	"github.com/lixenwraith/farmcycle/core"
)

// writerBuffer is the number of entries held before Record starts dropping
const writerBuffer = 1024

type pending struct {
	entry   Entry
	payload any
}

// Writer persists entries on a background goroutine so callers never block on sqlite
type Writer struct {
	store   *Store
	session string

	ch       chan pending
	done     chan struct{}
	closeMu  sync.Mutex
	closed   bool
	written  atomic.Int64
	dropped  atomic.Int64
	failures atomic.Int64
}

// NewWriter starts the background writer for session
func NewWriter(store *Store, session string) *Writer {
	w := &Writer{
		store:   store,
		session: session,
		ch:      make(chan pending, writerBuffer),
		done:    make(chan struct{}),
	}
	core.Go(w.loop)
	return w
}

// Session returns the session id entries are recorded under
func (w *Writer) Session() string {
	return w.session
}

// Record queues an entry; payload is encoded as JSON on the writer goroutine
// Returns false when the buffer is full or the writer is closed
func (w *Writer) Record(e Entry, payload any) bool {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if w.closed {
		return false
	}

	e.Session = w.session
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	select {
	case w.ch <- pending{entry: e, payload: payload}:
		return true
	default:
		w.dropped.Add(1)
		return false
	}
}

func (w *Writer) loop() {
	defer close(w.done)
	for p := range w.ch {
		data, err := json.Marshal(p.payload)
		if err != nil {
			log.Printf("[WARN] journal payload for %s not encodable: %v", p.entry.Kind, err)
			data = []byte("null")
		}
		p.entry.Payload = data
		if err := w.store.Append(context.Background(), p.entry); err != nil {
			w.failures.Add(1)
			log.Printf("[ERROR] journal: %v", err)
			continue
		}
		w.written.Add(1)
	}
}

// Close flushes queued entries and stops the writer
func (w *Writer) Close() {
	w.closeMu.Lock()
	if !w.closed {
		w.closed = true
		close(w.ch)
	}
	w.closeMu.Unlock()
	<-w.done
}

// Stats returns written, dropped and failed counts
func (w *Writer) Stats() (written, dropped, failed int64) {
	return w.written.Load(), w.dropped.Load(), w.failures.Load()
}
