package asset

import (
	"fmt"
	"os"
	"sync"

	"github.com/lixenwraith/farmcycle/core"
)

// Handle identifies a model load request
type Handle uint64

// LoadState is the polled state of a Handle
type LoadState uint8

const (
	LoadPending LoadState = iota
	LoadLoaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", s)
	}
}

// Loader is the host engine's model loader
// Load never blocks; results are observed by polling LoadState on a later frame
type Loader interface {
	Load(shortcode string) Handle
	LoadState(h Handle) LoadState
}

type loadEntry struct {
	path  Path
	state LoadState
	err   error
}

// FileLoader resolves model shortcodes against files under an asset root
// Each request is checked on its own goroutine; identical shortcodes share a handle
type FileLoader struct {
	root string

	mu      sync.RWMutex
	next    Handle
	entries map[Handle]*loadEntry
	byShort map[string]Handle
}

// NewFileLoader creates a loader rooted at root
func NewFileLoader(root string) *FileLoader {
	return &FileLoader{
		root:    root,
		next:    1,
		entries: make(map[Handle]*loadEntry),
		byShort: make(map[string]Handle),
	}
}

// Load issues a request and returns its handle immediately
func (l *FileLoader) Load(shortcode string) Handle {
	l.mu.Lock()
	if h, ok := l.byShort[shortcode]; ok {
		if e := l.entries[h]; e.state != LoadFailed {
			l.mu.Unlock()
			return h
		}
	}
	h := l.next
	l.next++
	entry := &loadEntry{path: Model(shortcode)}
	l.entries[h] = entry
	l.byShort[shortcode] = h
	l.mu.Unlock()

	full := entry.path.Under(l.root)
	core.Go(func() {
		info, err := os.Stat(full)
		if err == nil && info.IsDir() {
			err = fmt.Errorf("%s is a directory", full)
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			entry.state = LoadFailed
			entry.err = err
			return
		}
		entry.state = LoadLoaded
	})
	return h
}

// LoadState polls a handle; unknown handles report failed
func (l *FileLoader) LoadState(h Handle) LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[h]
	if !ok {
		return LoadFailed
	}
	return e.state
}

// Err returns the failure reason of a failed handle
func (l *FileLoader) Err(h Handle) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e, ok := l.entries[h]; ok {
		return e.err
	}
	return fmt.Errorf("unknown handle %d", h)
}

// Path returns the resolved path of a handle
func (l *FileLoader) Path(h Handle) (Path, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[h]
	if !ok {
		return Path{}, false
	}
	return e.path, true
}
