package core

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var crashReset atomic.Pointer[func()]

// SetCrashReset registers fn to run before a crash report, e.g. to restore the terminal
// Passing nil clears it
func SetCrashReset(fn func()) {
	if fn == nil {
		crashReset.Store(nil)
		return
	}
	crashReset.Store(&fn)
}

// HandleCrash reports a recovered panic value and exits with status 1
// A nil value is ignored
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if fn := crashReset.Load(); fn != nil {
		(*fn)()
	}

	stack := debug.Stack()
	log.Printf("[ERROR] panic: %v\n%s", r, stack)
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mfarmcycle crashed: %v\x1b[0m\r\n%s\r\n", r, stack)
	os.Stderr.Sync()
	os.Exit(1)
}

// Go starts fn on its own goroutine, routing a panic through HandleCrash
func Go(fn func()) {
	go func() {
		defer func() { HandleCrash(recover()) }()
		fn()
	}()
}
