// Package core holds process-wide crash handling for goroutines that own the screen
package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var cleanup atomic.Pointer[func()]

// SetCrashCleanup registers fn to restore the display before a crash report, nil clears it
func SetCrashCleanup(fn func()) {
	if fn == nil {
		cleanup.Store(nil)
		return
	}
	cleanup.Store(&fn)
}

// HandleCrash restores the display, prints r with a stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if fn := cleanup.Load(); fn != nil {
		(*fn)()
	}
	fmt.Fprintf(os.Stderr, "\nambient crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// Go runs fn in a new goroutine that reports panics through HandleCrash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
