// Package core holds process-wide helpers shared by every package.
package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu     sync.Mutex
	crashReset  func()
	crashOutput io.Writer = os.Stderr
	exit                  = os.Exit
)

// SetCrashReset registers the terminal restore hook run before the crash report
// Passing nil clears it
func SetCrashReset(fn func()) {
	crashMu.Lock()
	crashReset = fn
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the panic with its stack and exits
// No-op for a nil recover value
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	reset := crashReset
	crashReset = nil
	crashMu.Unlock()

	if reset != nil {
		reset()
	}

	stack := debug.Stack()
	log.Printf("[core] crash: %v\n%s", r, stack)
	fmt.Fprintf(crashOutput, "\r\n\x1b[31mGTHROWER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOutput, "Stack Trace:\r\n%s\r\n", stack)
	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the go keyword so a crash restores the terminal
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
