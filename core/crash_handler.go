// Package core launches goroutines with centralized panic handling
package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores the terminal; tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finalizer

	// Replaced in tests
	crashOutput io.Writer = os.Stderr
	exit                  = os.Exit
)

// SetCrashHandler registers the screen to restore before printing a crash report
// Passing nil clears the registration
func SetCrashHandler(t Finalizer) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashTerminal = t
}

// HandleCrash restores the terminal, prints the panic with its stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashTerminal = nil
	crashMu.Unlock()

	if t != nil {
		t.Fini()
	}

	stack := debug.Stack()
	log.Printf("crash: %v\n%s", r, stack)
	fmt.Fprintf(crashOutput, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOutput, "Stack Trace:\n%s\n", stack)

	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use instead of the go keyword so a panic never leaves the terminal in raw mode
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
