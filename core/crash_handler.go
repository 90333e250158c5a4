package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores the terminal; tcell.Screen satisfies it
type Finisher interface {
	Fini()
}

// Leaves the alternate screen, shows the cursor and resets attributes
const emergencyReset = "\x1b[?1049l\x1b[?25h\x1b[0m\x1b[?1000l\x1b[?1006l"

var (
	crashMu       sync.Mutex
	crashTerminal Finisher

	crashOutput io.Writer = os.Stderr
	resetOutput io.Writer = os.Stdout
	exit                  = os.Exit
)

// RegisterCrashTerminal sets the terminal restored by HandleCrash; nil clears it
func RegisterCrashTerminal(t Finisher) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashTerminal = nil
	crashMu.Unlock()

	// Terminal cleanup if available
	if t != nil {
		t.Fini()
	} else {
		fmt.Fprint(resetOutput, emergencyReset)
	}

	fmt.Fprintf(crashOutput, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOutput, "Stack Trace:\r\n%s\r\n", debug.Stack())

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
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
