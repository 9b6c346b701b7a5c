package main

import (
	"log"
	"os"
	"runtime"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	// Lock this goroutine to the current thread. This is required because
	// OpenGL contexts are bound to threads.
	runtime.LockOSThread()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
