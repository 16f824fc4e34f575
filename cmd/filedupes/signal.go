package main

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// setupSignalHandler sets up signal handling for graceful shutdown.
// Returns a channel that will be closed when SIGINT or SIGTERM is received;
// the scan notices the closed channel and stops without emitting a partial
// report.
func setupSignalHandler() <-chan struct{} {
	shutdown := make(chan struct{})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived signal: %v\n", sig)

		// Close the shutdown channel to notify all listeners
		close(shutdown)

		// A second signal falls through to the default handler and kills
		// the process immediately.
		signal.Stop(sigChan)
	}()

	return shutdown
}
