package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// main wires the command tree and lets cobra report errors. Every call made
// by a command is bound to ctx, so an interrupt aborts in-flight requests.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
