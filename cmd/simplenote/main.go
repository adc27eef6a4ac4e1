package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

var (
	Version    = "0.1.0-dev"
	Commit     = "unknown"
	CommitDate = "unknown"
	TreeState  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(newCLI()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
