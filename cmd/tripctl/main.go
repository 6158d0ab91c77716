// Command tripctl views and edits a trip through a running trip tracker
// server.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, NewRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}
