package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/logdeck/internal/ingest"
)

// exitDatabaseUnavailable is returned when the backend reports its database down.
const exitDatabaseUnavailable = 3

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "logdeck: %v\n", err)
		if ingest.IsDatabaseUnavailable(err) {
			return exitDatabaseUnavailable
		}
		return 1
	}
	return 0
}
