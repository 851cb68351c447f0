// Package main provides the entry point for the textcrypt CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joncooperworks/textcrypt/cli"
)

// Set via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	stop()
	if err != nil {
		os.Exit(cli.ExitError)
	}
}
