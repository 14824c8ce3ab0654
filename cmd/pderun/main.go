package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/goliatone/go-pderun/internal/cli"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Args[1:], cli.StdStreams(), Version)
	stop()
	os.Exit(code)
}
