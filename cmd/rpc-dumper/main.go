// Package main provides the CLI entrypoint for rpc-dumper.
//
// rpc-dumper extracts the message schemas of an RPC protocol library:
//   - Loads the type universe from a metadata dump or a Go package
//   - Walks every message type and the types they reach
//   - Writes rpcs.json and types.json (or YAML)
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rpc-dumper/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date},
		os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
