// Command art resolves bundler entries, output settings and HTML page
// plans for an art front-end project.
//
// Usage:
//
//	art entries -m pages/home
//	art output
//	art plan -o art.plan.json
//	art plan --check
//	art graph --format dot | dot -Tsvg > entries.svg
//	art explain home
//	art watch
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/albertocavalcante/go-artpack/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.ExecuteContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
