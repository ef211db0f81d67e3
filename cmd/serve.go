package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/schoolmeal/web"
	"github.com/google/subcommands"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	cfg *web.Config
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the meal page over HTTP" }
func (*serveCmd) Usage() string {
	return `mealstat serve [-addr <host>] [-port <port>]

  Serves the meal page, /health and /metrics until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.cfg = web.DefaultConfig()
	f.StringVar(&c.cfg.Address, "addr", c.cfg.Address, "Address to listen on (defaults to all interfaces)")
	f.IntVar(&c.cfg.Port, "port", c.cfg.Port, "Port to listen on (defaults to $PORT or 8501)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// A server always logs.
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := web.New(c.cfg, newFetcher(), school.SchoolName)
	if err := s.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
