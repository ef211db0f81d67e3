// Package cmd implements the mealstat subcommands.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/date"
	"github.com/etnz/schoolmeal/neis"
	"github.com/google/subcommands"
)

// Commands are the subcommands of mealstat.
var Commands = []subcommands.Command{
	&dailyCmd{},
	&weeklyCmd{},
	&serveCmd{},
	&adviseCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables logging.
var Verbose = flag.Bool("v", false, "print logs, including every call to the meal service")

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// school is the configuration of the meal service, read once.
var school = neis.DefaultConfig()

// newFetcher returns the meal source used by every command.
var newFetcher = func() schoolmeal.Fetcher { return neis.New(school, nil) }

// parseDay reads a -d flag value, the empty string being today in Seoul.
func parseDay(s string) (date.Date, error) {
	d, err := date.ParseOrToday(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// printMarkdown renders markdown for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithEmoji(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprintln(stdout, md)
}
