package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/nutritionist"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// adviseCmd holds the flags for the 'advise' subcommand.
type adviseCmd struct {
	date  string
	model string
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask a nutritionist model about the last 7 days" }
func (*adviseCmd) Usage() string {
	return `mealstat advise [-d <date>] [-model <model>]

  Sends the nutrient average of the 7 days ending on the date to Gemini and prints its commentary.
  Requires GEMINI_API_KEY.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Last day of the window (defaults to today)")
	f.StringVar(&c.model, "model", nutritionist.DefaultModel, "Gemini model")
}

func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	fetcher := newFetcher()
	table := schoolmeal.DefaultRecommendations()
	r := schoolmeal.BuildWeekly(ctx, fetcher, ref)
	if err := r.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	e := nutritionist.New(c.model, fetcher, table)
	advice, err := nutritionist.Advise(ctx, client, e, r, table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(advice)
	return subcommands.ExitSuccess
}
