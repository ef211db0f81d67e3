package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/renderer"
	"github.com/google/subcommands"
)

// weeklyCmd holds the flags for the 'weekly' subcommand.
type weeklyCmd struct {
	date string
	out  outputFlag
}

func (*weeklyCmd) Name() string     { return "weekly" }
func (*weeklyCmd) Synopsis() string { return "display the nutrient average of the last 7 days" }
func (*weeklyCmd) Usage() string {
	return `mealstat weekly [-d <date>] [-format md|json|yaml]

  Displays the nutrient average of the 7 days ending on the date.
`
}

func (c *weeklyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Last day of the window (defaults to today)")
	c.out.SetFlags(f)
}

func (c *weeklyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, err := parseDay(c.date)
	if err == nil {
		err = c.out.validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	r := schoolmeal.BuildWeekly(ctx, newFetcher(), ref)

	err = c.out.print(r, func() string { return renderer.WeeklyMarkdown(r, renderer.Options{}) })
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := r.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
