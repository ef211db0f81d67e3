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

// dailyCmd holds the flags for the 'daily' subcommand.
type dailyCmd struct {
	date string
	out  outputFlag
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the meals of a day and their nutrients" }
func (*dailyCmd) Usage() string {
	return `mealstat daily [-d <date>] [-format md|json|yaml]

  Displays the meals served on a day, their nutrients and the ratio to the recommended intake.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the meals (defaults to today)")
	c.out.SetFlags(f)
}

func (c *dailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err == nil {
		err = c.out.validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	r := schoolmeal.BuildDaily(ctx, newFetcher(), on, schoolmeal.DefaultRecommendations())
	r.School = school.SchoolName

	err = c.out.print(r, func() string { return renderer.DailyMarkdown(r, renderer.Options{}) })
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
