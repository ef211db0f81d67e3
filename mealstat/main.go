package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/etnz/schoolmeal/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, variables already set win.
	_ = godotenv.Load()

	// Answers shell completion requests, and exits, when COMP_LINE is set.
	cmd.Completion(flag.CommandLine).Complete("mealstat")

	commander := subcommands.NewCommander(flag.CommandLine, "mealstat")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}
	os.Exit(int(commander.Execute(context.Background())))
}
