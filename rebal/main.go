package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rebalancer/cmd"
	"github.com/etnz/rebalancer/logger"
	"github.com/google/subcommands"
)

func main() {
	// Exits when the shell asks for completions.
	cmd.Completion().Complete("rebal")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		level := "info"
		if *cmd.Verbose {
			level = "debug"
		}
		log := logger.New(logger.Config{Level: level, Pretty: true})
		if found, code := cmd.RunExtension(name, flag.Args()[1:], log); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			found = true
		}
	})
	return found
}
