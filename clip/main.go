package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/clip/cmd"
	"github.com/etnz/clip/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("clip")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	cancel()
	os.Exit(int(status))
}

func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		if sc.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	topics = append(topics, docs.Readme, "*")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.yaml"),
			"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			"average":  predict.Set{"weighted", "pairwise"},
			"v":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"shell": {Flags: map[string]complete.Predictor{
				"owner":  predict.Nothing,
				"render": predict.Nothing,
			}},
			"run": {Flags: map[string]complete.Predictor{
				"f":      predict.Files("*"),
				"assume": predict.Set{"yes", "no"},
				"owner":  predict.Nothing,
				"q":      predict.Nothing,
				"json":   predict.Nothing,
			}},
			"topic":    {Args: predict.Set(topics)},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
