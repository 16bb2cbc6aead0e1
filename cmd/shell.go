package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/clip"
	"github.com/etnz/clip/command"
	"github.com/etnz/clip/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

const version = "0.1.0"

type shellCmd struct {
	owner  string
	render bool
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "start an interactive session" }
func (*shellCmd) Usage() string {
	return `clip shell [-owner <name>] [-render]

  Reads commands from the standard input until 'quit' or the end of the
  input. See 'clip topic commands' for the list of commands.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner of the portfolio, overrides the configuration")
	f.BoolVar(&c.render, "render", false, "Print the touched ticker, or the portfolio panel, after each command")
}

func (c *shellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	logger, loggerSync, err := newLogger(cfg.Level())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer loggerSync()

	p := newPortfolio(cfg, c.owner)
	in := bufio.NewReader(os.Stdin)
	interp := command.NewInterpreter(command.Prompt(in, os.Stdout))
	interp.Assist = cfg.Assist
	s := command.NewSession(nil)

	welcome(os.Stdout, p.Owner())
	r := &repl{
		in:        in,
		out:       os.Stdout,
		prompt:    "> ",
		portfolio: p,
		session:   s,
		interp:    interp,
		logger:    logger,
		echo:      echoResult(os.Stdout, p, c.render),
	}
	err = r.Run(ctx)

	s.Freeze()
	goodbye(os.Stdout, s)
	logger.Info("session ended", zap.Duration("uptime", s.Uptime()), zap.Int("tickers", p.Len()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading commands: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// echoResult reports a successful command on w. When render is set it prints
// the markdown result followed by the history of the ticker the command
// touched, or by the whole portfolio for the other commands.
func echoResult(w io.Writer, p *clip.Portfolio, render bool) func(command.Result) {
	return func(res command.Result) {
		if !render {
			if res.Message != "" {
				fmt.Fprintf(w, " - %s\n", res.Message)
			}
			return
		}
		md := renderer.ResultMarkdown(res) + "\n"
		if res.Ticker != nil {
			md += renderer.TickerMarkdown(res.Ticker)
		} else {
			md += renderer.PortfolioMarkdown(p)
		}
		renderMarkdown(w, md+"\n")
	}
}

func welcome(w io.Writer, owner string) {
	fmt.Fprintf(w, "\nCLIP\ncommand line interface portfolio\n")
	if owner != "" {
		fmt.Fprintln(w, owner)
	}
	fmt.Fprintf(w, "version %s\n\n", version)
}

func goodbye(w io.Writer, s *command.Session) {
	fmt.Fprintf(w, "session ended after %.1f seconds.\n", s.Uptime().Seconds())
}
