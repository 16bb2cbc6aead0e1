package cmd

import (
	"bufio"
	"context"
	"encoding/json"
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

type runCmd struct {
	file   string
	assume string
	owner  string
	query  string
	ticker string
	asJSON bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run commands from a file and print the portfolio" }
func (*runCmd) Usage() string {
	return `clip run [-f <file>] [-assume yes|no] [-owner <name>] [-q <jsonpath> | -ticker <symbol>] [-json]

  Runs the commands of a file, or of the standard input, then prints the
  resulting portfolio, or only the history of one ticker. Failures are
  reported on the standard error and do not stop the script.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "File to read the commands from, '-' for the standard input")
	f.StringVar(&c.assume, "assume", "no", "Answer to command suggestions (yes, no)")
	f.StringVar(&c.owner, "owner", "", "Owner of the portfolio, overrides the configuration")
	f.StringVar(&c.query, "q", "", "Print only the result of this JSONPath query on the portfolio")
	f.StringVar(&c.ticker, "ticker", "", "Print only the ledger of this ticker")
	f.BoolVar(&c.asJSON, "json", false, "Print the portfolio, or the ticker, as JSON")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.assume != "yes" && c.assume != "no" {
		fmt.Fprintf(os.Stderr, "Error: -assume must be yes or no, got %q\n", c.assume)
		return subcommands.ExitUsageError
	}
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

	var src io.Reader = os.Stdin
	if c.file != "-" {
		f, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		src = f
	}

	in := bufio.NewReader(src)
	confirm, err := command.ParsePolicy(c.assume, in, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	interp := command.NewInterpreter(confirm)
	interp.Assist = cfg.Assist

	p := newPortfolio(cfg, c.owner)
	s := command.NewSession(nil)
	r := &repl{
		in:        in,
		out:       os.Stderr,
		portfolio: p,
		session:   s,
		interp:    interp,
		logger:    logger,
	}
	if err := r.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading commands: %v\n", err)
		return subcommands.ExitFailure
	}
	s.Freeze()
	logger.Debug("script done", zap.Duration("uptime", s.Uptime()), zap.Int("tickers", p.Len()))

	switch {
	case c.query != "":
		v, err := p.Query(c.query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error querying portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		return printJSON(v)
	case c.ticker != "":
		t, ok := p.Ticker(c.ticker)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %v: %s\n", clip.ErrUnknownTicker, clip.Symbol(c.ticker))
			return subcommands.ExitFailure
		}
		if c.asJSON {
			return printJSON(t)
		}
		printMarkdown(renderer.TickerMarkdown(t))
		return subcommands.ExitSuccess
	case c.asJSON:
		return printJSON(p)
	default:
		printMarkdown(renderer.PortfolioMarkdown(p))
		return subcommands.ExitSuccess
	}
}

func printJSON(v any) subcommands.ExitStatus {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(b))
	return subcommands.ExitSuccess
}
