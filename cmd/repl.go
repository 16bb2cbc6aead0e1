package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/clip"
	"github.com/etnz/clip/command"
	"go.uber.org/zap"
)

// repl reads commands line by line and dispatches them until the session
// stops or the input ends.
type repl struct {
	in        *bufio.Reader
	out       io.Writer // prompt and diagnostics
	prompt    string    // printed before each read, if any
	portfolio *clip.Portfolio
	session   *command.Session
	interp    *command.Interpreter
	logger    *zap.Logger
	echo      func(command.Result) // called after each successful command
}

// Run executes the loop. A failing command is reported on out and does not
// stop it; only a read error does. Cancelling ctx ends the loop like the end
// of the input: a line read after the cancellation is not executed.
func (r *repl) Run(ctx context.Context) error {
	for r.session.Continue() {
		if r.prompt != "" {
			fmt.Fprint(r.out, r.prompt)
		}
		line, err := r.readLine(ctx)
		if ctx.Err() != nil {
			if r.prompt != "" {
				fmt.Fprintln(r.out)
			}
			r.logger.Info("session interrupted")
			return nil
		}
		if errors.Is(err, io.EOF) && line == "" {
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		r.exec(line)
	}
	return nil
}

type readResult struct {
	line string
	err  error
}

// readLine reads the next line, or gives up when ctx is done. At most one read
// is pending at a time so that confirmations read from the same input.
func (r *repl) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := r.in.ReadString('\n')
		ch <- readResult{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

// exec runs a single line.
func (r *repl) exec(line string) {
	tokens := command.Tokenize(line)
	if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
		return
	}

	c, args, err := r.interp.Parse(tokens)
	if err != nil {
		r.fail(err)
		return
	}
	r.logger.Info("command recognised", zap.Stringer("command", c), zap.Strings("args", args))

	res, err := command.Dispatch(r.session, r.portfolio, c, args)
	if err != nil {
		r.fail(err)
		return
	}
	if r.echo != nil {
		r.echo(res)
	}
}

func (r *repl) fail(err error) {
	fmt.Fprintf(r.out, " - failed: %v\n", err)
	r.logger.Warn("command failed", zap.Error(err))
}
