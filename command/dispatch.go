package command

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/clip"
)

// Result is the outcome of a dispatched command.
type Result struct {
	Command  Command
	Ticker   *clip.Ticker  // ledger touched by a buy or a sell
	Position clip.Position // position recorded by a buy or a sell
	Message  string
}

// Handler is the uniform signature of command implementations. args are the
// tokens following the command.
type Handler func(s *Session, p *clip.Portfolio, args []string) (Result, error)

// Dispatch runs c against the portfolio.
func Dispatch(s *Session, p *clip.Portfolio, c Command, args []string) (Result, error) {
	var h Handler
	switch c {
	case Buy:
		h = buy
	case Sell:
		h = sell
	case Quit:
		h = quit
	case Joey:
		h = joey
	default:
		return Result{}, fmt.Errorf("%w: no handler for %v", ErrUnrecognizedCommand, c)
	}
	r, err := h(s, p, args)
	r.Command = c
	return r, err
}

// buy <ticker> <share-count> <price-per-share>
func buy(_ *Session, p *clip.Portfolio, args []string) (Result, error) {
	symbol, pos, err := parseTrade(p, args, false)
	if err != nil {
		return Result{}, err
	}
	t, err := p.BuyPosition(symbol, pos)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Ticker:   t,
		Position: pos,
		Message:  fmt.Sprintf("bought %s %s at %s", pos.Shares(), t.Symbol(), pos.Price()),
	}, nil
}

// sell <ticker> <share-count> <price-per-share>
func sell(_ *Session, p *clip.Portfolio, args []string) (Result, error) {
	symbol, pos, err := parseTrade(p, args, true)
	if err != nil {
		return Result{}, err
	}
	t, err := p.SellPosition(symbol, pos)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Ticker:   t,
		Position: pos,
		Message:  fmt.Sprintf("sold %s %s at %s", pos.Shares(), t.Symbol(), pos.Price()),
	}, nil
}

func quit(s *Session, _ *clip.Portfolio, _ []string) (Result, error) {
	s.Stop()
	return Result{Message: "bye"}, nil
}

// joey echoes its arguments.
func joey(_ *Session, _ *clip.Portfolio, args []string) (Result, error) {
	return Result{Message: strings.Join(args, " ")}, nil
}

// parseTrade validates the <ticker> <share-count> <price-per-share> arguments
// and creates the position in the portfolio currency.
func parseTrade(p *clip.Portfolio, args []string, sell bool) (string, clip.Position, error) {
	if len(args) != 3 {
		return "", clip.Position{}, fmt.Errorf("%w: expected <ticker> <share-count> <price-per-share>, got %d argument(s)", ErrInvalidArguments, len(args))
	}
	symbol := args[0]
	shares, err := parseNumber("share count", args[1])
	if err != nil {
		return "", clip.Position{}, err
	}
	price, err := parseNumber("price per share", args[2])
	if err != nil {
		return "", clip.Position{}, err
	}
	pos, err := clip.NewPosition(clip.Q(shares), clip.M(price, p.Currency()), sell)
	if err != nil {
		return "", clip.Position{}, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return symbol, pos, nil
}

func parseNumber(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidArguments, name, s)
	}
	return f, nil
}
