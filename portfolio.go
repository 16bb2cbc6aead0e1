package clip

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Portfolio is the top-level collection of ticker ledgers, keyed by their
// uppercase symbol.
//
// A Portfolio is not safe for concurrent use.
type Portfolio struct {
	owner    string
	currency string
	method   AverageMethod // applied to new tickers
	tickers  map[string]*Ticker
}

// NewPortfolio creates an empty portfolio. Prices recorded into it must be
// either in currency or currency-less.
func NewPortfolio(owner, currency string, method AverageMethod) *Portfolio {
	return &Portfolio{
		owner:    owner,
		currency: currency,
		method:   method,
		tickers:  make(map[string]*Ticker),
	}
}

// Symbol returns the canonical form of a ticker name.
func Symbol(name string) string { return strings.ToUpper(strings.TrimSpace(name)) }

func (p *Portfolio) Owner() string         { return p.owner }
func (p *Portfolio) Currency() string      { return p.currency }
func (p *Portfolio) Method() AverageMethod { return p.method }

// Len returns the number of distinct tickers.
func (p *Portfolio) Len() int { return len(p.tickers) }

// AddTicker creates the ledger for symbol if it does not exist yet, and
// reports whether it did.
func (p *Portfolio) AddTicker(symbol, description string) bool {
	key := Symbol(symbol)
	if _, exists := p.tickers[key]; exists {
		return false
	}
	p.tickers[key] = NewTicker(key, description, p.method)
	return true
}

// Ticker returns the ledger for symbol, case-insensitively.
func (p *Portfolio) Ticker(symbol string) (*Ticker, bool) {
	t, ok := p.tickers[Symbol(symbol)]
	return t, ok
}

// Tickers iterates over the ledgers in symbol order.
func (p *Portfolio) Tickers() iter.Seq[*Ticker] {
	return func(yield func(*Ticker) bool) {
		for _, key := range slices.Sorted(maps.Keys(p.tickers)) {
			if !yield(p.tickers[key]) {
				return
			}
		}
	}
}

// BuyPosition records an acquisition for symbol, creating its ledger on
// first use.
func (p *Portfolio) BuyPosition(symbol string, pos Position) (*Ticker, error) {
	if err := p.check(symbol, pos, false); err != nil {
		return nil, err
	}
	p.AddTicker(symbol, "")
	t, _ := p.Ticker(symbol)
	t.AddPosition(pos)
	return t, nil
}

// SellPosition records a disposal for symbol. The ticker must have been
// bought before.
func (p *Portfolio) SellPosition(symbol string, pos Position) (*Ticker, error) {
	if err := p.check(symbol, pos, true); err != nil {
		return nil, err
	}
	t, ok := p.Ticker(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTicker, Symbol(symbol))
	}
	t.SellPosition(pos)
	return t, nil
}

// check validates that pos can be recorded for symbol.
func (p *Portfolio) check(symbol string, pos Position, sell bool) error {
	if Symbol(symbol) == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidTicker)
	}
	if pos.id == uuid.Nil {
		return fmt.Errorf("%w: position has no identifier", ErrInvalidPosition)
	}
	if pos.sell != sell {
		return fmt.Errorf("%w: a %s position cannot be recorded here", ErrInvalidPosition, pos.Kind())
	}
	if c := pos.price.Currency(); c != "" && c != p.currency {
		return fmt.Errorf("%w: price in %s, portfolio in %s", ErrInvalidPosition, c, p.currency)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Portfolio.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("owner", p.owner)
	w.Optional("currency", p.currency)
	w.Append("method", p.method.String())
	w.Append("ticker_count", len(p.tickers))
	w.Append("tickers", p.tickers)
	return w.MarshalJSON()
}
