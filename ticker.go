package clip

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Ticker is the ledger of a single instrument. It owns every position
// recorded for the symbol and maintains the aggregates incrementally.
//
// Total shares and total value are the sums over added positions, minus the
// removed and the sold ones. They are not clamped: selling more than what was
// bought makes them negative.
type Ticker struct {
	symbol      string
	description string
	method      AverageMethod

	positions map[uuid.UUID]Position
	order     []uuid.UUID // insertion order, replayed by the Weighted method

	open    int // number of acquisitions currently held
	sells   int // number of sell records
	shares  Quantity
	value   Money
	average Money

	// cost basis of the shares held, used by the Weighted method.
	costShares Quantity
	costBasis  Money
}

// NewTicker creates an empty ledger for symbol.
//
// Every position of a ticker must be in the same currency, or carry none.
// AddPosition and SellPosition panic on a mismatch and leave the ledger
// untouched; Portfolio rejects such positions with ErrInvalidPosition before
// they reach the ledger.
func NewTicker(symbol, description string, method AverageMethod) *Ticker {
	return &Ticker{
		symbol:      symbol,
		description: description,
		method:      method,
		positions:   make(map[uuid.UUID]Position),
	}
}

func (t *Ticker) Symbol() string        { return t.symbol }
func (t *Ticker) Description() string   { return t.description }
func (t *Ticker) Method() AverageMethod { return t.method }
func (t *Ticker) PositionCount() int    { return t.open }
func (t *Ticker) SellCount() int        { return t.sells }
func (t *Ticker) TotalShares() Quantity { return t.shares }
func (t *Ticker) TotalValue() Money     { return t.value }
func (t *Ticker) AveragePrice() Money   { return t.average }

// Position returns the position recorded under id, buy or sell.
func (t *Ticker) Position(id uuid.UUID) (Position, bool) {
	p, ok := t.positions[id]
	return p, ok
}

// Positions iterates over all positions, oldest first.
func (t *Ticker) Positions() iter.Seq[Position] {
	sorted := slices.SortedFunc(maps.Values(t.positions), func(a, b Position) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.id.String(), b.id.String())
	})
	return slices.Values(sorted)
}

// AddPosition records an acquisition.
func (t *Ticker) AddPosition(p Position) {
	t.mustMatch(p)
	first := t.open == 0
	t.positions[p.id] = p
	t.order = append(t.order, p.id)
	t.open++
	t.shares = t.shares.Add(p.shares)
	t.value = t.value.Add(p.value)

	switch t.method {
	case Pairwise:
		if first {
			t.average = p.price
		} else {
			t.average = t.average.Add(p.price).Div(Q(2))
		}
	default:
		t.costShares = t.costShares.Add(p.shares)
		t.costBasis = t.costBasis.Add(p.value)
		t.reprice()
	}
}

// RemovePosition deletes an acquisition from the ledger and reverts its
// contribution to the aggregates.
//
// With the Pairwise method the average is only restored exactly when
// positions are removed in the reverse order of their addition. The Weighted
// average is recomputed from the remaining positions in the order they were
// recorded, so it never goes negative.
func (t *Ticker) RemovePosition(id uuid.UUID) (Position, error) {
	p, ok := t.positions[id]
	if !ok {
		return Position{}, fmt.Errorf("%w: %s in %s", ErrPositionNotFound, id, t.symbol)
	}
	if p.sell {
		return Position{}, fmt.Errorf("%w: %s in %s", ErrSellRecord, id, t.symbol)
	}

	delete(t.positions, id)
	t.order = slices.DeleteFunc(t.order, func(o uuid.UUID) bool { return o == id })
	t.open--
	t.shares = t.shares.Sub(p.shares)
	t.value = t.value.Sub(p.value)

	switch t.method {
	case Pairwise:
		if t.open == 0 {
			t.average = Money{}
		} else {
			t.average = t.average.Mul(Q(2)).Sub(p.price)
		}
	default:
		t.replay()
	}
	return p, nil
}

// SellPosition records a disposal. The sell record is kept in the ledger as
// history and can be retrieved with Position.
//
// When no share is left the average price resets to zero.
func (t *Ticker) SellPosition(p Position) {
	t.mustMatch(p)
	t.positions[p.id] = p
	t.order = append(t.order, p.id)
	t.sells++
	t.shares = t.shares.Sub(p.shares)
	t.value = t.value.Sub(p.value)

	switch t.method {
	case Pairwise:
		if t.shares.IsZero() {
			t.average = Money{}
		} else {
			t.average = t.value.Div(t.shares)
		}
	default:
		t.dispose(p.shares)
	}
}

// mustMatch panics, before any mutation, when p is in another currency than
// the positions already recorded.
func (t *Ticker) mustMatch(p Position) { _ = cur(t.value, p.value) }

// dispose takes shares out of the cost basis at the current average.
func (t *Ticker) dispose(shares Quantity) {
	if !t.costShares.GreaterThan(shares) {
		t.costShares, t.costBasis, t.average = Quantity{}, Money{}, Money{}
		return
	}
	t.costBasis = t.costBasis.Sub(t.average.Mul(shares))
	t.costShares = t.costShares.Sub(shares)
}

// replay rebuilds the Weighted cost basis from the recorded positions.
func (t *Ticker) replay() {
	t.costShares, t.costBasis, t.average = Quantity{}, Money{}, Money{}
	for _, id := range t.order {
		p := t.positions[id]
		if p.sell {
			t.dispose(p.shares)
			continue
		}
		t.costShares = t.costShares.Add(p.shares)
		t.costBasis = t.costBasis.Add(p.value)
		t.reprice()
	}
}

// reprice recomputes the Weighted average from the cost basis.
func (t *Ticker) reprice() {
	if !t.costShares.IsPositive() {
		t.costShares, t.costBasis, t.average = Quantity{}, Money{}, Money{}
		return
	}
	t.average = t.costBasis.Div(t.costShares)
}

// MarshalJSON implements the json.Marshaler interface for Ticker.
func (t *Ticker) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", t.symbol)
	w.Optional("description", t.description)
	w.Append("method", t.method.String())
	w.Append("position_count", t.open)
	w.Append("sell_count", t.sells)
	w.Append("total_shares", t.shares)
	w.Append("total_value", t.value)
	w.Append("average_price", t.average)
	positions := slices.Collect(t.Positions())
	if positions == nil {
		positions = []Position{}
	}
	w.Append("positions", positions)
	return w.MarshalJSON()
}
