package clip

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Position is one immutable transaction record: the acquisition (buy) or the
// disposal (sell) of a quantity of shares at a price.
type Position struct {
	id     uuid.UUID
	shares Quantity
	price  Money
	value  Money // shares * price, computed once.
	at     time.Time
	sell   bool
}

// NewPosition creates a position timestamped now.
func NewPosition(shares Quantity, price Money, sell bool) (Position, error) {
	return NewPositionAt(time.Now(), shares, price, sell)
}

// NewPositionAt creates a position with an explicit timestamp.
//
// Shares and price must be strictly positive.
func NewPositionAt(at time.Time, shares Quantity, price Money, sell bool) (Position, error) {
	if !shares.IsPositive() {
		return Position{}, fmt.Errorf("%w: share count must be positive, got %s", ErrInvalidPosition, shares)
	}
	if !price.IsPositive() {
		return Position{}, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidPosition, price.value)
	}
	return Position{
		id:     uuid.New(),
		shares: shares,
		price:  price,
		value:  price.Mul(shares),
		at:     at,
		sell:   sell,
	}, nil
}

// NewPositionFromFloat creates a position from raw float values, with a
// currency-less price.
//
// NaN and infinite values are rejected before any decimal conversion.
func NewPositionFromFloat(shares, price float64, sell bool) (Position, error) {
	if !finite(shares) || !finite(price) {
		return Position{}, fmt.Errorf("%w: share count and price must be finite numbers, got %v and %v", ErrInvalidPosition, shares, price)
	}
	return NewPosition(Q(shares), M(price, ""), sell)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (p Position) ID() uuid.UUID    { return p.id }
func (p Position) Shares() Quantity { return p.shares }
func (p Position) Price() Money     { return p.price }
func (p Position) Value() Money     { return p.value }
func (p Position) Time() time.Time  { return p.at }
func (p Position) IsSell() bool     { return p.sell }

// Equal reports whether both positions are the same record.
func (p Position) Equal(o Position) bool { return p.id == o.id }

// Kind returns "sell" for disposals and "buy" for acquisitions.
func (p Position) Kind() string {
	if p.sell {
		return "sell"
	}
	return "buy"
}

func (p Position) String() string {
	return fmt.Sprintf("%s %s @ %s = %s [%s]", p.Kind(), p.shares, p.price, p.value, p.id)
}

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.id)
	w.Append("kind", p.Kind())
	w.Append("shares", p.shares)
	w.Append("price", p.price)
	w.Append("value", p.value)
	w.Append("time", p.at.UTC().Format(time.RFC3339Nano))
	return w.MarshalJSON()
}
