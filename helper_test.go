package clip

import (
	"testing"
	"time"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// buy creates a buy position in USD or fails the test.
func buy(t *testing.T, shares, price float64) Position {
	t.Helper()
	p, err := NewPosition(Q(shares), USD(price), false)
	if err != nil {
		t.Fatalf("NewPosition(%v, %v, buy) error = %v", shares, price, err)
	}
	return p
}

// sell creates a sell position in USD or fails the test.
func sell(t *testing.T, shares, price float64) Position {
	t.Helper()
	p, err := NewPosition(Q(shares), USD(price), true)
	if err != nil {
		t.Fatalf("NewPosition(%v, %v, sell) error = %v", shares, price, err)
	}
	return p
}

// day returns midnight UTC of the given day in january 2025.
func day(d int) time.Time { return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC) }

// aggregates captures the observable aggregates of a ticker.
type aggregates struct {
	count   int
	sells   int
	shares  Quantity
	value   Money
	average Money
}

func snapshot(t *Ticker) aggregates {
	return aggregates{
		count:   t.PositionCount(),
		sells:   t.SellCount(),
		shares:  t.TotalShares(),
		value:   t.TotalValue(),
		average: t.AveragePrice(),
	}
}

func (a aggregates) Equal(b aggregates) bool {
	return a.count == b.count && a.sells == b.sells &&
		a.shares.Equal(b.shares) && a.value.Equal(b.value) && a.average.Equal(b.average)
}
