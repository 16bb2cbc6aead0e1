package clip

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
)

var methods = []AverageMethod{Weighted, Pairwise}

func TestTicker_AddPosition_Totals(t *testing.T) {
	testCases := []struct {
		name       string
		buys       [][2]float64 // shares, price
		wantShares float64
		wantValue  float64
	}{
		{"single", [][2]float64{{10, 100}}, 10, 1000},
		{"two", [][2]float64{{10, 100}, {5, 110}}, 15, 1550},
		{"fractional", [][2]float64{{0.5, 10.1}, {1.25, 3.2}, {3, 0.01}}, 4.75, 9.08},
	}
	for _, method := range methods {
		for _, tc := range testCases {
			t.Run(method.String()+"/"+tc.name, func(t *testing.T) {
				ticker := NewTicker("AAPL", "", method)
				for _, b := range tc.buys {
					ticker.AddPosition(buy(t, b[0], b[1]))
				}
				if got := ticker.TotalShares(); !got.Equal(Q(tc.wantShares)) {
					t.Errorf("TotalShares() = %v, want %v", got, tc.wantShares)
				}
				if got := ticker.TotalValue(); !got.Equal(USD(tc.wantValue)) {
					t.Errorf("TotalValue() = %v, want %v", got, tc.wantValue)
				}
				if got := ticker.PositionCount(); got != len(tc.buys) {
					t.Errorf("PositionCount() = %d, want %d", got, len(tc.buys))
				}
			})
		}
	}
}

func TestTicker_FirstAverage(t *testing.T) {
	for _, method := range methods {
		t.Run(method.String(), func(t *testing.T) {
			ticker := NewTicker("AAPL", "", method)
			ticker.AddPosition(buy(t, 3, 123.45))
			if got := ticker.AveragePrice(); !got.Equal(USD(123.45)) {
				t.Errorf("AveragePrice() = %v, want 123.45", got)
			}
		})
	}
}

func TestTicker_AddRemoveRestores(t *testing.T) {
	priors := map[string][][2]float64{
		"empty":     nil,
		"one":       {{10, 100}},
		"two":       {{10, 100}, {7, 42.5}},
		"fractions": {{0.3, 3.3}, {1.7, 9.99}},
	}
	for _, method := range methods {
		for name, prior := range priors {
			t.Run(method.String()+"/"+name, func(t *testing.T) {
				ticker := NewTicker("AAPL", "", method)
				for _, b := range prior {
					ticker.AddPosition(buy(t, b[0], b[1]))
				}
				before := snapshot(ticker)

				p := buy(t, 5, 110)
				ticker.AddPosition(p)
				if _, err := ticker.RemovePosition(p.ID()); err != nil {
					t.Fatalf("RemovePosition() error = %v", err)
				}

				if after := snapshot(ticker); !after.Equal(before) {
					t.Errorf("aggregates after add+remove = %+v, want %+v", after, before)
				}
				if _, ok := ticker.Position(p.ID()); ok {
					t.Error("removed position is still in the ledger")
				}
			})
		}
	}
}

func TestTicker_PairwiseScenario(t *testing.T) {
	ticker := NewTicker("AAPL", "", Pairwise)
	ticker.AddPosition(buy(t, 10, 100))
	ticker.AddPosition(buy(t, 5, 110))

	if got := ticker.TotalShares(); !got.Equal(Q(15)) {
		t.Errorf("TotalShares() = %v, want 15", got)
	}
	if got := ticker.TotalValue(); !got.Equal(USD(1550)) {
		t.Errorf("TotalValue() = %v, want 1550", got)
	}
	if got := ticker.PositionCount(); got != 2 {
		t.Errorf("PositionCount() = %d, want 2", got)
	}
	if got := ticker.AveragePrice(); !got.Equal(USD(105)) {
		t.Errorf("AveragePrice() = %v, want 105", got)
	}
}

func TestTicker_PairwiseIsOrderDependent(t *testing.T) {
	ticker := NewTicker("AAPL", "", Pairwise)
	first := buy(t, 1, 100)
	ticker.AddPosition(first)
	ticker.AddPosition(buy(t, 1, 200))
	ticker.AddPosition(buy(t, 1, 400)) // average is now 275

	if _, err := ticker.RemovePosition(first.ID()); err != nil {
		t.Fatal(err)
	}
	// 275*2-100, not the 300 average of the remaining positions.
	if got := ticker.AveragePrice(); !got.Equal(USD(450)) {
		t.Errorf("AveragePrice() = %v, want 450", got)
	}
}

func TestTicker_WeightedAverage(t *testing.T) {
	ticker := NewTicker("AAPL", "", Weighted)
	first := buy(t, 10, 100)
	ticker.AddPosition(first)
	ticker.AddPosition(buy(t, 5, 110))

	want := USD(1550).Div(Q(15))
	if got := ticker.AveragePrice(); !got.Equal(want) {
		t.Errorf("AveragePrice() = %v, want %v", got, want)
	}

	// Out of order removal is exact.
	if _, err := ticker.RemovePosition(first.ID()); err != nil {
		t.Fatal(err)
	}
	if got := ticker.AveragePrice(); !got.Equal(USD(110)) {
		t.Errorf("AveragePrice() after removal = %v, want 110", got)
	}
}

func TestTicker_WeightedRemoveAfterSell(t *testing.T) {
	testCases := []struct {
		name        string
		remove      int // index of the buy to remove
		wantShares  float64
		wantAverage Money
	}{
		{name: "remove the expensive lot", remove: 1, wantShares: 1, wantAverage: USD(100)},
		{name: "remove the cheap lot", remove: 0, wantShares: 1, wantAverage: USD(200)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticker := NewTicker("AAPL", "", Weighted)
			buys := []Position{buy(t, 10, 100), buy(t, 10, 200)}
			for _, b := range buys {
				ticker.AddPosition(b)
			}
			ticker.SellPosition(sell(t, 9, 300))

			if _, err := ticker.RemovePosition(buys[tc.remove].ID()); err != nil {
				t.Fatal(err)
			}
			if got := ticker.TotalShares(); !got.Equal(Q(tc.wantShares)) {
				t.Errorf("TotalShares() = %v, want %v", got, tc.wantShares)
			}
			got := ticker.AveragePrice()
			if got.value.IsNegative() {
				t.Fatalf("AveragePrice() = %v, want a non negative average", got)
			}
			if !got.Equal(tc.wantAverage) {
				t.Errorf("AveragePrice() = %v, want %v", got, tc.wantAverage)
			}
		})
	}
}

func TestTicker_WeightedRemoveAll(t *testing.T) {
	ticker := NewTicker("AAPL", "", Weighted)
	a, b := buy(t, 10, 100), buy(t, 10, 200)
	ticker.AddPosition(a)
	ticker.SellPosition(sell(t, 15, 300))
	ticker.AddPosition(b)

	for _, id := range []uuid.UUID{a.ID(), b.ID()} {
		if _, err := ticker.RemovePosition(id); err != nil {
			t.Fatal(err)
		}
		if got := ticker.AveragePrice(); got.value.IsNegative() {
			t.Errorf("AveragePrice() after removing %s = %v, want a non negative average", id, got)
		}
	}
	if got := ticker.AveragePrice(); !got.IsZero() {
		t.Errorf("AveragePrice() = %v, want 0 once every buy is removed", got)
	}
}

func TestTicker_SellPosition(t *testing.T) {
	for _, method := range methods {
		t.Run(method.String(), func(t *testing.T) {
			ticker := NewTicker("AAPL", "", method)
			ticker.AddPosition(buy(t, 10, 100))
			s := sell(t, 4, 120)
			ticker.SellPosition(s)

			if got := ticker.SellCount(); got != 1 {
				t.Errorf("SellCount() = %d, want 1", got)
			}
			got, ok := ticker.Position(s.ID())
			if !ok {
				t.Fatal("sold position is not queryable")
			}
			if !got.Equal(s) || !got.IsSell() {
				t.Errorf("Position(%s) = %v, want the sell record %v", s.ID(), got, s)
			}
			if got := ticker.TotalShares(); !got.Equal(Q(6)) {
				t.Errorf("TotalShares() = %v, want 6", got)
			}
			if got := ticker.TotalValue(); !got.Equal(USD(520)) {
				t.Errorf("TotalValue() = %v, want 520", got)
			}
			if got := ticker.PositionCount(); got != 1 {
				t.Errorf("PositionCount() = %d, want 1", got)
			}
		})
	}
}

func TestTicker_SellAverage(t *testing.T) {
	testCases := []struct {
		name        string
		method      AverageMethod
		buys, sells [][2]float64
		wantShares  float64
		wantValue   float64
		wantAverage Money
	}{
		{
			name:        "weighted partial sell keeps the average",
			method:      Weighted,
			buys:        [][2]float64{{10, 100}, {10, 200}},
			sells:       [][2]float64{{5, 300}},
			wantShares:  15,
			wantValue:   1500,
			wantAverage: USD(150),
		},
		{
			name:        "weighted full sell resets the average",
			method:      Weighted,
			buys:        [][2]float64{{10, 100}},
			sells:       [][2]float64{{4, 90}, {6, 130}},
			wantShares:  0,
			wantValue:   -140,
			wantAverage: Money{},
		},
		{
			name:        "weighted sell at a loss resets the average",
			method:      Weighted,
			buys:        [][2]float64{{10, 100}},
			sells:       [][2]float64{{10, 50}},
			wantShares:  0,
			wantValue:   500,
			wantAverage: Money{},
		},
		{
			name:        "pairwise recomputes from totals",
			method:      Pairwise,
			buys:        [][2]float64{{10, 100}},
			sells:       [][2]float64{{5, 120}},
			wantShares:  5,
			wantValue:   400,
			wantAverage: USD(80),
		},
		{
			name:        "pairwise sell to zero does not divide by zero",
			method:      Pairwise,
			buys:        [][2]float64{{10, 100}},
			sells:       [][2]float64{{10, 120}},
			wantShares:  0,
			wantValue:   -200,
			wantAverage: Money{},
		},
		{
			name:        "oversell makes totals negative",
			method:      Pairwise,
			buys:        [][2]float64{{5, 10}},
			sells:       [][2]float64{{10, 10}},
			wantShares:  -5,
			wantValue:   -50,
			wantAverage: USD(10),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticker := NewTicker("AAPL", "", tc.method)
			for _, b := range tc.buys {
				ticker.AddPosition(buy(t, b[0], b[1]))
			}
			for _, s := range tc.sells {
				ticker.SellPosition(sell(t, s[0], s[1]))
			}
			if got := ticker.TotalShares(); !got.Equal(Q(tc.wantShares)) {
				t.Errorf("TotalShares() = %v, want %v", got, tc.wantShares)
			}
			if got := ticker.TotalValue(); !got.Equal(USD(tc.wantValue)) {
				t.Errorf("TotalValue() = %v, want %v", got, tc.wantValue)
			}
			if got := ticker.AveragePrice(); !got.Equal(tc.wantAverage) {
				t.Errorf("AveragePrice() = %v, want %v", got, tc.wantAverage)
			}
			if got := ticker.SellCount(); got != len(tc.sells) {
				t.Errorf("SellCount() = %d, want %d", got, len(tc.sells))
			}
		})
	}
}

func TestTicker_RemovePosition_Errors(t *testing.T) {
	ticker := NewTicker("AAPL", "", Weighted)
	ticker.AddPosition(buy(t, 10, 100))
	s := sell(t, 1, 100)
	ticker.SellPosition(s)
	before := snapshot(ticker)

	if _, err := ticker.RemovePosition(uuid.New()); !errors.Is(err, ErrPositionNotFound) {
		t.Errorf("RemovePosition(unknown) error = %v, want %v", err, ErrPositionNotFound)
	}
	if _, err := ticker.RemovePosition(s.ID()); !errors.Is(err, ErrSellRecord) {
		t.Errorf("RemovePosition(sell) error = %v, want %v", err, ErrSellRecord)
	}
	if after := snapshot(ticker); !after.Equal(before) {
		t.Errorf("failed removals changed the ledger: %+v, want %+v", after, before)
	}
}

func TestTicker_Positions(t *testing.T) {
	ticker := NewTicker("AAPL", "", Weighted)
	var want []Position
	for _, d := range []int{3, 1, 2} {
		p, err := NewPositionAt(day(d), Q(1), USD(float64(d)), false)
		if err != nil {
			t.Fatal(err)
		}
		ticker.AddPosition(p)
		want = append(want, p)
	}
	want = []Position{want[1], want[2], want[0]}

	got := slices.Collect(ticker.Positions())
	if !slices.EqualFunc(got, want, Position.Equal) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
}

func TestTicker_CurrencyMismatch(t *testing.T) {
	eur, err := NewPosition(Q(1), M(10, "EUR"), false)
	if err != nil {
		t.Fatal(err)
	}
	eurSell, err := NewPosition(Q(1), M(10, "EUR"), true)
	if err != nil {
		t.Fatal(err)
	}
	testCases := []struct {
		name   string
		record func(*Ticker)
	}{
		{"add", func(ticker *Ticker) { ticker.AddPosition(eur) }},
		{"sell", func(ticker *Ticker) { ticker.SellPosition(eurSell) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticker := NewTicker("AAPL", "", Weighted)
			ticker.AddPosition(buy(t, 10, 100))
			before := snapshot(ticker)

			func() {
				defer func() {
					if recover() == nil {
						t.Error("recording a EUR position in a USD ledger did not panic")
					}
				}()
				tc.record(ticker)
			}()

			if after := snapshot(ticker); !after.Equal(before) {
				t.Errorf("mismatched position changed the ledger: %+v, want %+v", after, before)
			}
			if got := len(slices.Collect(ticker.Positions())); got != 1 {
				t.Errorf("len(Positions()) = %d, want 1", got)
			}
		})
	}
}
