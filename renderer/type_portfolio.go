package renderer

import (
	"github.com/etnz/clip"
)

// Portfolio is the rendering view of a clip.Portfolio.
// Numbers keep their decimal types so that templates print them with their
// own String method.
type Portfolio struct {
	// Owner of the portfolio, may be empty.
	Owner string `json:"owner,omitempty"`
	// Currency prices are expressed in, may be empty.
	Currency string `json:"currency,omitempty"`
	// Method used by new tickers to maintain their average price.
	Method string `json:"method"`
	// TickerCount is the number of distinct tickers.
	TickerCount int `json:"tickerCount"`
	// Tickers in symbol order.
	Tickers []Ticker `json:"tickers"`
}

// Ticker is the rendering view of a clip.Ticker.
type Ticker struct {
	Symbol      string        `json:"symbol"`
	Description string        `json:"description,omitempty"`
	Method      string        `json:"method"`
	Positions   int           `json:"positions"`
	Sells       int           `json:"sells"`
	Shares      clip.Quantity `json:"shares"`
	Value       clip.Money    `json:"value"`
	Average     clip.Money    `json:"average"`
	History     []Position    `json:"history"`
}

// Position is one line of a ticker history.
type Position struct {
	ID     string        `json:"id"`
	Time   string        `json:"time"`
	Kind   string        `json:"kind"`
	Shares clip.Quantity `json:"shares"`
	Price  clip.Money    `json:"price"`
	Value  clip.Money    `json:"value"`
}

// timeFormat is the layout of the Position.Time column.
const timeFormat = "2006-01-02 15:04:05"

// NewPortfolio creates a new Portfolio view from p.
func NewPortfolio(p *clip.Portfolio) *Portfolio {
	v := &Portfolio{
		Owner:       p.Owner(),
		Currency:    p.Currency(),
		Method:      p.Method().String(),
		TickerCount: p.Len(),
		Tickers:     make([]Ticker, 0, p.Len()),
	}
	for t := range p.Tickers() {
		v.Tickers = append(v.Tickers, *NewTicker(t))
	}
	return v
}

// NewTicker creates a new Ticker view from t, including its full history.
func NewTicker(t *clip.Ticker) *Ticker {
	v := &Ticker{
		Symbol:      t.Symbol(),
		Description: t.Description(),
		Method:      t.Method().String(),
		Positions:   t.PositionCount(),
		Sells:       t.SellCount(),
		Shares:      t.TotalShares(),
		Value:       t.TotalValue(),
		Average:     t.AveragePrice(),
		History:     make([]Position, 0),
	}
	for p := range t.Positions() {
		v.History = append(v.History, Position{
			ID:     p.ID().String(),
			Time:   p.Time().Format(timeFormat),
			Kind:   p.Kind(),
			Shares: p.Shares(),
			Price:  p.Price(),
			Value:  p.Value(),
		})
	}
	return v
}
