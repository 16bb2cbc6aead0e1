// Package clip provides the in-memory ledger behind the `clip` command line
// portfolio tracker.
//
// The core types are:
//   - Position: an immutable record of one buy or sell of a quantity of
//     shares at a price.
//   - Ticker: the ledger of one instrument. It owns the positions recorded
//     for its symbol and maintains running aggregates (open positions, total
//     shares, total value, sell count and average price).
//   - Portfolio: the collection of tickers keyed by their uppercase symbol,
//     routing buys and sells to the right ledger.
//
// Quantities and amounts are decimal numbers (Quantity and Money) so that
// repeated additions and subtractions do not drift.
//
// Nothing is persisted: a Portfolio lives for the duration of the process.
package clip
