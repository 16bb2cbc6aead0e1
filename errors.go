package clip

import "errors"

var (
	// ErrInvalidPosition is returned when a position cannot be created or does
	// not fit the ledger it is recorded into.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidTicker is returned for an empty ticker symbol.
	ErrInvalidTicker = errors.New("invalid ticker")
	// ErrUnknownTicker is returned when selling a ticker that was never bought.
	ErrUnknownTicker = errors.New("unknown ticker")
	// ErrPositionNotFound is returned when removing a position that is not in the ledger.
	ErrPositionNotFound = errors.New("position not found")
	// ErrSellRecord is returned when removing a sell record, sells are history.
	ErrSellRecord = errors.New("sell records cannot be removed")
)
