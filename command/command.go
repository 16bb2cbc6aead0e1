// Package command turns lines of user input into operations on a portfolio.
//
// An Interpreter resolves the first token of a line into a Command, asking
// for confirmation when it only found a close match. Dispatch then runs the
// command against a clip.Portfolio within a Session.
package command

import "fmt"

// Command is a verb understood by the interpreter.
type Command int

// Known commands, in enumeration order.
const (
	Buy Command = iota + 1
	Sell
	Quit
	Joey
)

// Commands returns all known commands in enumeration order.
func Commands() []Command { return []Command{Buy, Sell, Quit, Joey} }

func (c Command) String() string {
	switch c {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case Quit:
		return "quit"
	case Joey:
		return "joey"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Lookup returns the command named exactly name among candidates.
func Lookup(name string, candidates []Command) (Command, bool) {
	for _, c := range candidates {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}
