package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnrecognizedCommand is returned when the input matches no command.
	ErrUnrecognizedCommand = errors.New("unrecognized command")
	// ErrInvalidArguments is returned when a command gets the wrong arguments.
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Interpreter resolves raw tokens into a Command.
type Interpreter struct {
	Commands []Command // known commands, in enumeration order
	Confirm  Confirmer // answers "did you mean" questions
	Assist   bool      // suggest the closest command on a typo
}

// NewInterpreter returns an Interpreter over all known commands with
// suggestions enabled.
func NewInterpreter(confirm Confirmer) *Interpreter {
	return &Interpreter{
		Commands: Commands(),
		Confirm:  confirm,
		Assist:   true,
	}
}

// Tokenize splits a line of user input into tokens.
func Tokenize(line string) []string { return strings.Fields(line) }

// Parse resolves the first token into a command and returns it with the
// remaining arguments.
//
// An exact match is returned immediately. Otherwise, when Assist is on, the
// closest command is proposed to the Confirmer and returned if accepted.
func (in *Interpreter) Parse(tokens []string) (Command, []string, error) {
	if len(tokens) == 0 {
		return 0, nil, fmt.Errorf("%w: empty input", ErrUnrecognizedCommand)
	}
	root, args := tokens[0], tokens[1:]

	if c, ok := Lookup(root, in.Commands); ok {
		return c, args, nil
	}

	if !in.Assist || in.Confirm == nil {
		return 0, nil, fmt.Errorf("%w: command '%s' not currently supported", ErrUnrecognizedCommand, root)
	}

	best, _ := Closest(root, in.Commands)
	if best == 0 {
		return 0, nil, fmt.Errorf("%w: no command available", ErrUnrecognizedCommand)
	}
	ok, err := in.Confirm.Confirm(fmt.Sprintf("Did you mean '%s'?", best))
	if err != nil {
		return 0, nil, fmt.Errorf("cannot confirm command: %w", err)
	}
	if !ok {
		return 0, nil, fmt.Errorf("%w: could not match input '%s' against known commands", ErrUnrecognizedCommand, root)
	}
	return best, args, nil
}
