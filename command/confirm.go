package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers yes/no questions asked by the Interpreter.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

var (
	// AlwaysYes accepts every suggestion, for scripts.
	AlwaysYes Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })
	// AlwaysNo rejects every suggestion.
	AlwaysNo Confirmer = ConfirmFunc(func(string) (bool, error) { return false, nil })
)

// ParsePolicy returns the Confirmer for "yes", "no" or "ask". "ask" prompts
// on w and reads the answer from r.
func ParsePolicy(s string, r *bufio.Reader, w io.Writer) (Confirmer, error) {
	switch s {
	case "yes":
		return AlwaysYes, nil
	case "no":
		return AlwaysNo, nil
	case "ask":
		return Prompt(r, w), nil
	default:
		return nil, fmt.Errorf("unknown confirmation policy: %q", s)
	}
}

// Prompt returns a Confirmer that writes the question to w and reads the
// answer as one line from r. Only "yes", in any case, confirms.
//
// r must be the reader the caller reads its own input from, so that no
// buffered line is lost.
func Prompt(r *bufio.Reader, w io.Writer) Confirmer {
	return ConfirmFunc(func(prompt string) (bool, error) {
		fmt.Fprintf(w, "%s ", prompt)
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return false, err
		}
		return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
	})
}
