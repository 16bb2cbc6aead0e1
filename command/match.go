package command

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// similarity returns the Ratcliff/Obershelp ratio of a and b, computed on
// characters: twice the number of matching characters over the total length.
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// Closest returns the candidate most similar to input and its score.
// Ties go to the first candidate. It returns 0 if there is no candidate.
func Closest(input string, candidates []Command) (best Command, score float64) {
	score = -1
	for _, c := range candidates {
		if s := similarity(input, c.String()); s > score {
			best, score = c, s
		}
	}
	if score < 0 {
		return 0, 0
	}
	return best, score
}
