package clip

import "fmt"

// AverageMethod defines how a ticker maintains its average price.
type AverageMethod int

const (
	// Weighted divides the cost basis of the shares held by their count.
	// Partial sells leave the average unchanged.
	Weighted AverageMethod = iota
	// Pairwise averages the previous average with the price of each new
	// position, and undoes it on removal. The result depends on the order of
	// operations.
	Pairwise
)

func (m AverageMethod) String() string {
	switch m {
	case Weighted:
		return "weighted"
	case Pairwise:
		return "pairwise"
	default:
		return "unknown"
	}
}

// ParseAverageMethod parses a string into an AverageMethod.
func ParseAverageMethod(s string) (AverageMethod, error) {
	switch s {
	case "weighted":
		return Weighted, nil
	case "pairwise":
		return Pairwise, nil
	default:
		return 0, fmt.Errorf("unknown average method: %q", s)
	}
}
