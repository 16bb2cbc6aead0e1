package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/clip/command"
)

// ResultMarkdown renders the outcome of a dispatched command: its message,
// then the summary line of the ticker it touched, if any.
func ResultMarkdown(r command.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", r.Command)
	if r.Message != "" {
		fmt.Fprintf(&b, " %s", r.Message)
	}
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		t := r.Ticker
		if t == nil {
			return false
		}
		fmt.Fprintf(w, "\n| Ticker | Positions | Sells | Shares | Value | Average Price |\n")
		fmt.Fprintf(w, "|:---|---:|---:|---:|---:|---:|\n")
		fmt.Fprintf(w, "| %s | %d | %d | %s | %s | %s |\n",
			t.Symbol(),
			t.PositionCount(),
			t.SellCount(),
			t.TotalShares(),
			t.TotalValue(),
			t.AveragePrice(),
		)
		return true
	})
	return b.String()
}
