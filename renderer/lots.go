package renderer

import (
	"fmt"
	"io"
	"strings"
)

// LotsMarkdown renders the lots still open in every asset, oldest first.
func LotsMarkdown(assets []Asset) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Open Lots\n")
	for _, a := range assets {
		fmt.Fprintf(&b, "\n## %s\n\n", a.Name)
		printed := false
		ConditionalBlock(&b, func(w io.Writer) bool {
			fmt.Fprintln(w, "| Line | Year | Quantity | Unit Price | Cost |")
			fmt.Fprintln(w, "|---:|---:|---:|---:|---:|")
			for _, lot := range a.Lots {
				fmt.Fprintf(w, "| %d | %d | %s | %s | %s |\n",
					lot.Line,
					lot.Year,
					lot.Quantity,
					lot.UnitPrice,
					lot.UnitPrice.Mul(lot.Quantity),
				)
			}
			printed = len(a.Lots) > 0
			return printed
		})
		if !printed {
			fmt.Fprintln(&b, "No open lot.")
		}
	}
	return b.String()
}
