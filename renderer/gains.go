package renderer

import (
	"fmt"
	"io"
	"strings"
)

// GainsMarkdown renders the realized gains of every asset for year, and their total.
func GainsMarkdown(year int, commitTax bool, assets []Asset) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Report for %d\n\n", year)
	if commitTax {
		fmt.Fprint(&b, "Sells of the year are marked as taxed.\n\n")
	} else {
		fmt.Fprint(&b, "Dry run: taxed flags are left unchanged.\n\n")
	}

	fmt.Fprint(&b, "## Gains per Asset\n\n")
	fmt.Fprintln(&b, "| Asset | Income | Cost | Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, a := range assets {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			a.Name,
			a.Outcome.Income,
			a.Outcome.Cost,
			a.Outcome.Net().SignedString(),
		)
	}
	total := Total(assets)
	fmt.Fprintf(&b, "| **%s** | **%s** | **%s** | **%s** |\n",
		"Total",
		total.Income,
		total.Cost,
		total.Net().SignedString(),
	)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Warnings\n\n")
		n := 0
		for _, a := range assets {
			for _, warn := range a.Warnings {
				fmt.Fprintf(w, "* %s: %s\n", a.Name, warn)
				n++
			}
		}
		return n > 0
	})

	return b.String()
}
