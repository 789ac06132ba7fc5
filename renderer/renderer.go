// Package renderer renders gains reports as markdown.
package renderer

import (
	"github.com/etnz/taxme"
)

// Asset is the result of processing one ledger.
type Asset struct {
	Name     string
	Outcome  taxme.Outcome
	Lots     []taxme.Lot
	Warnings []taxme.Warning
}

// Total sums the outcome of every asset.
func Total(assets []Asset) taxme.Outcome {
	var total taxme.Outcome
	for _, a := range assets {
		total = total.Add(a.Outcome)
	}
	return total
}
