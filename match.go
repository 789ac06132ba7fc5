package taxme

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the largest quantity left to sell, once every lot is consumed,
// that is still accepted with a Warning.
//
// Exchanges record quantities with at most 8 decimals, so any true shortfall is at least
// 1e-8.
var DefaultTolerance = Q(decimal.New(1, -8))

// Warning is a non fatal condition met while matching sells against buys.
type Warning struct {
	Line     int      // line of the sell
	Residual Quantity // quantity left to sell when all lots were consumed
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: positive remaining sold quantity (likely loss of significance): %s", w.Line, w.Residual)
}

// Matcher matches sells against buys in FIFO order.
type Matcher struct {
	// Tolerance overrides DefaultTolerance when positive.
	Tolerance Quantity
	// Strict disables the tolerance: any quantity oversold is an error.
	Strict bool
}

func (m Matcher) tolerance() Quantity {
	if m.Strict {
		return Q(0)
	}
	if m.Tolerance.IsPositive() {
		return m.Tolerance
	}
	return DefaultTolerance
}

// Match computes the outputs of every record of l, in file order.
//
// Buys get the quantity closed by later sells. Sells get their realized gain, and are
// marked taxed if they already were, or if commitTax is set and they happened during
// reportingYear.
//
// A ledger can only be matched once.
func (m Matcher) Match(l *Ledger, reportingYear int, commitTax bool) ([]Warning, error) {
	if l.matched {
		return nil, ErrAlreadyMatched
	}
	l.matched = true

	var (
		queue    lots
		warnings []Warning
		tol      = m.tolerance()
	)
	for i := range l.records {
		r := &l.records[i]
		switch r.Kind {
		case Buy:
			r.Closed = Q(0)
			queue = append(queue, i)
		case Sell:
			cost, residual, err := queue.sell(l.records, r.Quantity, tol)
			if err != nil {
				return warnings, fmt.Errorf("line %d: %w", r.Line, err)
			}
			if !residual.IsZero() {
				warnings = append(warnings, Warning{Line: r.Line, Residual: residual})
			}
			r.Gain = r.Proceeds().Sub(cost)
			r.TaxedOut = r.Taxed || (commitTax && r.Year == reportingYear)
		}
	}
	return warnings, nil
}

// Lot is the open part of a buy.
type Lot struct {
	Line      int
	Year      int
	UnitPrice Money
	Quantity  Quantity // still open
}

// OpenLots returns the buys not fully consumed by sells, oldest first.
func (l *Ledger) OpenLots() []Lot {
	var open []Lot
	for _, r := range l.records {
		if r.Kind != Buy || !r.Open().IsPositive() {
			continue
		}
		open = append(open, Lot{Line: r.Line, Year: r.Year, UnitPrice: r.UnitPrice, Quantity: r.Open()})
	}
	return open
}

// Position returns the total open quantity.
func (l *Ledger) Position() Quantity {
	total := Q(0)
	for _, lot := range l.OpenLots() {
		total = total.Add(lot.Quantity)
	}
	return total
}
