package taxme

import "fmt"

// Outcome is the financial outcome of sells: total income and total cost.
type Outcome struct {
	Income Money
	Cost   Money
}

// Net returns the realized gain, income minus cost.
func (o Outcome) Net() Money { return o.Income.Sub(o.Cost) }

// Add sums two outcomes.
func (o Outcome) Add(p Outcome) Outcome {
	return Outcome{Income: o.Income.Add(p.Income), Cost: o.Cost.Add(p.Cost)}
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s - %s = %s", o.Income, o.Cost, o.Net())
}

// Outcome returns the outcome of the sells that happened during year.
//
// The ledger must have been matched, gains are meaningless otherwise.
func (l *Ledger) Outcome(year int) Outcome {
	result := Outcome{Income: M(0, l.format.Currency), Cost: M(0, l.format.Currency)}
	for _, r := range l.records {
		if r.Kind != Sell || r.Year != year {
			continue
		}
		income := r.Proceeds()
		result.Income = result.Income.Add(income)
		result.Cost = result.Cost.Add(income.Sub(r.Gain))
	}
	return result
}
