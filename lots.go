package taxme

import "fmt"

// lots is the FIFO queue of buys not yet fully consumed, as indices into the ledger
// records. It only lives for one matching pass.
type lots []int

// sell consumes quantityToSell from the oldest lots first and returns the cost of the
// consumed portions. Consumed quantities are recorded in the buys' Closed field.
//
// If the queue runs dry with less than tolerance left to sell, the remainder is reported
// as a residual instead of an error.
func (l *lots) sell(records []Record, quantityToSell Quantity, tolerance Quantity) (cost Money, residual Quantity, err error) {
	remaining := quantityToSell
	if remaining.IsNegative() {
		return cost, remaining, fmt.Errorf("%w: negative quantity %s to sell", ErrArithmeticInconsistency, remaining)
	}

	for !remaining.IsZero() {
		if len(*l) == 0 {
			if remaining.LessThan(tolerance) {
				return cost, remaining, nil
			}
			return cost, remaining, fmt.Errorf("%w: %s left to sell", ErrOversoldQuantity, remaining)
		}

		buy := &records[(*l)[0]]
		open := buy.Open()
		if open.IsNegative() {
			return cost, remaining, fmt.Errorf("%w: buy on line %d closed %s of %s",
				ErrArithmeticInconsistency, buy.Line, buy.Closed, buy.Quantity)
		}
		take := remaining.Min(open)
		if take.Equal(open) {
			// Full sale of this lot
			*l = (*l)[1:]
		}

		buy.Closed = buy.Closed.Add(take)
		cost = cost.Add(buy.UnitPrice.Mul(take))
		remaining = remaining.Sub(take)

		if remaining.IsNegative() || buy.Closed.GreaterThan(buy.Quantity) {
			return cost, remaining, fmt.Errorf("%w: buy on line %d closed %s of %s, %s left to sell",
				ErrArithmeticInconsistency, buy.Line, buy.Closed, buy.Quantity, remaining)
		}
	}
	return cost, remaining, nil
}
