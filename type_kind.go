package taxme

// Kind is the kind of a transaction.
type Kind int

const (
	// Buy opens a lot.
	Buy Kind = iota
	// Sell consumes the oldest open lots first.
	Sell
)

func (k Kind) String() string {
	switch k {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}
