// Package taxme reconciles the ledger of buy and sell transactions on a single asset
// and computes, for every sell, the realized cost and gain under first-in-first-out
// lot matching.
//
// Ledgers are exported by exchanges with their own column names and values. A
// [LabelSchema] maps the semantic roles the package needs (the date column, the "buy"
// value, ...) to the text used by a given source. A [Codec] splits delimited lines into
// cells.
//
// The typical run is:
//   - [DecodeLabelSchema] reads the `role=token` labels file.
//   - [DecodeLedger] reads a ledger using that schema.
//   - [Matcher.Match] consumes buys in FIFO order for every sell.
//   - [Ledger.Outcome] sums income and cost for a year.
//   - [EncodeLedger] writes the ledger back with its output columns filled in.
//
// Quantities and prices are decimals, so repeated subtractions are exact. A sell that
// exceeds every remaining lot by less than [DefaultTolerance] is still accepted, with a
// [Warning], to absorb rounding already present in exported data.
package taxme
