package taxme

import (
	"bufio"
	"fmt"
	"io"
	"slices"
)

// EncodeLedger writes the header and every record of l to w, with the output columns
// filled in. Every other cell is written back unchanged.
func EncodeLedger(w io.Writer, l *Ledger) error {
	bw := bufio.NewWriter(w)
	codec := l.format.Codec

	if err := writeLine(bw, codec, l.header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for _, r := range l.records {
		if err := writeLine(bw, codec, l.updatedRow(r)); err != nil {
			return fmt.Errorf("cannot write line %d: %w", r.Line, err)
		}
	}
	return bw.Flush()
}

func writeLine(w *bufio.Writer, codec Codec, cells []string) error {
	line, err := codec.Encode(cells)
	if err != nil {
		return err
	}
	_, err = w.WriteString(line + "\n")
	return err
}

// updatedRow returns a copy of the record row with its output cells set.
func (l *Ledger) updatedRow(r Record) []string {
	row := slices.Clone(r.Row)
	schema := l.format.Schema
	na := schema.mustResolve(RoleNotAvailable)

	closed := l.columns[RoleClosedPositionQuantity]
	gain := l.columns[RoleGain]
	taxed := l.columns[RoleIsTaxed]

	switch r.Kind {
	case Buy:
		row[closed] = r.Closed.String()
		row[gain] = na
		row[taxed] = na
	case Sell:
		row[closed] = na
		row[gain] = r.Gain.ExactString()
		if r.TaxedOut {
			row[taxed] = schema.mustResolve(RoleYes)
		} else {
			row[taxed] = schema.mustResolve(RoleNo)
		}
	}
	return row
}
