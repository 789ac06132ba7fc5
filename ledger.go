package taxme

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Format describes how a ledger file is written.
type Format struct {
	Schema   *LabelSchema
	Codec    Codec
	Currency string // ISO code attached to prices, for display only
}

// Record is a single transaction of a ledger.
//
// Row is kept verbatim, only the output columns are replaced when the record is encoded
// back.
type Record struct {
	Line int      // 1-based line number in the source
	Row  []string // raw cells

	Year      int
	Kind      Kind
	UnitPrice Money
	Quantity  Quantity
	Taxed     bool // already taxed, meaningful for sells only

	// Closed is the quantity of a buy already matched against sells.
	Closed Quantity
	// Gain is the realized gain of a sell.
	Gain Money
	// TaxedOut is true if a sell was taxed before, or is taxed by this run.
	TaxedOut bool
}

// Proceeds returns the income of a sell: unit price times quantity.
func (r Record) Proceeds() Money { return r.UnitPrice.Mul(r.Quantity) }

// Open returns the quantity of a buy not yet matched against sells.
func (r Record) Open() Quantity { return r.Quantity.Sub(r.Closed) }

// Ledger is the list of transactions on a single asset.
//
// In a Ledger transactions are kept in file order, which is assumed to be chronological.
type Ledger struct {
	format  Format
	header  []string
	columns map[Role]int // column index of every column role
	records []Record
	matched bool
}

// Header returns the header cells.
func (l *Ledger) Header() []string { return slices.Clone(l.header) }

// Records returns a copy of the records in file order, rows included.
func (l *Ledger) Records() []Record {
	records := slices.Clone(l.records)
	for i := range records {
		records[i].Row = slices.Clone(records[i].Row)
	}
	return records
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Column returns the index of the column holding role r.
func (l *Ledger) Column(r Role) (int, bool) {
	i, ok := l.columns[r]
	return i, ok
}

// DecodeLedger reads a ledger: a header line followed by one line per transaction.
func DecodeLedger(r io.Reader, f Format) (*Ledger, error) {
	if f.Schema == nil {
		return nil, fmt.Errorf("%w: no label schema", ErrIncompleteSchema)
	}
	l := &Ledger{format: f, columns: make(map[Role]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("cannot read header: %w", err)
		}
		return nil, ErrMissingHeader
	}
	headerLine := strings.TrimSuffix(scanner.Text(), "\r")
	if headerLine == "" {
		return nil, ErrMissingHeader
	}
	if err := l.parseHeader(f.Codec.Decode(headerLine)); err != nil {
		return nil, err
	}

	lineNumber := 1
	for scanner.Scan() {
		lineNumber++
		rec, err := l.parseRecord(lineNumber, strings.TrimSuffix(scanner.Text(), "\r"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		l.records = append(l.records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read line %d: %w", lineNumber+1, err)
	}
	return l, nil
}

// parseHeader locates every column role in the header.
func (l *Ledger) parseHeader(header []string) error {
	l.header = header
	for _, role := range ColumnRoles {
		text, err := l.format.Schema.Resolve(role)
		if err != nil {
			return err
		}
		i := slices.Index(header, text)
		if i < 0 {
			return fmt.Errorf("%w %s (%q)", ErrMissingColumn, role, text)
		}
		l.columns[role] = i
	}
	return nil
}

func (l *Ledger) parseRecord(lineNumber int, line string) (Record, error) {
	row := l.format.Codec.Decode(line)
	if len(row) != len(l.header) {
		return Record{}, fmt.Errorf("%w: %d cells, header has %d", ErrRowSizeMismatch, len(row), len(l.header))
	}
	rec := Record{Line: lineNumber, Row: row}
	cell := func(r Role) string { return row[l.columns[r]] }

	var err error
	if rec.Year, err = parseYear(cell(RoleDate)); err != nil {
		return rec, err
	}
	if rec.Kind, err = l.parseKind(cell(RoleType)); err != nil {
		return rec, err
	}
	if rec.UnitPrice, err = ParsePrice(cell(RoleUnitPrice), l.format.Currency); err != nil {
		return rec, fmt.Errorf("%s: %w", RoleUnitPrice, err)
	}
	if rec.Quantity, err = ParseQuantity(cell(RoleQuantity)); err != nil {
		return rec, fmt.Errorf("%s: %w", RoleQuantity, err)
	}
	rec.Taxed = l.parseTaxed(cell(RoleIsTaxed))
	rec.Gain = M(0, l.format.Currency)
	return rec, nil
}

// parseYear accepts digits only: no sign, no blanks.
func parseYear(s string) (int, error) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fmt.Errorf("%w %q", ErrInvalidYear, s)
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidYear, s)
	}
	return year, nil
}

func (l *Ledger) parseKind(s string) (Kind, error) {
	role, err := l.format.Schema.Identify(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidType, s)
	}
	switch role {
	case RoleTypeBuy:
		return Buy, nil
	case RoleTypeSell:
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w %q: is %s", ErrInvalidType, s, role)
	}
}

// parseTaxed is lenient: empty or garbled cells are read as not taxed.
func (l *Ledger) parseTaxed(s string) bool {
	role, err := l.format.Schema.Identify(s)
	return err == nil && role == RoleYes
}
