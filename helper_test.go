package taxme

import (
	"strings"
	"testing"
)

// testLabels uses tokens that differ from role names, as exchange exports do.
const testLabels = `Date=Year
Type=Side
UnitPrice=Price
Quantity=Amount
ClosedPositionQuantity=Closed
Gain=Gain
IsTaxed=Taxed

Type.Buy=BUY
Type.Sell=SELL
Yes=yes
No=no
NotAvailable=N/A
`

const testHeader = "Year,Side,Price,Amount,Closed,Gain,Taxed,Memo"

func testSchema(t *testing.T) *LabelSchema {
	t.Helper()
	s, err := DecodeLabelSchema(strings.NewReader(testLabels))
	if err != nil {
		t.Fatalf("DecodeLabelSchema() error = %v", err)
	}
	return s
}

// decodeTest decodes a ledger made of the test header followed by lines.
func decodeTest(t *testing.T, lines ...string) *Ledger {
	t.Helper()
	content := testHeader + "\n" + strings.Join(lines, "\n")
	l, err := DecodeLedger(strings.NewReader(content), Format{Schema: testSchema(t)})
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	return l
}

// matchTest decodes and matches a ledger.
func matchTest(t *testing.T, year int, commit bool, lines ...string) (*Ledger, []Warning) {
	t.Helper()
	l := decodeTest(t, lines...)
	warnings, err := Matcher{}.Match(l, year, commit)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	return l, warnings
}
