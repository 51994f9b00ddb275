package collection

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLedger_JSONLRoundTrip(t *testing.T) {
	ledger := testLedger(t)
	if _, err := ledger.Buy("285", 3, M(100), NewDate(2024, time.January, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Open("285", 1, NewDate(2024, time.February, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Sell("285", 2, M(150), NewDate(2024, time.March, 1)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}

	decoded, err := DecodeLedger(bytes.NewReader(buf.Bytes()), testCatalog(t))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}

	want := ledger.Transactions()
	got := decoded.Transactions()
	if len(got) != len(want) {
		t.Fatalf("round trip = %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			t.Errorf("transaction %d differs after round trip:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}

	// The replay rebuilt the same lot state.
	wantH, err := ledger.Holdings("285")
	if err != nil {
		t.Fatal(err)
	}
	gotH, err := decoded.Holdings("285")
	if err != nil {
		t.Fatal(err)
	}
	if gotH.SealedQty != wantH.SealedQty || gotH.OpenedQty != wantH.OpenedQty || gotH.SoldQty != wantH.SoldQty ||
		!gotH.CostBasis().Equal(wantH.CostBasis()) || !gotH.Revenue.Equal(wantH.Revenue) {
		t.Errorf("holdings differ after round trip:\n got %+v\nwant %+v", gotH, wantH)
	}

	// New ids continue after the recorded ones.
	tx, err := decoded.Buy("510", 1, M(40), NewDate(2024, time.April, 1))
	if err != nil {
		t.Fatal(err)
	}
	if tx.Seq() != 4 {
		t.Errorf("next id after decode = %d, want 4", tx.Seq())
	}
}

func TestEncodeLedger_CanonicalForm(t *testing.T) {
	ledger := testLedger(t)
	if _, err := ledger.Buy("285", 2, M(99.5), NewDate(2024, time.January, 1)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(buf.String())

	// Keys come in a stable order and decimals are written without quotes.
	wantPrefix := `{"command":"buy","id":1,"product":"285","quantity":2,"requested":"2024-01-01","date":"2024-01-01",`
	if !strings.HasPrefix(line, wantPrefix) {
		t.Errorf("EncodeLedger() line = %s, want prefix %s", line, wantPrefix)
	}
	if !strings.HasSuffix(line, `"price":99.5}`) {
		t.Errorf("EncodeLedger() line = %s, want price suffix", line)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	catalog := testCatalog(t)

	tests := []struct {
		name  string
		input string
	}{
		{"unknown command", `{"command":"trade","id":1,"product":"285","quantity":1,"requested":"2024-01-01","date":"2024-01-01","created":"2024-06-01T12:00:00Z"}`},
		{"not json", `buy 2 boxes`},
		{"inconsistent history", `{"command":"sell","id":1,"product":"285","quantity":1,"requested":"2024-01-01","date":"2024-01-01","created":"2024-06-01T12:00:00Z","price":10,"gain":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tt.input+"\n"), catalog); err == nil {
				t.Error("DecodeLedger() should fail")
			}
		})
	}
}

func TestDecodeLedger_SkipsBlankLines(t *testing.T) {
	input := `{"command":"buy","id":1,"product":"285","quantity":1,"requested":"2024-01-01","date":"2024-01-01","created":"2024-06-01T12:00:00Z","price":10}

`
	ledger, err := DecodeLedger(strings.NewReader(input), testCatalog(t))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if n := len(ledger.Transactions()); n != 1 {
		t.Errorf("DecodeLedger() = %d transactions, want 1", n)
	}
}
