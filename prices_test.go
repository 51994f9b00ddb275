package collection

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestPriceTable_AsOf(t *testing.T) {
	table := NewPriceTable()
	table.Add("285", NewDate(2024, time.January, 10), M(100))
	table.Add("285", NewDate(2024, time.January, 20), M(110))

	tests := []struct {
		name string
		on   Date
		want Money
		ok   bool
	}{
		{"before first observation", NewDate(2024, time.January, 5), Money{}, false},
		{"on an observation", NewDate(2024, time.January, 10), M(100), true},
		{"gap carries last observation forward", NewDate(2024, time.January, 15), M(100), true},
		{"on the second observation", NewDate(2024, time.January, 20), M(110), true},
		{"after the last observation", NewDate(2024, time.February, 1), M(110), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.PriceAsOf("285", tt.on)
			if ok != tt.ok {
				t.Fatalf("PriceAsOf(%v) ok = %v, want %v", tt.on, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("PriceAsOf(%v) = %s, want %s", tt.on, got, tt.want)
			}
		})
	}

	if _, ok := table.PriceAsOf("999", NewDate(2024, time.January, 15)); ok {
		t.Error("PriceAsOf() should miss for an unknown product")
	}
}

func TestPriceTable_PriceOn_ExactOnly(t *testing.T) {
	table := NewPriceTable()
	table.Add("285", NewDate(2024, time.January, 10), M(100))

	if _, ok := table.PriceOn("285", NewDate(2024, time.January, 11)); ok {
		t.Error("PriceOn() should not carry observations forward")
	}
	if got, ok := table.PriceOn("285", NewDate(2024, time.January, 10)); !ok || !got.Equal(M(100)) {
		t.Errorf("PriceOn() = %s, %v", got, ok)
	}
}

func TestPriceTable_Overwrite(t *testing.T) {
	table := NewPriceTable()
	on := NewDate(2024, time.January, 10)
	table.Add("285", on, M(100))
	table.Add("285", on, M(105)) // same-day correction replaces

	got, _ := table.PriceOn("285", on)
	if !got.Equal(M(105)) {
		t.Errorf("PriceOn() after overwrite = %s, want $105.00", got)
	}
	if dates := table.ObservationDates(NewRange(on, on)); len(dates) != 1 {
		t.Errorf("overwrite created a duplicate date: %v", dates)
	}
	if day, price, ok := table.Latest("285"); !ok || day != on || !price.Equal(M(105)) {
		t.Errorf("Latest() = %v %s %v, want %v $105.00", day, price, ok, on)
	}
}

func TestPriceTable_ObservationDates(t *testing.T) {
	table := NewPriceTable()
	table.Add("285", NewDate(2024, time.January, 10), M(100))
	table.Add("510", NewDate(2024, time.January, 10), M(40)) // same day, other product
	table.Add("510", NewDate(2024, time.January, 12), M(41))
	table.Add("285", NewDate(2024, time.February, 1), M(110))

	got := table.ObservationDates(NewRange(NewDate(2024, time.January, 1), NewDate(2024, time.January, 31)))
	want := []Date{NewDate(2024, time.January, 10), NewDate(2024, time.January, 12)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ObservationDates() = %v, want %v", got, want)
	}
}

func TestPrices_JSONLRoundTrip(t *testing.T) {
	table := NewPriceTable()
	table.Add("285", NewDate(2024, time.January, 10), M(99.99))
	table.Add("510", NewDate(2024, time.January, 12), M(41.25))

	var buf bytes.Buffer
	if err := EncodePrices(&buf, table); err != nil {
		t.Fatalf("EncodePrices() failed: %v", err)
	}
	if !strings.Contains(buf.String(), `{"date":"2024-01-10","product":"285","price":99.99}`) {
		t.Errorf("EncodePrices() unexpected output:\n%s", buf.String())
	}

	decoded, err := DecodePrices(&buf)
	if err != nil {
		t.Fatalf("DecodePrices() failed: %v", err)
	}
	got, ok := decoded.PriceOn("510", NewDate(2024, time.January, 12))
	if !ok || !got.Equal(M(41.25)) {
		t.Errorf("round trip price = %s, %v", got, ok)
	}
}

func TestDecodePrices_BadRow(t *testing.T) {
	if _, err := DecodePrices(strings.NewReader(`{"date":"not-a-date","product":"285","price":1}` + "\n")); err == nil {
		t.Error("DecodePrices() should reject an invalid date")
	}
}
