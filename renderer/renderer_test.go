package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/mintfolio/collection"
	"github.com/shopspring/decimal"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		ratio string
		want  string
	}{
		{"0.1234", "+12.34%"},
		{"-0.05", "-5.00%"},
		{"0", "+0.00%"},
		{"1.5", "+150.00%"},
	}
	for _, tt := range tests {
		ratio, err := decimal.NewFromString(tt.ratio)
		if err != nil {
			t.Fatal(err)
		}
		if got := Percent(ratio); got != tt.want {
			t.Errorf("Percent(%s) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	holdings := []collection.Holding{
		{
			ProductID:   "285",
			Name:        "Scarlet & Violet Booster Box",
			SealedQty:   3,
			OpenedQty:   1,
			SoldQty:     2,
			TotalBought: 6,
			SealedCost:  collection.M(300),
			OpenedCost:  collection.M(100),
			Revenue:     collection.M(320),
		},
	}

	got := HoldingsMarkdown(holdings)
	for _, want := range []string{
		"# Holdings",
		"| 285 | Scarlet & Violet Booster Box | 3 | 1 | 2 |",
		"$400.00", // cost basis
		"$100.00", // average unit cost over 4 held units
		"$320.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HoldingsMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestProductsMarkdown(t *testing.T) {
	products := []collection.Product{
		{ID: "510", Name: "Obsidian Flames Elite Trainer Box", FirstAvailable: collection.NewDate(2023, time.August, 11)},
	}
	got := ProductsMarkdown(products)
	if !strings.Contains(got, "| 510 | Obsidian Flames Elite Trainer Box | 2023-08-11 |") {
		t.Errorf("ProductsMarkdown() = %s", got)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	catalog := collection.NewCatalog()
	catalog.Add(collection.Product{ID: "285", Name: "Booster Box", FirstAvailable: collection.NewDate(2023, time.March, 31)})
	ledger := collection.NewLedger(catalog)

	if _, err := ledger.Buy("285", 3, collection.M(100), collection.NewDate(2023, time.March, 31)); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Sell("285", 1, collection.M(150), collection.NewDate(2024, time.February, 1)); err != nil {
		t.Fatal(err)
	}
	// Requested before first availability, recorded with the adjusted date.
	if _, err := ledger.Open("285", 1, collection.NewDate(2023, time.January, 1)); err != nil {
		t.Fatal(err)
	}

	got := TransactionsMarkdown(ledger.Transactions())
	for _, want := range []string{
		"Bought 3 of 285 at $100.00 (total $300.00)",
		"Sold 1 of 285 at $150.00 (gain +$50.00)",
		"Opened 1 of 285",
		"(requested 2023-01-01)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("TransactionsMarkdown() missing %q in:\n%s", want, got)
		}
	}

	if got := TransactionsMarkdown(nil); !strings.Contains(got, "No transactions.") {
		t.Errorf("TransactionsMarkdown(nil) = %s", got)
	}
}

func TestValuationMarkdown_Empty(t *testing.T) {
	got := ValuationMarkdown(nil)
	if !strings.Contains(got, "No transactions or price observations in range.") {
		t.Errorf("ValuationMarkdown(nil) = %s", got)
	}
}
