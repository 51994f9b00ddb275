package collection

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// testCatalog returns a small catalog shared by the package tests.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	c.Add(Product{ID: "285", Name: "Scarlet & Violet Booster Box", FirstAvailable: NewDate(2023, time.March, 31)})
	c.Add(Product{ID: "510", Name: "Obsidian Flames Elite Trainer Box", FirstAvailable: NewDate(2023, time.August, 11)})
	c.Add(Product{ID: "731", Name: "151 Ultra Premium Collection", FirstAvailable: NewDate(2023, time.October, 6)})
	return c
}

func TestCatalog_Lookup(t *testing.T) {
	c := testCatalog(t)

	p, err := c.Lookup("285")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if p.Name != "Scarlet & Violet Booster Box" {
		t.Errorf("Lookup() name = %q", p.Name)
	}

	_, err = c.Lookup("999")
	if !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("Lookup(999) error = %v, want ErrUnknownProduct", err)
	}
}

func TestEffectiveDate(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name         string
		requested    Date
		want         Date
		wantAdjusted bool
	}{
		{"after first available", NewDate(2024, time.January, 5), NewDate(2024, time.January, 5), false},
		{"on first available", NewDate(2023, time.March, 31), NewDate(2023, time.March, 31), false},
		{"before first available", NewDate(2023, time.January, 1), NewDate(2023, time.March, 31), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, adjusted, err := EffectiveDate(c, "285", tt.requested)
			if err != nil {
				t.Fatalf("EffectiveDate() failed: %v", err)
			}
			if got != tt.want || adjusted != tt.wantAdjusted {
				t.Errorf("EffectiveDate(%v) = (%v, %v), want (%v, %v)",
					tt.requested, got, adjusted, tt.want, tt.wantAdjusted)
			}
		})
	}

	if _, _, err := EffectiveDate(c, "999", Today()); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("EffectiveDate() error = %v, want ErrUnknownProduct", err)
	}
}

func TestCatalog_Search(t *testing.T) {
	c := testCatalog(t)

	if got := c.Search("box", 0); len(got) != 2 {
		t.Errorf("Search(box) = %d products, want 2", len(got))
	}
	if got := c.Search("OBSIDIAN", 0); len(got) != 1 || got[0].ID != "510" {
		t.Errorf("Search(OBSIDIAN) = %v, want product 510", got)
	}
	if got := c.Search("731", 0); len(got) != 1 {
		t.Errorf("Search by id = %d products, want 1", len(got))
	}
	if got := c.Search("", 2); len(got) != 2 {
		t.Errorf("Search with limit = %d products, want 2", len(got))
	}
}

func TestCatalog_CSVRoundTrip(t *testing.T) {
	c := testCatalog(t)

	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, c); err != nil {
		t.Fatalf("EncodeCatalog() failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "productId,name,earliestDate\n") {
		t.Errorf("EncodeCatalog() missing header, got %q", buf.String())
	}

	decoded, err := DecodeCatalog(&buf)
	if err != nil {
		t.Fatalf("DecodeCatalog() failed: %v", err)
	}
	if decoded.Len() != c.Len() {
		t.Fatalf("round trip lost products: %d != %d", decoded.Len(), c.Len())
	}
	for p := range c.All() {
		got, err := decoded.Lookup(p.ID)
		if err != nil {
			t.Fatalf("Lookup(%s) after round trip failed: %v", p.ID, err)
		}
		if got != p {
			t.Errorf("round trip product = %+v, want %+v", got, p)
		}
	}
}

func TestDecodeCatalog_BadHeader(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader("id,label,date\n285,Box,2023-03-31\n"))
	if err == nil {
		t.Error("DecodeCatalog() should reject an unexpected header")
	}
}
