package collection

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Product is an external catalog entry. It is immutable for this core: the
// catalog is supplied by the collaborator layer that discovers products.
type Product struct {
	ID             string
	Name           string
	FirstAvailable Date // earliest date the product has a market price
}

// CatalogProvider is the external interface the core needs to resolve
// products. Lookup fails with ErrUnknownProduct when the id is absent.
type CatalogProvider interface {
	Lookup(productID string) (Product, error)
}

// Catalog is an in-memory catalog of products indexed by id.
type Catalog struct {
	products map[string]Product
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{products: make(map[string]Product)}
}

// Add registers a product in the catalog, replacing any previous entry with
// the same id.
func (c *Catalog) Add(p Product) {
	c.products[p.ID] = p
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int { return len(c.products) }

// Lookup returns the product with this id, or ErrUnknownProduct.
func (c *Catalog) Lookup(productID string) (Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return Product{}, fmt.Errorf("product %q: %w", productID, ErrUnknownProduct)
	}
	return p, nil
}

// Search returns up to limit products whose name or id contains term,
// case-insensitively. An empty term returns the first products in id order.
func (c *Catalog) Search(term string, limit int) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	var found []Product
	for _, id := range slices.Sorted(maps.Keys(c.products)) {
		p := c.products[id]
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.ID), term) {
			continue
		}
		found = append(found, p)
		if limit > 0 && len(found) == limit {
			break
		}
	}
	return found
}

// All iterates over the products in id order.
func (c *Catalog) All() iter.Seq[Product] {
	return func(yield func(Product) bool) {
		for _, id := range slices.Sorted(maps.Keys(c.products)) {
			if !yield(c.products[id]) {
				return
			}
		}
	}
}

// EffectiveDate validates a requested transaction date against the product's
// first-available date. A date earlier than the first-available date is
// adjusted forward to it, and the adjustment is flagged. It fails with
// ErrUnknownProduct when the product is not in the catalog.
func EffectiveDate(catalog CatalogProvider, productID string, requested Date) (effective Date, adjusted bool, err error) {
	p, err := catalog.Lookup(productID)
	if err != nil {
		return Date{}, false, err
	}
	if requested.Before(p.FirstAvailable) {
		return p.FirstAvailable, true, nil
	}
	return requested, false, nil
}

// DecodeCatalog reads a product catalog from CSV with a header line of
// productId,name,earliestDate.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read catalog header: %w", err)
	}
	if header[0] != "productId" || header[1] != "name" || header[2] != "earliestDate" {
		return nil, fmt.Errorf("unexpected catalog header %v, want [productId name earliestDate]", header)
	}

	catalog := NewCatalog()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read catalog record: %w", err)
		}
		first, err := ParseDate(record[2])
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", record[0], err)
		}
		catalog.Add(Product{ID: record[0], Name: record[1], FirstAvailable: first})
	}
	return catalog, nil
}

// EncodeCatalog writes the catalog as CSV in the same layout DecodeCatalog reads.
func EncodeCatalog(w io.Writer, catalog *Catalog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"productId", "name", "earliestDate"}); err != nil {
		return err
	}
	for p := range catalog.All() {
		if err := cw.Write([]string{p.ID, p.Name, p.FirstAvailable.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
