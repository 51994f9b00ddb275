package collection

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
)

// PriceProvider is the external interface the valuation engine needs. It must
// answer as-of queries efficiently since the valuation replay probes every
// held product on every date of the requested range.
type PriceProvider interface {
	// PriceOn returns the market price observed exactly on that date.
	PriceOn(productID string, on Date) (Money, bool)
	// PriceAsOf returns the price on that date or the most recent prior
	// observation (last observation carried forward).
	PriceAsOf(productID string, on Date) (Money, bool)
	// ObservationDates returns the sorted distinct dates carrying at least
	// one price observation within the range.
	ObservationDates(r Range) []Date
}

// priceHistory stores a chronological series of prices for one product.
// Dates are unique and the series is always sorted.
type priceHistory struct {
	days   []Date
	values []Money
}

// append adds an observation, overwriting any existing value on that date.
func (h *priceHistory) append(on Date, price Money) {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.values[i] = price
		return
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, price)
}

// get returns the value observed exactly on that day.
func (h *priceHistory) get(on Date) (Money, bool) {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if !found {
		return Money{}, false
	}
	return h.values[i], true
}

// asOf returns the value on that day, or the most recent value before it.
func (h *priceHistory) asOf(on Date) (Money, bool) {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		return Money{}, false // no observation on or before that day
	}
	return h.values[i-1], true
}

// latest returns the most recent observation.
func (h *priceHistory) latest() (Date, Money, bool) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, Money{}, false
	}
	return h.days[last], h.values[last], true
}

// PriceTable holds the daily market price series of every product. It is the
// in-memory implementation of PriceProvider backing the valuation engine.
type PriceTable struct {
	histories map[string]*priceHistory
}

// NewPriceTable creates an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{histories: make(map[string]*priceHistory)}
}

// Add records a price observation, overwriting any previous observation for
// the same product and date.
func (t *PriceTable) Add(productID string, on Date, price Money) {
	h, ok := t.histories[productID]
	if !ok {
		h = &priceHistory{}
		t.histories[productID] = h
	}
	h.append(on, price)
}

// PriceOn returns the price observed exactly on that date.
func (t *PriceTable) PriceOn(productID string, on Date) (Money, bool) {
	h, ok := t.histories[productID]
	if !ok {
		return Money{}, false
	}
	return h.get(on)
}

// PriceAsOf returns the price on that date or the most recent prior observation.
func (t *PriceTable) PriceAsOf(productID string, on Date) (Money, bool) {
	h, ok := t.histories[productID]
	if !ok {
		return Money{}, false
	}
	return h.asOf(on)
}

// Latest returns the most recent observation for a product.
func (t *PriceTable) Latest(productID string) (Date, Money, bool) {
	h, ok := t.histories[productID]
	if !ok {
		return Date{}, Money{}, false
	}
	return h.latest()
}

// ObservationDates returns the sorted distinct dates with at least one
// observation within the range.
func (t *PriceTable) ObservationDates(r Range) []Date {
	seen := make(map[Date]struct{})
	for _, h := range t.histories {
		for _, d := range h.days {
			if r.Contains(d) {
				seen[d] = struct{}{}
			}
		}
	}
	dates := slices.Collect(maps.Keys(seen))
	slices.SortFunc(dates, Date.Compare)
	return dates
}

// Observation is one (product, date, price) row of the table.
type Observation struct {
	Product string
	Date    Date
	Price   Money
}

// Observations iterates over all rows, products in id order and dates
// chronological.
func (t *PriceTable) Observations() iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		for _, id := range slices.Sorted(maps.Keys(t.histories)) {
			h := t.histories[id]
			for i, on := range h.days {
				if !yield(Observation{Product: id, Date: on, Price: h.values[i]}) {
					return
				}
			}
		}
	}
}

var _ PriceProvider = (*PriceTable)(nil)

// priceRow is the JSONL persistence form of one observation, matching the
// collaborator's daily price exports.
type priceRow struct {
	Date    Date   `json:"date"`
	Product string `json:"product"`
	Price   Money  `json:"price"`
}

// DecodePrices reads price observations from a stream of JSONL data.
func DecodePrices(r io.Reader) (*PriceTable, error) {
	table := NewPriceTable()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var row priceRow
		if err := json.Unmarshal(lineBytes, &row); err != nil {
			return nil, fmt.Errorf("could not decode price row %q: %w", string(lineBytes), err)
		}
		table.Add(row.Product, row.Date, row.Price)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading prices: %w", err)
	}
	return table, nil
}

// EncodePrices persists the table as JSONL, one observation per line, in
// canonical product then date order.
func EncodePrices(w io.Writer, table *PriceTable) error {
	for obs := range table.Observations() {
		var jw jsonObjectWriter
		jw.Append("date", obs.Date)
		jw.Append("product", obs.Product)
		jw.Append("price", obs.Price)
		line, err := jw.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("failed to write price row: %w", err)
		}
	}
	return nil
}
