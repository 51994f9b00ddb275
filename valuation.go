package collection

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// ValuationPoint is one day of the valuation curve. It is derived data, never
// a source of truth: the same ledger and price series always reproduce the
// same point.
type ValuationPoint struct {
	Date          Date
	CostBasis     Money // cost of currently-sealed lots
	OpenedCost    Money // sunk cost of opened lots, excluded from market value
	MarketValue   Money // sealed quantity times market price, summed over products
	Spent         Money // cumulative purchase totals up to Date
	Revenue       Money // cumulative sale totals up to Date
	NetInvestment Money // Spent - Revenue
	UnrealizedPL  Money // MarketValue - CostBasis
	ROI           decimal.Decimal
	Unpriced      []string // held products with no price observation on or before Date
}

// Summary is an at-a-glance overview of the collection on a given date,
// aggregating the valuation point with the holdings counts.
type Summary struct {
	Date         Date
	Products     int
	SealedQty    int64
	OpenedQty    int64
	SoldQty      int64
	CostBasis    Money // sealed + opened
	MarketValue  Money
	Spent        Money
	Revenue      Money
	UnrealizedPL Money
	ROI          decimal.Decimal
}

// Valuation replays the ledger against a daily price series to produce the
// valuation curve. The replay is a pure computation: it never mutates the
// ledger and can be repeated or resumed from a cache at will.
type Valuation struct {
	ledger *Ledger
	prices PriceProvider
}

// NewValuation creates a valuation engine over a ledger and a price provider.
func NewValuation(ledger *Ledger, prices PriceProvider) *Valuation {
	return &Valuation{ledger: ledger, prices: prices}
}

// Series computes the valuation points for every relevant date in the range:
// the union of dates carrying a price observation and dates carrying a
// transaction. Cumulative spend and revenue account for the full ledger
// history before the range, so a partial range yields the same points as a
// full one.
func (v *Valuation) Series(r Range) ([]ValuationPoint, error) {
	txs := v.ledger.Transactions()
	return v.seriesOn(txs, v.gridDates(r, txs))
}

// PointOn computes the valuation point for one specific date, whether or not
// it carries an observation or a transaction.
func (v *Valuation) PointOn(on Date) (ValuationPoint, error) {
	txs := v.ledger.Transactions()
	points, err := v.seriesOn(txs, []Date{on})
	if err != nil {
		return ValuationPoint{}, err
	}
	return points[0], nil
}

// NewSummary aggregates the valuation and the holdings into a summary of the
// collection on a given date.
func (v *Valuation) NewSummary(on Date) (*Summary, error) {
	pt, err := v.PointOn(on)
	if err != nil {
		return nil, err
	}
	store, err := replay(v.ledger.TransactionsUpTo(on))
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Date:         on,
		CostBasis:    pt.CostBasis.Add(pt.OpenedCost),
		MarketValue:  pt.MarketValue,
		Spent:        pt.Spent,
		Revenue:      pt.Revenue,
		UnrealizedPL: pt.UnrealizedPL,
		ROI:          pt.ROI,
	}
	for _, id := range store.Products() {
		h := store.ProductHolding(id)
		summary.Products++
		summary.SealedQty += h.SealedQty
		summary.OpenedQty += h.OpenedQty
		summary.SoldQty += h.SoldQty
	}
	return summary, nil
}

// gridDates builds the sorted set of dates to value within the range.
func (v *Valuation) gridDates(r Range, txs []Transaction) []Date {
	seen := make(map[Date]struct{})
	for _, on := range v.prices.ObservationDates(r) {
		seen[on] = struct{}{}
	}
	for _, tx := range txs {
		if r.Contains(tx.When()) {
			seen[tx.When()] = struct{}{}
		}
	}
	grid := make([]Date, 0, len(seen))
	for on := range seen {
		grid = append(grid, on)
	}
	slices.SortFunc(grid, Date.Compare)
	return grid
}

// seriesOn performs one chronological sweep: transactions are applied to a
// fresh lot store as the grid advances, and a point is emitted per grid date.
func (v *Valuation) seriesOn(txs []Transaction, grid []Date) ([]ValuationPoint, error) {
	store := NewLotStore()
	var spent, revenue Money

	points := make([]ValuationPoint, 0, len(grid))
	i := 0
	for _, on := range grid {
		for i < len(txs) && !txs[i].When().After(on) {
			switch tx := txs[i].(type) {
			case Buy:
				store.AddLot(tx.ID, tx.Product, tx.Quantity, tx.UnitPrice, tx.Effective)
				spent = spent.Add(tx.Total())
			case Sell:
				if _, err := store.Consume(tx.Product, tx.Quantity, Sold, tx.UnitPrice, tx.Effective); err != nil {
					return nil, fmt.Errorf("valuation replay of sell #%d: %w", tx.ID, err)
				}
				revenue = revenue.Add(tx.Total())
			case Open:
				if _, err := store.Consume(tx.Product, tx.Quantity, Opened, Money{}, tx.Effective); err != nil {
					return nil, fmt.Errorf("valuation replay of open #%d: %w", tx.ID, err)
				}
			default:
				return nil, fmt.Errorf("unhandled transaction type: %T", txs[i])
			}
			i++
		}
		points = append(points, v.point(store, on, spent, revenue))
	}
	return points, nil
}

// point values the current store state against the price series on one date.
// A held product with no price observation on or before the date contributes
// zero to market value and is flagged in Unpriced.
func (v *Valuation) point(store *LotStore, on Date, spent, revenue Money) ValuationPoint {
	pt := ValuationPoint{Date: on, Spent: spent, Revenue: revenue}
	for _, id := range store.Products() {
		h := store.ProductHolding(id)
		pt.CostBasis = pt.CostBasis.Add(h.SealedCost)
		pt.OpenedCost = pt.OpenedCost.Add(h.OpenedCost)
		if h.SealedQty == 0 {
			continue
		}
		price, ok := v.prices.PriceAsOf(id, on)
		if !ok {
			pt.Unpriced = append(pt.Unpriced, id)
			continue
		}
		pt.MarketValue = pt.MarketValue.Add(price.MulQty(h.SealedQty))
	}
	pt.NetInvestment = pt.Spent.Sub(pt.Revenue)
	pt.UnrealizedPL = pt.MarketValue.Sub(pt.CostBasis)
	if !pt.Spent.IsZero() {
		pt.ROI = pt.MarketValue.Add(pt.Revenue).Sub(pt.Spent).Div(pt.Spent)
	}
	return pt
}

// SeriesCache memoizes computed valuation points. The curve is a pure
// function of the ledger and price series, so past points stay valid until
// new data arrives; Invalidate drops the affected tail and the next Update
// recomputes only what is missing.
type SeriesCache struct {
	valuation *Valuation
	points    []ValuationPoint
}

// NewSeriesCache creates an empty cache over a valuation engine.
func NewSeriesCache(v *Valuation) *SeriesCache {
	return &SeriesCache{valuation: v}
}

// Invalidate drops all cached points on or after the given date. Call it with
// the effective date of a new transaction or price observation.
func (c *SeriesCache) Invalidate(from Date) {
	i, _ := slices.BinarySearchFunc(c.points, from, func(p ValuationPoint, d Date) int {
		return p.Date.Compare(d)
	})
	c.points = c.points[:i]
}

// Update extends the cached curve through the given date and returns the
// whole cached series.
func (c *SeriesCache) Update(to Date) ([]ValuationPoint, error) {
	from := Date{}
	if n := len(c.points); n > 0 {
		from = c.points[n-1].Date.Add(1)
		if from.After(to) {
			return c.points, nil
		}
	} else if oldest := c.valuation.ledger.OldestTransactionDate(); !oldest.IsZero() {
		from = oldest
	} else {
		return nil, nil
	}
	tail, err := c.valuation.Series(NewRange(from, to))
	if err != nil {
		return nil, err
	}
	c.points = append(c.points, tail...)
	return c.points, nil
}
