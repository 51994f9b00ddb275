package collection

// Holding is a snapshot of one product's inventory by state.
//
// Cost basis covers currently-held inventory: sealed lots carry both cost and
// market value, opened lots keep their original cost in a sunk-cost bucket
// with no market value.
type Holding struct {
	ProductID   string
	Name        string
	SealedQty   int64
	OpenedQty   int64
	SoldQty     int64
	TotalBought int64
	SealedCost  Money // cost basis of sealed lots
	OpenedCost  Money // sunk cost of opened lots
	Revenue     Money // proceeds from sold lots
}

// CostBasis is the cumulative amount paid for currently-held (sealed +
// opened) inventory.
func (h Holding) CostBasis() Money { return h.SealedCost.Add(h.OpenedCost) }

// AverageUnitCost is the cost basis divided by the held quantity, zero when
// nothing is held.
func (h Holding) AverageUnitCost() Money {
	held := h.SealedQty + h.OpenedQty
	if held == 0 {
		return Money{}
	}
	return h.CostBasis().DivQty(held)
}
