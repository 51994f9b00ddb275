package collection

import "slices"

// The allocation engine implements the FIFO discipline: the oldest acquired
// inventory is disposed of first, with ties broken by lot id (insertion
// order). It only plans a consumption; the lot store applies it.

// LotChange records the effect of one consumption step on one lot.
type LotChange struct {
	LotID    int64 // lot the quantity was taken from
	NewLotID int64 // lot created for the consumed portion, set on apply
	Quantity int64
	UnitCost Money
	Gain     Money // (sell price - unit cost) x quantity, sells only
}

// statusSet returns the lot statuses a consumption may draw from.
// Opening only consumes sealed inventory. Selling consumes sealed and opened
// inventory: opened items may be sold, but only at the explicit price the
// caller supplies.
func statusSet(target LotStatus) []LotStatus {
	if target == Sold {
		return []LotStatus{Sealed, Opened}
	}
	return []LotStatus{Sealed}
}

// fifoCandidates returns the indices of consumable lots for a product,
// ordered by acquisition date ascending, then lot id ascending.
func fifoCandidates(lots []Lot, productID string, statuses []LotStatus) []int {
	var candidates []int
	for i, l := range lots {
		if l.ProductID != productID || l.Quantity == 0 {
			continue
		}
		if slices.Contains(statuses, l.Status) {
			candidates = append(candidates, i)
		}
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		if c := lots[a].Acquired.Compare(lots[b].Acquired); c != 0 {
			return c
		}
		return int(lots[a].ID - lots[b].ID)
	})
	return candidates
}

// planConsumption walks the FIFO-ordered candidates taking
// min(remaining, lot.Quantity) from each until the requested quantity is
// satisfied. It fails with InsufficientInventoryError before any state is
// touched when the candidates cannot cover the request.
func planConsumption(lots []Lot, productID string, quantity int64, target LotStatus, price Money) ([]LotChange, error) {
	candidates := fifoCandidates(lots, productID, statusSet(target))

	var available int64
	for _, i := range candidates {
		available += lots[i].Quantity
	}
	if available < quantity {
		return nil, &InsufficientInventoryError{
			ProductID: productID,
			Requested: quantity,
			Available: available,
		}
	}

	var changes []LotChange
	remaining := quantity
	for _, i := range candidates {
		if remaining == 0 {
			break
		}
		take := min(remaining, lots[i].Quantity)
		change := LotChange{
			LotID:    lots[i].ID,
			Quantity: take,
			UnitCost: lots[i].UnitCost,
		}
		if target == Sold {
			change.Gain = price.Sub(lots[i].UnitCost).MulQty(take)
		}
		changes = append(changes, change)
		remaining -= take
	}
	return changes, nil
}
