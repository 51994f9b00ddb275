package collection

import "iter"

// LotStore owns every lot of the collection. Lots are addressed by id and
// never shared mutably: callers observe consumptions through LotChange
// records, not through references into the store.
type LotStore struct {
	lots   []Lot
	nextID int64
}

// NewLotStore creates an empty lot store.
func NewLotStore() *LotStore {
	return &LotStore{nextID: 1}
}

// AddLot creates a sealed lot for a purchase and returns its id.
func (s *LotStore) AddLot(purchaseID int64, productID string, quantity int64, unitCost Money, acquired Date) int64 {
	id := s.nextID
	s.nextID++
	s.lots = append(s.lots, Lot{
		ID:         id,
		PurchaseID: purchaseID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitCost:   unitCost,
		Acquired:   acquired,
		Status:     Sealed,
	})
	return id
}

// AvailableQuantity sums the quantities of sealed lots for a product, plus
// opened lots when includeOpened is true.
func (s *LotStore) AvailableQuantity(productID string, includeOpened bool) int64 {
	var total int64
	for _, l := range s.lots {
		if l.ProductID != productID || l.Quantity == 0 {
			continue
		}
		if l.Status == Sealed || (includeOpened && l.Status == Opened) {
			total += l.Quantity
		}
	}
	return total
}

// Consume disposes of a quantity of a product under FIFO discipline, moving
// it to the target status. For Sold the price is the per-unit sale price; for
// Opened the price must be zero. The consumption is transactional: it either
// applies in full, possibly spanning several lots, or fails with
// InsufficientInventoryError leaving the store untouched.
//
// Each partially consumed lot is split: its quantity is reduced (possibly to
// zero, in which case it is kept for audit but excluded from availability)
// and a new lot records the consumed portion under the new status.
func (s *LotStore) Consume(productID string, quantity int64, target LotStatus, price Money, on Date) ([]LotChange, error) {
	changes, err := planConsumption(s.lots, productID, quantity, target, price)
	if err != nil {
		return nil, err
	}
	for i := range changes {
		changes[i].NewLotID = s.apply(changes[i], target, price, on)
	}
	return changes, nil
}

// apply splits one lot according to a planned change and returns the id of
// the lot created for the consumed portion.
func (s *LotStore) apply(change LotChange, target LotStatus, price Money, on Date) int64 {
	src := s.lot(change.LotID)
	src.Quantity -= change.Quantity

	id := s.nextID
	s.nextID++
	disposed := Lot{
		ID:         id,
		PurchaseID: src.PurchaseID,
		ProductID:  src.ProductID,
		Quantity:   change.Quantity,
		UnitCost:   src.UnitCost,
		Acquired:   src.Acquired,
		Status:     target,
		Disposed:   on,
	}
	if target == Sold {
		disposed.DisposedPrice = price
	}
	s.lots = append(s.lots, disposed)
	return id
}

// lot returns a pointer to the lot with this id. Ids are dense and assigned
// by the store, so a miss is a programming error.
func (s *LotStore) lot(id int64) *Lot {
	for i := range s.lots {
		if s.lots[i].ID == id {
			return &s.lots[i]
		}
	}
	panic("lot store: unknown lot id")
}

// Lots iterates over all lots in insertion order, including audit records
// with quantity zero.
func (s *LotStore) Lots() iter.Seq[Lot] {
	return func(yield func(Lot) bool) {
		for _, l := range s.lots {
			if !yield(l) {
				return
			}
		}
	}
}

// ProductHolding aggregates the lots of one product into a holdings snapshot.
func (s *LotStore) ProductHolding(productID string) Holding {
	h := Holding{ProductID: productID}
	for _, l := range s.lots {
		if l.ProductID != productID || l.Quantity == 0 {
			continue
		}
		switch l.Status {
		case Sealed:
			h.SealedQty += l.Quantity
			h.SealedCost = h.SealedCost.Add(l.Cost())
		case Opened:
			h.OpenedQty += l.Quantity
			h.OpenedCost = h.OpenedCost.Add(l.Cost())
		case Sold:
			h.SoldQty += l.Quantity
			h.Revenue = h.Revenue.Add(l.DisposedPrice.MulQty(l.Quantity))
		}
	}
	h.TotalBought = h.SealedQty + h.OpenedQty + h.SoldQty
	return h
}

// Products returns the ids of all products that ever had a lot, in first
// purchase order.
func (s *LotStore) Products() []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, l := range s.lots {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}
