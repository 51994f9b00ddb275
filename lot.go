package collection

import "fmt"

// LotStatus is the closed set of states a lot can be in.
type LotStatus int

const (
	// Sealed inventory is resalable and carries market value.
	Sealed LotStatus = iota
	// Opened inventory keeps its cost basis but has no market value.
	Opened
	// Sold inventory has been disposed of at a recorded price.
	Sold
)

func (s LotStatus) String() string {
	switch s {
	case Sealed:
		return "sealed"
	case Opened:
		return "opened"
	case Sold:
		return "sold"
	default:
		return "unknown"
	}
}

// ParseLotStatus parses a string into a LotStatus.
func ParseLotStatus(s string) (LotStatus, error) {
	switch s {
	case "sealed":
		return Sealed, nil
	case "opened":
		return Opened, nil
	case "sold":
		return Sold, nil
	default:
		return 0, fmt.Errorf("unknown lot status: %q", s)
	}
}

// Lot is the unit of ownership: a quantity of a single product acquired at
// one cost and date, tracked independently for FIFO disposal.
//
// Lots are owned exclusively by the lot store. Consuming part of a lot splits
// it: the remainder keeps the lot id with a reduced quantity, and a new lot
// records the consumed portion under its new status. A fully consumed lot is
// kept at quantity zero for audit but excluded from availability. The sum of
// quantities across all lots sharing a PurchaseID always equals the
// originally purchased quantity.
type Lot struct {
	ID         int64
	PurchaseID int64 // id of the Buy transaction that created this inventory
	ProductID  string
	Quantity   int64
	UnitCost   Money
	Acquired   Date
	Status     LotStatus

	// Disposal fields, set only when Status is Opened or Sold.
	Disposed      Date
	DisposedPrice Money // set only when Status is Sold
}

// Cost returns the total cost of the lot (quantity times unit cost).
func (l Lot) Cost() Money { return l.UnitCost.MulQty(l.Quantity) }
