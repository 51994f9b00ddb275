package collection

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the core. They are sentinels so callers can test
// them with errors.Is regardless of the wrapping context.
var (
	// ErrUnknownProduct reports a product id that is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrInvalidQuantity reports a quantity that is zero or negative.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidPrice reports a price that is negative, or present/absent on
	// the wrong transaction type.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInsufficientInventory reports a disposal larger than the available
	// quantity for the relevant status set.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrDependencyUnavailable reports a collaborator I/O failure (catalog or
	// price provider unreachable).
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// InsufficientInventoryError carries the quantity actually available so the
// caller can retry with a smaller amount.
type InsufficientInventoryError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}
