package renderer

import (
	"fmt"
	"strings"

	"github.com/mintfolio/collection"
)

// HoldingsMarkdown renders the per-product inventory table.
func HoldingsMarkdown(holdings []collection.Holding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	fmt.Fprintln(&b, "| Product | Name | Sealed | Opened | Sold | Cost Basis | Avg Cost | Revenue |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")

	for _, h := range holdings {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %s | %s | %s |\n",
			h.ProductID,
			h.Name,
			h.SealedQty,
			h.OpenedQty,
			h.SoldQty,
			h.CostBasis(),
			h.AverageUnitCost(),
			h.Revenue,
		)
	}
	return b.String()
}

// LotsMarkdown renders the full lot table, audit records included. Lots with a
// zero quantity are fully consumed originals kept for traceability.
func LotsMarkdown(lots []collection.Lot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Lots\n\n")
	fmt.Fprintln(&b, "| Lot | Buy | Product | Qty | Unit Cost | Acquired | Status | Disposed |")
	fmt.Fprintln(&b, "|---:|---:|:---|---:|---:|:---|:---|:---|")

	for _, lot := range lots {
		disposed := " "
		if lot.Status != collection.Sealed {
			disposed = lot.Disposed.String()
		}
		fmt.Fprintf(&b, "| %d | %d | %s | %d | %s | %s | %s | %s |\n",
			lot.ID,
			lot.PurchaseID,
			lot.ProductID,
			lot.Quantity,
			lot.UnitCost,
			lot.Acquired,
			lot.Status,
			disposed,
		)
	}
	return b.String()
}

// ProductsMarkdown renders catalog products, typically search results.
func ProductsMarkdown(products []collection.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Products\n\n")
	fmt.Fprintln(&b, "| Product | Name | First Available |")
	fmt.Fprintln(&b, "|:---|:---|:---|")

	for _, p := range products {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.ID, p.Name, p.FirstAvailable)
	}
	return b.String()
}
