package renderer

import (
	"fmt"
	"strings"

	"github.com/mintfolio/collection"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx collection.Transaction) string {
	switch v := tx.(type) {
	case collection.Buy:
		return fmt.Sprintf("Bought %d of %s at %s (total %s)", v.Quantity, v.Product, v.UnitPrice, v.Total())
	case collection.Sell:
		return fmt.Sprintf("Sold %d of %s at %s (gain %s)", v.Quantity, v.Product, v.UnitPrice, v.Gain.SignedString())
	case collection.Open:
		return fmt.Sprintf("Opened %d of %s", v.Quantity, v.Product)
	default:
		return string(tx.What())
	}
}

// TransactionsMarkdown renders the transaction log as a markdown list, in
// chronological order. Date-adjusted records carry the requested date so the
// adjustment stays visible.
func TransactionsMarkdown(txs []collection.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}

	for _, tx := range txs {
		fmt.Fprintf(&b, "- #%d %s: %s", tx.Seq(), tx.When(), Transaction(tx))
		if adj, ok := tx.(interface{ WasAdjusted() bool }); ok && adj.WasAdjusted() {
			if req, ok := tx.(interface{ RequestedOn() collection.Date }); ok {
				fmt.Fprintf(&b, " (requested %s)", req.RequestedOn())
			}
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
