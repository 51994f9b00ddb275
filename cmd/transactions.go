package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mintfolio/collection"
)

// submitAndAppend submits a request to the ledger and appends the accepted
// record to the ledger file. Rejections leave the file untouched.
func submitAndAppend(req collection.Request) subcommands.ExitStatus {
	catalog, err := DecodeCatalog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger(catalog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := ledger.Submit(req)
	if err != nil {
		var insufficient *collection.InsufficientInventoryError
		if errors.As(err, &insufficient) {
			fmt.Fprintf(os.Stderr, "Error: only %d units of %s available, %d requested.\n",
				insufficient.Available, insufficient.ProductID, insufficient.Requested)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if adj, ok := tx.(interface{ WasAdjusted() bool }); ok && adj.WasAdjusted() {
		fmt.Fprintf(os.Stderr, "Note: date moved to %s, the product was not available on the requested date.\n", tx.When())
	}
	return appendTransaction(tx)
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	product  string
	quantity int64
	price    string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of sealed units" }
func (*buyCmd) Usage() string {
	return `collect buy -s <product> -q <quantity> -p <price> [-d <date>]

  Records the purchase of sealed units of a product. Each purchase creates a
  new lot at the given per-unit price.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", collection.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.product, "s", "", "Product id")
	f.Int64Var(&c.quantity, "q", 0, "Number of sealed units")
	f.StringVar(&c.price, "p", "", "Price per unit")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" || c.quantity <= 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := collection.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := collection.ParseMoney(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	return submitAndAppend(collection.Request{
		Type:      collection.CmdBuy,
		ProductID: c.product,
		Quantity:  c.quantity,
		UnitPrice: &price,
		Date:      day,
	})
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	product  string
	quantity int64
	price    string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of units" }
func (*sellCmd) Usage() string {
	return `collect sell -s <product> -q <quantity> -p <price> [-d <date>]

  Records the sale of units at a per-unit price. The oldest lots are consumed
  first; opened units may be sold and keep their original cost as basis.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", collection.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.product, "s", "", "Product id")
	f.Int64Var(&c.quantity, "q", 0, "Number of units to sell")
	f.StringVar(&c.price, "p", "", "Price per unit")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" || c.quantity <= 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := collection.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := collection.ParseMoney(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	return submitAndAppend(collection.Request{
		Type:      collection.CmdSell,
		ProductID: c.product,
		Quantity:  c.quantity,
		UnitPrice: &price,
		Date:      day,
	})
}

// --- Open Command ---

type openCmd struct {
	date     string
	product  string
	quantity int64
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "record breaking the seal on units" }
func (*openCmd) Usage() string {
	return `collect open -s <product> -q <quantity> [-d <date>]

  Records opening sealed units. Opened units keep their cost basis but no
  longer contribute to market value.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", collection.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.product, "s", "", "Product id")
	f.Int64Var(&c.quantity, "q", 0, "Number of sealed units to open")
}

func (c *openCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" || c.quantity <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := collection.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return submitAndAppend(collection.Request{
		Type:      collection.CmdOpen,
		ProductID: c.product,
		Quantity:  c.quantity,
		Date:      day,
	})
}
