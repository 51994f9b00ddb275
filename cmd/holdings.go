package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mintfolio/collection/renderer"
)

type holdingsCmd struct {
	product string
	lots    bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the current inventory by product" }
func (*holdingsCmd) Usage() string {
	return `collect holdings [-s <product>] [-lots]

  Displays the sealed, opened and sold quantities of every product, with cost
  basis and revenue. With -lots the individual lots are listed instead.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "s", "", "Show only this product.")
	f.BoolVar(&c.lots, "lots", false, "List individual lots instead of per-product totals.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.lots {
		printMarkdown(renderer.LotsMarkdown(ledger.Lots()))
		return subcommands.ExitSuccess
	}

	holdings := ledger.AllHoldings()
	if c.product != "" {
		h, err := ledger.Holdings(c.product)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		holdings = holdings[:0]
		holdings = append(holdings, h)
	}

	printMarkdown(renderer.HoldingsMarkdown(holdings))
	return subcommands.ExitSuccess
}
