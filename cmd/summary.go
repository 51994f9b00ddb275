package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mintfolio/collection"
	"github.com/mintfolio/collection/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a collection overview" }
func (*summaryCmd) Usage() string {
	return `collect summary [-d <date>]

  Displays an overview of the collection on a date: inventory counts, cost
  basis, market value, revenue and return on investment.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", collection.Today().String(), "Date for the summary (YYYY-MM-DD)")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := collection.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

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
	prices, err := DecodePrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	summary, err := collection.NewValuation(ledger, prices).NewSummary(on)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(summary))

	return subcommands.ExitSuccess
}
