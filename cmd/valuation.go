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

type valuationCmd struct {
	start string
	date  string
}

func (*valuationCmd) Name() string     { return "valuation" }
func (*valuationCmd) Synopsis() string { return "display the day-by-day valuation of the collection" }
func (*valuationCmd) Usage() string {
	return `collect valuation [-s <start_date>] [-d <end_date>]

  Replays the ledger against the price history and displays one valuation
  point per day carrying a transaction or a price observation.
`
}

func (c *valuationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "The start date of the range. Defaults to the first transaction.")
	f.StringVar(&c.date, "d", collection.Today().String(), "The end date of the range.")
}

func (c *valuationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	to, err := collection.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	from := ledger.OldestTransactionDate()
	if c.start != "" {
		if from, err = collection.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if from.IsZero() {
		fmt.Fprintln(os.Stderr, "The ledger is empty, nothing to value.")
		return subcommands.ExitSuccess
	}

	valuation := collection.NewValuation(ledger, prices)
	points, err := valuation.Series(collection.NewRange(from, to))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	// Close the curve on the end date even when nothing happened that day.
	if len(points) == 0 || points[len(points)-1].Date != to {
		pt, err := valuation.PointOn(to)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		points = append(points, pt)
	}

	printMarkdown(renderer.ValuationMarkdown(points))

	return subcommands.ExitSuccess
}
