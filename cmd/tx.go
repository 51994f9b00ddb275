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

type txCmd struct {
	start   string
	date    string
	product string
	head    int
	tail    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list all transactions in the ledger" }
func (*txCmd) Usage() string {
	return `collect tx [-s <start_date>] [-d <end_date>] [-product <id>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "The start date for a custom range.")
	f.StringVar(&p.date, "d", "", "The end date for the range.")
	f.StringVar(&p.product, "product", "", "Show only transactions of this product.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
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

	var filters []func(collection.Transaction) bool
	if p.product != "" {
		filters = append(filters, collection.ByProduct(p.product))
	}
	// If no date range flags are provided, use the full range of the ledger.
	if p.start != "" || p.date != "" {
		from := collection.Date{}
		if p.start != "" {
			if from, err = collection.ParseDate(p.start); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		to := collection.Today()
		if p.date != "" {
			if to, err = collection.ParseDate(p.date); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		r := collection.NewRange(from, to)
		filters = append(filters, func(tx collection.Transaction) bool { return r.Contains(tx.When()) })
	}

	var transactions []collection.Transaction
	for tx := range ledger.Each(filters...) {
		transactions = append(transactions, tx)
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))

	return subcommands.ExitSuccess
}
