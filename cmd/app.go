// Package cmd implements the CLI application to manage a collection.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mintfolio/collection"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&openCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&valuationCmd{}, "reports")

	c.Register(&searchCmd{}, "catalog")
	c.Register(&fetchCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var catalogFile = flag.String("catalog-file", "catalog.csv", "Path to the product catalog file (CSV format)")
var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the price observations file (JSONL format)")

// DecodeCatalog loads the product catalog from the app catalog file.
func DecodeCatalog() (*collection.Catalog, error) {
	f, err := os.Open(*catalogFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, catalog does not exist, using an empty catalog instead")
		return collection.NewCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening catalog file %q: %w", *catalogFile, err)
	}
	defer f.Close()
	return collection.DecodeCatalog(f)
}

// DecodeLedger loads the ledger from the app ledger file, resolving products
// through the catalog.
func DecodeLedger(catalog collection.CatalogProvider) (*collection.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return collection.NewLedger(catalog), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return collection.DecodeLedger(f, catalog)
}

// DecodePrices loads the price table from the app prices file.
func DecodePrices() (*collection.PriceTable, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, price file does not exist, using an empty price table instead")
		return collection.NewPriceTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening prices file %q: %w", *pricesFile, err)
	}
	defer f.Close()
	return collection.DecodePrices(f)
}

// EncodePrices persists the price table to the app prices file.
func EncodePrices(table *collection.PriceTable) error {
	f, err := os.Create(*pricesFile)
	if err != nil {
		return fmt.Errorf("creating prices file %q: %w", *pricesFile, err)
	}
	defer f.Close()
	return collection.EncodePrices(f, table)
}

// appendTransaction appends a single transaction to the app ledger file.
func appendTransaction(tx collection.Transaction) subcommands.ExitStatus {
	filename := *ledgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := collection.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering is not possible.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
