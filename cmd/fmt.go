package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mintfolio/collection"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `collect fmt

  Validates and formats the ledger file. This command reads all transactions,
  replays them to check consistency, sorts them chronologically, and writes
  them back in a canonical JSONL format.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := DecodeCatalog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// Decoding replays the full history, so an inconsistent file fails here.
	ledger, err := DecodeLedger(catalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := collection.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Successfully formatted %s.\n", *ledgerFile)
	return subcommands.ExitSuccess
}
