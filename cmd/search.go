package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mintfolio/collection/renderer"
)

type searchCmd struct {
	limit int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the product catalog by name" }
func (*searchCmd) Usage() string {
	return `collect search [-n <limit>] <term> [<term>...]

  Searches the product catalog for products whose name or id contains the
  given terms, case-insensitively.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Maximum number of results.")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	catalog, err := DecodeCatalog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	term := strings.Join(f.Args(), " ")
	products := catalog.Search(term, c.limit)
	if len(products) == 0 {
		fmt.Printf("No product matches %q.\n", term)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.ProductsMarkdown(products))
	return subcommands.ExitSuccess
}
