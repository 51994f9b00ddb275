package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mintfolio/collection"
)

type fetchCmd struct {
	feedURL string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch today's market prices from the price service" }
func (*fetchCmd) Usage() string {
	return `collect fetch [-url <feed_url>] <group_id> [<group_id>...]

  Fetches the current market prices of every product in the given groups and
  merges them into the price file. Responses are cached on disk for the day,
  so repeated calls do not hit the service again.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.feedURL, "url", collection.DefaultFeedURL, "Base URL of the price service")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	prices, err := DecodePrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	feed := collection.NewPriceFeed()
	feed.BaseURL = c.feedURL

	count, err := feed.FetchInto(prices, f.Args()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := EncodePrices(prices); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d price observations into %s\n", count, *pricesFile)
	return subcommands.ExitSuccess
}
