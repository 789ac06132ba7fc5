package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxme/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	ledgerFlags
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list the buys not yet sold" }
func (*lotsCmd) Usage() string {
	return `taxme lots [-labels <file>] <asset.csv>...

  Matches every sell against the oldest buys and lists what remains open.
  Ledgers are not modified.
`
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no ledger file given")
		return subcommands.ExitUsageError
	}
	if err := c.loadConfig(f, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	format, matcher, err := c.format()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var assets []renderer.Asset
	for _, filename := range f.Args() {
		// no tax committed, so the year is irrelevant
		asset, err := processAsset(filename, format, matcher, 0, false, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		assets = append(assets, asset)
	}

	printMarkdown(renderer.LotsMarkdown(assets))
	return subcommands.ExitSuccess
}
