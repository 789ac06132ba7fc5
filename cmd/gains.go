package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/taxme/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	ledgerFlags
	year   int
	mode   string
	suffix string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "compute realized gains of a year and update ledgers" }
func (*gainsCmd) Usage() string {
	return `taxme gains -year <year> [-mode tax|dry] [-labels <file>] <asset.csv>...

  Matches every sell against the oldest buys, writes each ledger back as
  <asset><suffix>.csv with its output columns filled in, and prints the
  income, cost and gain of the sells of the year.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.IntVar(&c.year, "year", time.Now().Year()-1, "Year to report gains for")
	f.StringVar(&c.mode, "mode", "dry", "'tax' marks the sells of the year as taxed, 'dry' leaves them unchanged")
	f.StringVar(&c.suffix, "suffix", "Updated", "Suffix of the updated ledger file names")
}

// parseCommitMode parses the -mode flag.
func parseCommitMode(s string) (commitTax bool, err error) {
	switch s {
	case "tax":
		return true, nil
	case "dry":
		return false, nil
	default:
		return false, fmt.Errorf("unknown mode %q, want 'tax' or 'dry'", s)
	}
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no ledger file given")
		return subcommands.ExitUsageError
	}
	commitTax, err := parseCommitMode(c.mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing mode: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := c.loadConfig(f, &c.suffix); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.suffix == "" {
		fmt.Fprintln(os.Stderr, "Error: -suffix cannot be empty, it would overwrite the ledgers")
		return subcommands.ExitUsageError
	}
	format, matcher, err := c.format()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var assets []renderer.Asset
	for _, filename := range f.Args() {
		asset, err := processAsset(filename, format, matcher, c.year, commitTax, c.suffix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		assets = append(assets, asset)
	}

	printMarkdown(renderer.GainsMarkdown(c.year, commitTax, assets))
	return subcommands.ExitSuccess
}
