// Package cmd implements the taxme command line application.
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/taxme"
	"github.com/etnz/taxme/renderer"
	"github.com/google/subcommands"
)

// Commands lists every taxme subcommand.
var Commands = []subcommands.Command{
	&gainsCmd{},
	&lotsCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&gainsCmd{}, "reports")
	c.Register(&lotsCmd{}, "reports")
	c.Register(&topicCmd{}, "help")
}

// assetName returns the asset file name without its .csv extension.
func assetName(filename string) string {
	return strings.TrimSuffix(filename, ".csv")
}

// processAsset decodes and matches the ledger in filename.
// If suffix is not empty, the updated ledger is written next to it.
func processAsset(filename string, format taxme.Format, matcher taxme.Matcher, year int, commitTax bool, suffix string) (renderer.Asset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return renderer.Asset{}, fmt.Errorf("cannot open ledger: %w", err)
	}
	ledger, err := taxme.DecodeLedger(f, format)
	f.Close()
	if err != nil {
		return renderer.Asset{}, fmt.Errorf("cannot decode ledger %q: %w", filename, err)
	}

	warnings, err := matcher.Match(ledger, year, commitTax)
	if err != nil {
		return renderer.Asset{}, fmt.Errorf("cannot match ledger %q: %w", filename, err)
	}
	name := assetName(filename)
	for _, w := range warnings {
		log.Printf("warning, %s: %s", filename, w)
	}

	if suffix != "" {
		if err := writeLedger(name+suffix+".csv", ledger); err != nil {
			return renderer.Asset{}, err
		}
	}

	return renderer.Asset{
		Name:     filepath.Base(name),
		Outcome:  ledger.Outcome(year),
		Lots:     ledger.OpenLots(),
		Warnings: warnings,
	}, nil
}

func writeLedger(filename string, ledger *taxme.Ledger) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create updated ledger: %w", err)
	}
	if err := taxme.EncodeLedger(f, ledger); err != nil {
		f.Close()
		return fmt.Errorf("failed writing updated ledger %q: %w", filename, err)
	}
	return f.Close()
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
