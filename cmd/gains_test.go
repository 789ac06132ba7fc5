package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const testLabels = `Date=Year
Type=Type
UnitPrice=Price
Quantity=Amount
ClosedPositionQuantity=Closed
Gain=Gain
IsTaxed=Taxed
Type.Buy=BUY
Type.Sell=SELL
Yes=Y
No=N
NotAvailable=-
`

// writeFile creates a file in dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(content)
}

// run executes command c with args.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("failed to parse flags %q: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestGainsCmd(t *testing.T) {
	tmp := t.TempDir()
	labels := writeFile(t, tmp, "labels.cfg", testLabels)
	btc := writeFile(t, tmp, "btc.csv", `Year,Type,Price,Amount,Closed,Gain,Taxed
2021,BUY,1,10,,,
2021,BUY,2,10,,,
2022,SELL,3,15,,,
`)
	eth := writeFile(t, tmp, "eth.csv", `Year,Type,Amount,Price,Taxed,Closed,Gain
2020,BUY,2,100,,,
2021,SELL,1,150,Y,,
2022,SELL,1.000000001,120,,,
`)

	status := run(t, &gainsCmd{}, "-year", "2022", "-mode", "tax", "-labels", labels, btc, eth)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	want := `Year,Type,Price,Amount,Closed,Gain,Taxed
2021,BUY,1,10,10,-,-
2021,BUY,2,10,5,-,-
2022,SELL,3,15,-,25,Y
`
	if got := readFile(t, filepath.Join(tmp, "btcUpdated.csv")); got != want {
		t.Errorf("btcUpdated.csv:\nGot:\n%s\nWant:\n%s", got, want)
	}

	want = `Year,Type,Amount,Price,Taxed,Closed,Gain
2020,BUY,2,100,-,2,-
2021,SELL,1,150,Y,-,50
2022,SELL,1.000000001,120,Y,-,20.00000012
`
	if got := readFile(t, filepath.Join(tmp, "ethUpdated.csv")); got != want {
		t.Errorf("ethUpdated.csv:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestGainsCmd_Errors(t *testing.T) {
	tmp := t.TempDir()
	labels := writeFile(t, tmp, "labels.cfg", testLabels)
	oversold := writeFile(t, tmp, "oversold.csv", `Year,Type,Price,Amount,Closed,Gain,Taxed
2021,BUY,1,10,,,
2022,SELL,3,11,,,
`)
	incomplete := writeFile(t, tmp, "incomplete.cfg", strings.Replace(testLabels, "Type.Buy=BUY\n", "", 1))

	testCases := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"no ledger", []string{"-labels", labels}, subcommands.ExitUsageError},
		{"bad mode", []string{"-mode", "maybe", "-labels", labels, oversold}, subcommands.ExitUsageError},
		{"oversold", []string{"-labels", labels, oversold}, subcommands.ExitFailure},
		{"incomplete labels", []string{"-labels", incomplete, oversold}, subcommands.ExitFailure},
		{"missing labels", []string{"-labels", filepath.Join(tmp, "nope.cfg"), oversold}, subcommands.ExitFailure},
		{"missing ledger", []string{"-labels", labels, filepath.Join(tmp, "nope.csv")}, subcommands.ExitFailure},
		{"bad delimiter", []string{"-labels", labels, "-delimiter", ";;", oversold}, subcommands.ExitFailure},
		{"missing config", []string{"-config", filepath.Join(tmp, "nope.toml"), "-labels", labels, oversold}, subcommands.ExitFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, &gainsCmd{}, tc.args...); got != tc.want {
				t.Errorf("Execute() = %v, want %v", got, tc.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(tmp, "oversoldUpdated.csv")); err == nil {
		t.Error("oversoldUpdated.csv was written for a failing ledger")
	}
}

func TestGainsCmd_Config(t *testing.T) {
	tmp := t.TempDir()
	labels := writeFile(t, tmp, "labels.cfg", testLabels)
	config := writeFile(t, tmp, "taxme.toml", `labels = "`+filepath.ToSlash(labels)+`"
delimiter = ";"
currency = "EUR"
tolerance = "0.01"
suffix = ".out"
`)
	asset := writeFile(t, tmp, "sol.csv", `Year;Type;Price;Amount;Closed;Gain;Taxed
2021;BUY;1;10;;;
2022;SELL;2;10.001;;;
`)

	status := run(t, &gainsCmd{}, "-config", config, "-year", "2022", asset)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	want := `Year;Type;Price;Amount;Closed;Gain;Taxed
2021;BUY;1;10;10;-;-
2022;SELL;2;10.001;-;10.002;N
`
	if got := readFile(t, filepath.Join(tmp, "sol.out.csv")); got != want {
		t.Errorf("sol.out.csv:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	config := writeFile(t, t.TempDir(), "taxme.toml", "labels = \"a.cfg\"\nyear = 2022\n")
	if _, err := LoadConfig(config); err == nil || !strings.Contains(err.Error(), "year") {
		t.Errorf("LoadConfig() error = %v, want an error about key year", err)
	}
}

func TestParseCommitMode(t *testing.T) {
	for s, want := range map[string]bool{"tax": true, "dry": false} {
		got, err := parseCommitMode(s)
		if err != nil || got != want {
			t.Errorf("parseCommitMode(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
	if _, err := parseCommitMode("Tax"); err == nil {
		t.Error("parseCommitMode(\"Tax\") error = nil")
	}
}

func TestLotsCmd(t *testing.T) {
	tmp := t.TempDir()
	labels := writeFile(t, tmp, "labels.cfg", testLabels)
	asset := writeFile(t, tmp, "btc.csv", `Year,Type,Price,Amount,Closed,Gain,Taxed
2021,BUY,1,10,,,
2022,SELL,3,4,,,
`)

	if status := run(t, &lotsCmd{}, "-labels", labels, asset); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if _, err := os.Stat(filepath.Join(tmp, "btcUpdated.csv")); err == nil {
		t.Error("lots wrote an updated ledger")
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"gains", "lots", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q subcommand", name)
		}
	}
	if _, ok := c.Sub["gains"].Flags["mode"]; !ok {
		t.Error("Completion() does not complete gains -mode")
	}
}

func TestGainsCmd_StrictTolerance(t *testing.T) {
	tmp := t.TempDir()
	labels := writeFile(t, tmp, "labels.cfg", testLabels)
	asset := writeFile(t, tmp, "btc.csv", `Year,Type,Price,Amount,Closed,Gain,Taxed
2021,BUY,1,10,,,
2022,SELL,3,10.000000001,,,
`)

	if status := run(t, &gainsCmd{}, "-year", "2022", "-labels", labels, asset); status != subcommands.ExitSuccess {
		t.Errorf("default tolerance: Expected ExitSuccess, got %v", status)
	}
	if status := run(t, &gainsCmd{}, "-year", "2022", "-tolerance", "0", "-labels", labels, asset); status != subcommands.ExitFailure {
		t.Errorf("-tolerance 0: Expected ExitFailure, got %v", status)
	}
}

func TestTopicCmd(t *testing.T) {
	testCases := []struct {
		args []string
		want subcommands.ExitStatus
	}{
		{nil, subcommands.ExitSuccess},
		{[]string{"labels"}, subcommands.ExitSuccess},
		{[]string{"*"}, subcommands.ExitSuccess},
		{[]string{"nope"}, subcommands.ExitFailure},
	}
	for _, tc := range testCases {
		if got := run(t, &topicCmd{}, tc.args...); got != tc.want {
			t.Errorf("topic %q = %v, want %v", tc.args, got, tc.want)
		}
	}
}
