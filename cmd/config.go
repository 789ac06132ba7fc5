package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/etnz/taxme"
)

const defaultConfigFile = "taxme.toml"

// Config holds defaults for the ledger flags. Flags set on the command line win.
type Config struct {
	Labels    string `toml:"labels"`
	Delimiter string `toml:"delimiter"`
	Currency  string `toml:"currency"`
	Tolerance string `toml:"tolerance"`
	Suffix    string `toml:"suffix"`
}

// LoadConfig decodes a TOML config file. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return c, fmt.Errorf("unknown keys in config %q: %s", path, strings.Join(keys, ", "))
	}
	return c, nil
}

// ledgerFlags are the flags shared by commands reading ledgers.
type ledgerFlags struct {
	config    string
	labels    string
	delimiter string
	currency  string
	tolerance string
}

func (c *ledgerFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", defaultConfigFile, "TOML file with defaults for the other flags, ignored if missing")
	f.StringVar(&c.labels, "labels", "DataLabels.cfg", "Labels file mapping roles to the ledgers columns and values. See 'taxme topic labels'.")
	f.StringVar(&c.delimiter, "delimiter", ",", "Cell delimiter of the ledgers")
	f.StringVar(&c.currency, "currency", "", "Currency of the ledgers prices, for display only")
	f.StringVar(&c.tolerance, "tolerance", taxme.DefaultTolerance.String(), "Largest oversold quantity accepted as a rounding error, 0 to accept none")
}

// isSet reports whether the flag name was set on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// loadConfig applies the config file values to the flags not set on the command line.
// suffix is nil for commands that do not write ledgers.
func (c *ledgerFlags) loadConfig(f *flag.FlagSet, suffix *string) error {
	cfg, err := LoadConfig(c.config)
	if errors.Is(err, fs.ErrNotExist) && !isSet(f, "config") {
		return nil
	}
	if err != nil {
		return err
	}

	type setting struct {
		flag  string
		dst   *string
		value string
	}
	settings := []setting{
		{"labels", &c.labels, cfg.Labels},
		{"delimiter", &c.delimiter, cfg.Delimiter},
		{"currency", &c.currency, cfg.Currency},
		{"tolerance", &c.tolerance, cfg.Tolerance},
	}
	if suffix != nil {
		settings = append(settings, setting{"suffix", suffix, cfg.Suffix})
	}
	for _, s := range settings {
		if s.value != "" && !isSet(f, s.flag) {
			*s.dst = s.value
		}
	}
	return nil
}

// format returns the ledger format and matcher described by the flags.
func (c *ledgerFlags) format() (taxme.Format, taxme.Matcher, error) {
	var (
		format  taxme.Format
		matcher taxme.Matcher
	)
	if utf8.RuneCountInString(c.delimiter) != 1 {
		return format, matcher, fmt.Errorf("delimiter must be a single character, got %q", c.delimiter)
	}
	delimiter, _ := utf8.DecodeRuneInString(c.delimiter)

	tolerance, err := taxme.ParseQuantity(c.tolerance)
	if err != nil {
		return format, matcher, fmt.Errorf("invalid tolerance: %w", err)
	}

	f, err := os.Open(c.labels)
	if err != nil {
		return format, matcher, fmt.Errorf("failed to open labels file: %w", err)
	}
	defer f.Close()
	schema, err := taxme.DecodeLabelSchema(f)
	if err != nil {
		return format, matcher, fmt.Errorf("invalid labels file %q: %w", c.labels, err)
	}

	format = taxme.Format{Schema: schema, Codec: taxme.Codec{Delimiter: delimiter}, Currency: c.currency}
	matcher = taxme.Matcher{Tolerance: tolerance, Strict: tolerance.IsZero()}
	return format, matcher, nil
}
