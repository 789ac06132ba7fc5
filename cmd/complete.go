package cmd

import (
	"flag"

	"github.com/etnz/taxme/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes flag values by flag name.
var flagPredictors = map[string]complete.Predictor{
	"labels": predict.Files("*.cfg"),
	"config": predict.Files("*.toml"),
	"mode":   predict.Set{"tax", "dry"},
}

// Completion returns the shell completion of the taxme command, built from the flags of
// every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{Sub: make(map[string]*complete.Command)}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)

		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) {
			if p, ok := flagPredictors[f.Name]; ok {
				sub.Flags[f.Name] = p
			} else {
				sub.Flags[f.Name] = predict.Something
			}
		})
		switch c.Name() {
		case "topic":
			sub.Args = predict.Set(docs.Topics())
		default:
			sub.Args = predict.Files("*.csv")
		}
		root.Sub[c.Name()] = sub
	}
	return root
}
