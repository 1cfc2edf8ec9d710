// Command predict reads a mileage (km) and prints the estimated price using
// the parameters saved by train.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/YuminosukeSato/carprice/internal/app"
	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var mileage string
	cfg, err := config.FromArgs("predict", args, os.Stderr, func(fs *flag.FlagSet, _ *config.Config) {
		fs.StringVar(&mileage, "mileage", mileage, "mileage in km; prompts on stdin when empty")
	})
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger := app.NewLogger(cfg, os.Stderr)

	if mileage != "" {
		err = app.PredictMileage(mileage, os.Stdout, cfg, logger)
	} else {
		err = app.Predict(os.Stdin, os.Stdout, cfg, logger)
	}
	if err != nil {
		var valErr *errors.ValueError
		if errors.As(err, &valErr) {
			fmt.Fprintln(os.Stderr, valErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
