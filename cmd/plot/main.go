// Command plot draws the dataset and the fitted regression line to an image.
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
	cfg, err := config.FromArgs("plot", args, os.Stderr, config.BindPlot)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger := app.NewLogger(cfg, os.Stderr)

	if err := app.Plot(cfg, logger, os.Stdout); err != nil {
		logger.Error("Plot failed", err)
		return 1
	}
	return 0
}
