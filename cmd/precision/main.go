// Command precision reports R², MSE, RMSE and MAE of the saved parameters
// on the training dataset.
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
	cfg, err := config.FromArgs("precision", args, os.Stderr, nil)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger := app.NewLogger(cfg, os.Stderr)

	if _, err := app.Evaluate(cfg, logger, os.Stdout); err != nil {
		logger.Error("Evaluation failed", err)
		return 1
	}
	return 0
}
