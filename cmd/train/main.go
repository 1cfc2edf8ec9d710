// Command train fits price = theta0 + theta1 * mileage on a CSV dataset by
// batch gradient descent and saves the parameters as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/YuminosukeSato/carprice/internal/app"
	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.FromArgs("train", args, os.Stderr, config.BindTrain)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger := app.NewLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := app.Train(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("Training failed", err)
		return 1
	}
	return 0
}
