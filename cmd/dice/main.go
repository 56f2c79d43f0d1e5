// Package main provides the dice command. Every argument is a dice expression
// or preset name; for each it prints a roll, the maximum, minimum and median.
//
// Configuration is read from the file named by $DICE_CONFIG when set, with
// DICE_* environment overrides.
package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicestat/internal/cli"
	"github.com/cory-johannsen/dicestat/internal/config"
	"github.com/cory-johannsen/dicestat/internal/dice"
	"github.com/cory-johannsen/dicestat/internal/observability"
	"github.com/cory-johannsen/dicestat/internal/preset"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: dice EXPRESSION...")
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("DICE_CONFIG"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var presets *preset.Registry
	if cfg.Presets.Dir != "" {
		presets, err = preset.LoadDir(cfg.Presets.Dir)
		if err != nil {
			logger.Fatal("loading presets", zap.Error(err))
		}
		logger.Debug("presets loaded",
			zap.String("dir", cfg.Presets.Dir),
			zap.Int("count", presets.Len()),
		)
	}

	roller := dice.NewLoggedRoller(cli.SourceFor(cfg.Dice), logger)
	runner := cli.NewRunner(os.Stdout, roller, cli.Options{
		Presets:      presets,
		MaxOutcomes:  cfg.Dice.MaxOutcomes,
		Distribution: cfg.Output.Distribution,
	})

	if err := runner.Run(args); err != nil {
		logger.Error("rolling dice", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
