package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/minipoker/cmd/minipoker/shared"
	"github.com/lox/minipoker/internal/config"
	"github.com/lox/minipoker/internal/report"
	"github.com/lox/minipoker/internal/simulator"
)

// SimulateCmd runs every configured learner against player A.
type SimulateCmd struct {
	Config              string   `kong:"type='existingfile',help='HCL experiment file (defaults to the two reference runs)'"`
	Rounds              *int     `kong:"help='Rounds per run, overriding the experiment'"`
	Seed                *int64   `kong:"help='Base RNG seed; run i uses seed+i'"`
	RandomSeed          bool     `kong:"help='Seed from the current time'"`
	Strategy            string   `kong:"help='Player A strategy override (adaptive, baseline, hold, honest)'"`
	HoldProbability     *float64 `kong:"help='Probability that player A holds a red card'"`
	SkipLearnerOnResign bool     `kong:"help='Do not let B act or learn on rounds where A resigned'"`
	Parallel            int      `kong:"default='1',help='Number of runs to execute concurrently'"`
	TraceEvery          *int     `kong:"help='Sample the learner state every N rounds into the JSON report (0 disables)'"`
	JSON                string   `kong:"name='json',type='path',help='Write a JSON report to this file'"`
	Stats               bool     `kong:"help='Print detailed statistics for each run'"`
	NoColor             bool     `kong:"help='Disable colors in the statistics block'"`
	Debug               bool     `kong:"help='Enable debug logging'"`
	LogLevel            string   `kong:"default='warn',enum='trace,debug,info,warn,error',help='Log level'"`
	LogFormat           string   `kong:"default='console',enum='console,json',help='Log format'"`
}

func (c *SimulateCmd) Run() error {
	level, err := shared.ParseLevel(c.LogLevel, c.Debug)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(level)
	if c.LogFormat == "json" {
		logger = shared.SetupStructuredLogger(level)
	}

	ctx, stop := shared.SetupSignalHandler(context.Background(), logger)
	defer stop()

	return c.run(ctx, os.Stdout, logger)
}

func (c *SimulateCmd) run(ctx context.Context, stdout io.Writer, logger zerolog.Logger) error {
	exp, err := c.experiment(logger)
	if err != nil {
		return err
	}

	results, err := simulator.RunAll(ctx, exp.SimulatorConfigs(&logger), c.Parallel)
	if err != nil {
		return err
	}

	if err := report.Write(stdout, results); err != nil {
		return err
	}
	if c.Stats {
		for _, res := range results {
			fmt.Fprintln(stdout)
			if err := report.Summary(stdout, res, c.NoColor); err != nil {
				return err
			}
		}
	}
	if c.JSON != "" {
		if err := report.WriteJSON(c.JSON, results, time.Now()); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info().Str("path", c.JSON).Msg("Wrote JSON report")
	}
	return nil
}

// experiment loads the configured experiment and applies flag overrides.
func (c *SimulateCmd) experiment(logger zerolog.Logger) (*config.Experiment, error) {
	exp := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		exp = loaded
		logger.Debug().Str("path", c.Config).Int("runs", len(exp.Runs)).Msg("Loaded experiment")
	}

	if c.Rounds != nil {
		exp.Rounds = *c.Rounds
		for i := range exp.Runs {
			exp.Runs[i].Rounds = *c.Rounds
		}
	}

	var seed *int64
	switch {
	case c.RandomSeed:
		s := time.Now().UnixNano()
		seed = &s
	case c.Seed != nil:
		seed = c.Seed
	}
	if seed != nil {
		exp.Seed = *seed
		for i := range exp.Runs {
			exp.Runs[i].Seed = *seed + int64(i)
		}
		logger.Info().Int64("seed", *seed).Msg("Using seed")
	}

	for i := range exp.Runs {
		if c.Strategy != "" {
			exp.Runs[i].Opponent.Strategy = c.Strategy
		}
		if c.HoldProbability != nil {
			exp.Runs[i].Opponent.HoldProbability = *c.HoldProbability
		}
	}
	if c.SkipLearnerOnResign {
		exp.SkipLearnerOnResign = true
	}
	if c.TraceEvery != nil {
		exp.TraceEvery = *c.TraceEvery
	}

	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return exp, nil
}
