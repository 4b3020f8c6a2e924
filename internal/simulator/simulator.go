// Package simulator plays many mini-poker rounds between a player A strategy
// and the bandit learner and aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/minipoker/internal/bandit"
	"github.com/lox/minipoker/internal/bot"
	"github.com/lox/minipoker/internal/game"
	"github.com/lox/minipoker/internal/randutil"
	"github.com/lox/minipoker/internal/statistics"
)

// DefaultRounds is the number of rounds per run when none is configured.
const DefaultRounds = 200000

// defaultCheckEvery is how often the run loop polls its context.
const defaultCheckEvery = 4096

// maxReservedRounds caps the reward slice reserved up front. Longer runs
// grow it as they go.
const maxReservedRounds = 1 << 20

// Config holds configuration for one simulation run
type Config struct {
	Name     string
	Rounds   int
	Seed     int64
	Learner  bandit.Config
	Opponent bot.Config

	// SkipLearnerOnResign stops B from acting on rounds where A resigned.
	SkipLearnerOnResign bool

	// CheckEvery is how many rounds pass between context checks. Zero uses
	// the default.
	CheckEvery int

	// TraceEvery samples the learner's state every N rounds. Zero disables
	// the trace.
	TraceEvery int

	// Progress, when set, is called every ProgressEvery rounds and once at
	// the end of the run.
	Progress      func(Progress)
	ProgressEvery int

	Clock  quartz.Clock
	Logger *zerolog.Logger
}

// Validate checks the run parameters and both players' configuration.
func (c Config) Validate() error {
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must be >= 0, got %d", c.Rounds)
	}
	if c.CheckEvery < 0 {
		return errors.New("check interval cannot be negative")
	}
	if c.TraceEvery < 0 {
		return errors.New("trace interval cannot be negative")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	if err := c.Learner.Validate(); err != nil {
		return err
	}
	return c.Opponent.Validate()
}

// DefaultConfig returns the reference decaying-alpha run.
func DefaultConfig() Config {
	return Config{
		Name:    "Alpha decaying",
		Rounds:  DefaultRounds,
		Seed:    1,
		Learner: bandit.DecayingConfig(),
		Opponent: bot.Config{
			Strategy:        bot.StrategyBaseline,
			HoldProbability: bot.DefaultHoldProbability,
		},
	}
}

// Progress is reported periodically during a run.
type Progress struct {
	Name    string
	Round   int
	Rounds  int
	Mean    float64
	Learner bandit.Snapshot
}

// TracePoint is one sample of the learner's state.
type TracePoint struct {
	Round   int        `json:"round"`
	Values  [2]float64 `json:"values"`
	Alpha   float64    `json:"alpha"`
	Epsilon float64    `json:"epsilon"`
}

// Result summarises a completed run.
type Result struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Seed     int64                  `json:"seed"`
	Rounds   int                    `json:"rounds"`
	Stats    *statistics.Statistics `json:"-"`
	Learner  bandit.Snapshot        `json:"learner"`
	Trace    []TracePoint           `json:"trace,omitempty"`
	Duration time.Duration          `json:"duration_ns"`

	OpponentRounds int `json:"opponent_rounds"`
}

// Mean returns A's average reward per round.
func (r *Result) Mean() float64 {
	return r.Stats.Mean()
}

// Won reports whether A broke even or better. A run without rounds has no
// average and is never a win.
func (r *Result) Won() bool {
	return r.Rounds > 0 && r.Mean() >= 0
}

// RoundsPerSecond returns throughput, or zero when no time was measured.
func (r *Result) RoundsPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Rounds) / r.Duration.Seconds()
}

// Simulator runs a single configured simulation
type Simulator struct {
	config Config
	clock  quartz.Clock
	logger zerolog.Logger
}

// New validates config and creates a simulator.
func New(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("run %q: %w", config.Name, err)
	}
	if config.CheckEvery == 0 {
		config.CheckEvery = defaultCheckEvery
	}

	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("run", config.Name).Logger()
	}
	return &Simulator{config: config, clock: clock, logger: logger}, nil
}

// Run plays every round of the configuration. Each run builds its own
// dealer, opponent and learner from streams derived from the run seed, so
// runs never share random state.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config

	learner, err := bandit.New(cfg.Learner, randutil.NewStream(cfg.Seed, randutil.StreamLearner))
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", cfg.Name, err)
	}
	opponent, err := bot.New(cfg.Opponent, randutil.NewStream(cfg.Seed, randutil.StreamOpponent), s.logger)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", cfg.Name, err)
	}
	engine := game.NewEngine(
		game.NewDealer(randutil.NewStream(cfg.Seed, randutil.StreamDealer)),
		game.Options{SkipLearnerOnResign: cfg.SkipLearnerOnResign, Logger: &s.logger},
	)

	s.logger.Info().
		Int("rounds", cfg.Rounds).
		Int64("seed", cfg.Seed).
		Float64("alpha", cfg.Learner.Alpha).
		Float64("epsilon", cfg.Learner.Epsilon).
		Float64("alpha_decay", cfg.Learner.AlphaDecay).
		Float64("epsilon_decay", cfg.Learner.EpsilonDecay).
		Str("opponent", cfg.Opponent.Strategy).
		Bool("skip_learner_on_resign", cfg.SkipLearnerOnResign).
		Msg("Starting simulation")

	stats := &statistics.Statistics{Values: make([]float64, 0, reservedRounds(cfg.Rounds))}
	var trace []TracePoint
	start := s.clock.Now()

	for round := 1; round <= cfg.Rounds; round++ {
		if round%cfg.CheckEvery == 0 {
			select {
			case <-ctx.Done():
				s.logger.Warn().Int("round", round).Msg("Simulation cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		stats.Add(engine.PlayRound(opponent, learner))

		if cfg.TraceEvery > 0 && round%cfg.TraceEvery == 0 {
			trace = append(trace, TracePoint{
				Round:   round,
				Values:  learner.Values(),
				Alpha:   learner.Alpha(),
				Epsilon: learner.Epsilon(),
			})
		}
		if cfg.Progress != nil && cfg.ProgressEvery > 0 && round%cfg.ProgressEvery == 0 {
			cfg.Progress(Progress{Name: cfg.Name, Round: round, Rounds: cfg.Rounds, Mean: stats.Mean(), Learner: learner.Snapshot()})
		}
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("run %q: statistics validation failed: %w", cfg.Name, err)
	}

	result := &Result{
		ID:             uuid.NewString(),
		Name:           cfg.Name,
		Seed:           cfg.Seed,
		Rounds:         cfg.Rounds,
		Stats:          stats,
		Learner:        learner.Snapshot(),
		Trace:          trace,
		Duration:       s.clock.Since(start),
		OpponentRounds: opponent.Rounds(),
	}

	if cfg.Progress != nil {
		cfg.Progress(Progress{Name: cfg.Name, Round: cfg.Rounds, Rounds: cfg.Rounds, Mean: stats.Mean(), Learner: result.Learner})
	}

	s.logger.Info().
		Float64("mean", result.Mean()).
		Float64("q_resign", result.Learner.Values[game.Resign]).
		Float64("q_see", result.Learner.Values[game.See]).
		Dur("duration", result.Duration).
		Msg("Simulation complete")

	return result, nil
}

func reservedRounds(rounds int) int {
	return min(rounds, maxReservedRounds)
}

// RunAll runs independent simulations, up to parallel at a time, and returns
// their results in the order of configs. Every configuration is validated
// before any run starts.
func RunAll(ctx context.Context, configs []Config, parallel int) ([]*Result, error) {
	sims := make([]*Simulator, len(configs))
	for i, cfg := range configs {
		sim, err := New(cfg)
		if err != nil {
			return nil, err
		}
		sims[i] = sim
	}

	if parallel <= 0 {
		parallel = 1
	}

	results := make([]*Result, len(sims))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, sim := range sims {
		g.Go(func() error {
			res, err := sim.Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
