// Package bot provides player A strategies for mini-poker.
package bot

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lox/minipoker/internal/game"
	"github.com/lox/minipoker/internal/randutil"
)

var (
	// ErrInvalidProbability is returned when a hold probability is outside [0, 1].
	ErrInvalidProbability = errors.New("hold probability must be in [0, 1]")
	// ErrUnknownStrategy is returned by New for an unregistered strategy name.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy names accepted by New.
const (
	StrategyBaseline = "baseline"
	StrategyHold     = "hold"
	StrategyHonest   = "honest"
	StrategyAdaptive = "adaptive"
)

// DefaultHoldProbability is the baseline chance of holding a red card.
const DefaultHoldProbability = 0.6

// Config selects and parameterises a strategy.
type Config struct {
	Strategy        string
	HoldProbability float64
}

// Validate checks the strategy name and probability.
func (c Config) Validate() error {
	if _, ok := constructors[c.Strategy]; !ok {
		return fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, c.Strategy, Strategies())
	}
	return validateProbability(c.HoldProbability)
}

// Bot is a player A strategy that keeps a record of its rounds.
type Bot interface {
	game.PlayerA
	Rounds() int
	Rewards() []game.Reward
}

type constructor func(cfg Config, rng randutil.Source, logger zerolog.Logger) (Bot, error)

var constructors = map[string]constructor{
	StrategyBaseline: func(cfg Config, rng randutil.Source, logger zerolog.Logger) (Bot, error) {
		return NewBaselineBot(cfg.HoldProbability, rng, logger)
	},
	StrategyHold: func(Config, randutil.Source, zerolog.Logger) (Bot, error) {
		return NewHoldBot(), nil
	},
	StrategyHonest: func(Config, randutil.Source, zerolog.Logger) (Bot, error) {
		return NewHonestBot(), nil
	},
	StrategyAdaptive: func(cfg Config, rng randutil.Source, logger zerolog.Logger) (Bot, error) {
		return NewAdaptiveBot(cfg.HoldProbability, rng, logger)
	},
}

// New creates the strategy named in cfg.
func New(cfg Config, rng randutil.Source, logger zerolog.Logger) (Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return constructors[cfg.Strategy](cfg, rng, logger.With().Str("strategy", cfg.Strategy).Logger())
}

// Strategies returns the registered strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w, got %v", ErrInvalidProbability, p)
	}
	return nil
}

// record tracks what a bot has observed. Bots embed it.
type record struct {
	rewards []game.Reward
}

func (r *record) observe(reward game.Reward) {
	r.rewards = append(r.rewards, reward)
}

// Rounds returns the number of rounds observed.
func (r *record) Rounds() int {
	return len(r.rewards)
}

// Rewards returns every reward observed, oldest first.
func (r *record) Rewards() []game.Reward {
	return r.rewards
}
