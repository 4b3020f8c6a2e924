package bot

import (
	"github.com/rs/zerolog"

	"github.com/lox/minipoker/internal/game"
	"github.com/lox/minipoker/internal/randutil"
)

// BaselineBot always holds black and holds red with a fixed probability.
type BaselineBot struct {
	record
	holdProbability float64
	rng             randutil.Source
}

// NewBaselineBot creates a BaselineBot holding red with probability p.
func NewBaselineBot(p float64, rng randutil.Source, logger zerolog.Logger) (*BaselineBot, error) {
	if err := validateProbability(p); err != nil {
		return nil, err
	}
	logger.Debug().Float64("hold_probability", p).Msg("baseline bot ready")
	return &BaselineBot{holdProbability: p, rng: rng}, nil
}

// Decide holds black, and bluffs red with the configured probability.
func (b *BaselineBot) Decide(card game.Card) game.Action {
	if card == game.Black {
		return game.Hold
	}
	if b.rng.Float64() < b.holdProbability {
		return game.Hold
	}
	return game.Resign
}

// Observe records the reward. The opponent's action is not used.
func (b *BaselineBot) Observe(reward game.Reward, _ game.Action) {
	b.observe(reward)
}
