package bot

import (
	"github.com/rs/zerolog"

	"github.com/lox/minipoker/internal/game"
	"github.com/lox/minipoker/internal/randutil"
)

// minAdaptiveSamples is how many of B's responses to a hold the adaptive bot
// collects before it trusts its estimate.
const minAdaptiveSamples = 50

// bluffBreakEven is the B resign rate above which holding red beats
// resigning: 10p - 40(1-p) > -20 when p > 0.4.
const bluffBreakEven = 0.4

// AdaptiveBot holds black and decides red from B's observed behaviour.
// Until it has seen enough of B's responses it bluffs red with a fixed
// probability; afterwards it bluffs exactly when B resigns often enough for
// the bluff to pay.
type AdaptiveBot struct {
	record
	fallback float64
	rng      randutil.Source
	logger   zerolog.Logger

	lastAction game.Action
	responses  int // B's responses to our holds
	resigns    int // of which were resigns
	bluffing   bool
}

// NewAdaptiveBot creates an AdaptiveBot that bluffs red with probability
// fallback while it is still gathering samples.
func NewAdaptiveBot(fallback float64, rng randutil.Source, logger zerolog.Logger) (*AdaptiveBot, error) {
	if err := validateProbability(fallback); err != nil {
		return nil, err
	}
	return &AdaptiveBot{fallback: fallback, rng: rng, logger: logger}, nil
}

func (a *AdaptiveBot) Decide(card game.Card) game.Action {
	a.lastAction = a.decide(card)
	return a.lastAction
}

func (a *AdaptiveBot) decide(card game.Card) game.Action {
	if card == game.Black {
		return game.Hold
	}
	if a.responses < minAdaptiveSamples {
		if a.rng.Float64() < a.fallback {
			return game.Hold
		}
		return game.Resign
	}
	if a.ResignRate() > bluffBreakEven {
		return game.Hold
	}
	return game.Resign
}

// Observe records the reward and, when we held, B's response.
func (a *AdaptiveBot) Observe(reward game.Reward, opponent game.Action) {
	a.observe(reward)
	if a.lastAction != game.Hold {
		return
	}
	a.responses++
	if opponent == game.Resign {
		a.resigns++
	}

	if a.responses < minAdaptiveSamples {
		return
	}
	bluffing := a.ResignRate() > bluffBreakEven
	if bluffing != a.bluffing {
		a.bluffing = bluffing
		a.logger.Debug().
			Bool("bluffing", bluffing).
			Float64("resign_rate", a.ResignRate()).
			Int("responses", a.responses).
			Msg("adaptive bot switched red policy")
	}
}

// ResignRate returns the observed fraction of holds that B answered by
// resigning.
func (a *AdaptiveBot) ResignRate() float64 {
	if a.responses == 0 {
		return 0
	}
	return float64(a.resigns) / float64(a.responses)
}
