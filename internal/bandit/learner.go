// Package bandit implements player B as a single-state two-armed bandit.
//
// The learner keeps one value estimate per action and chooses between them
// epsilon-greedily. After each round it folds the observed reward into the
// estimate of the action it took with an exponential moving average. Both the
// exploration rate and the learning rate decay multiplicatively.
//
// The estimates are unconditional: B cannot see the card, so they track the
// expected reward of resigning and of seeing against A's current policy. If
// A's policy changes, previously learned values are stale until they
// re-converge.
package bandit

import (
	"github.com/lox/minipoker/internal/game"
	"github.com/lox/minipoker/internal/randutil"
)

// Learner is an epsilon-greedy two-armed bandit. It satisfies game.PlayerB.
type Learner struct {
	rng randutil.Source

	q            [game.NumActions]float64
	alpha        float64
	epsilon      float64
	alphaDecay   float64
	epsilonDecay float64

	lastAction game.Action
	decided    bool

	decisions    [game.NumActions]int
	explorations int
	updates      int

	trackHistory bool
	history      [][game.NumActions]float64
}

var _ game.PlayerB = (*Learner)(nil)

// New validates cfg and returns a learner drawing from rng.
func New(cfg Config, rng randutil.Source) (*Learner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Learner{
		rng:          rng,
		q:            cfg.InitialValues,
		alpha:        cfg.Alpha,
		epsilon:      cfg.Epsilon,
		alphaDecay:   cfg.AlphaDecay,
		epsilonDecay: cfg.EpsilonDecay,
		trackHistory: cfg.TrackHistory,
	}, nil
}

// Decide picks an action. With probability epsilon the action is uniform
// random, otherwise it is the greedy one. Epsilon decays after every call.
// The opponent action is ignored.
func (l *Learner) Decide(_ game.Action) game.Action {
	var action game.Action
	if l.rng.Float64() < l.epsilon {
		action = game.Action(l.rng.IntN(game.NumActions))
		l.explorations++
	} else {
		action = l.Greedy()
	}
	l.epsilon *= l.epsilonDecay

	l.lastAction = action
	l.decided = true
	l.decisions[action]++
	return action
}

// Observe moves the estimate of the last action towards reward and decays
// the learning rate. It does nothing if Decide has never been called.
func (l *Learner) Observe(reward game.Reward) {
	if !l.decided {
		return
	}
	i := l.lastAction
	l.q[i] = l.q[i]*(1-l.alpha) + float64(reward)*l.alpha
	l.alpha *= l.alphaDecay
	l.updates++

	if l.trackHistory {
		l.history = append(l.history, l.q)
	}
}

// Greedy returns the action with the larger estimate. Ties go to Resign.
func (l *Learner) Greedy() game.Action {
	if l.q[game.See] > l.q[game.Resign] {
		return game.See
	}
	return game.Resign
}

// Values returns the current estimates indexed by action.
func (l *Learner) Values() [game.NumActions]float64 {
	return l.q
}

// Alpha returns the current learning rate.
func (l *Learner) Alpha() float64 {
	return l.alpha
}

// Epsilon returns the current exploration rate.
func (l *Learner) Epsilon() float64 {
	return l.epsilon
}

// LastAction returns the most recent decision and whether one was made.
func (l *Learner) LastAction() (game.Action, bool) {
	return l.lastAction, l.decided
}

// History returns a copy of the estimates recorded after each update when
// Config.TrackHistory is set.
func (l *Learner) History() [][game.NumActions]float64 {
	if len(l.history) == 0 {
		return nil
	}
	history := make([][game.NumActions]float64, len(l.history))
	copy(history, l.history)
	return history
}

// Snapshot is a copy of the learner's observable state.
type Snapshot struct {
	Values       [game.NumActions]float64 `json:"values"`
	Alpha        float64                  `json:"alpha"`
	Epsilon      float64                  `json:"epsilon"`
	Decisions    [game.NumActions]int     `json:"decisions"`
	Explorations int                      `json:"explorations"`
	Updates      int                      `json:"updates"`
}

// Snapshot captures the current state.
func (l *Learner) Snapshot() Snapshot {
	return Snapshot{
		Values:       l.q,
		Alpha:        l.alpha,
		Epsilon:      l.epsilon,
		Decisions:    l.decisions,
		Explorations: l.explorations,
		Updates:      l.updates,
	}
}
