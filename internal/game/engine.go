package game

import "github.com/rs/zerolog"

// Options tune the round protocol.
type Options struct {
	// SkipLearnerOnResign stops B from deciding and observing on rounds where
	// A resigned. By default B is asked every round, which feeds it the
	// A-resigns payoff even though its choice had no effect.
	SkipLearnerOnResign bool

	// Logger receives a trace event per round. Nil disables logging.
	Logger *zerolog.Logger
}

// Outcome describes one resolved round.
type Outcome struct {
	Card         Card
	ActionA      Action
	ActionB      Action
	LearnerActed bool // false only when B was skipped after A resigned
	RewardA      Reward
}

// RewardB returns B's reward, the negation of A's.
func (o Outcome) RewardB() Reward {
	return o.RewardA.Negate()
}

// Engine plays rounds between two players using a shared dealer.
type Engine struct {
	dealer Dealer
	opts   Options
	logger zerolog.Logger
}

// NewEngine creates an engine. At most one Options value is used.
func NewEngine(dealer Dealer, opts ...Options) *Engine {
	e := &Engine{dealer: dealer, logger: zerolog.Nop()}
	if len(opts) > 0 {
		e.opts = opts[0]
		if e.opts.Logger != nil {
			e.logger = *e.opts.Logger
		}
	}
	return e
}

// PlayRound plays a single round: deal, A decides, B decides, resolve, then
// B observes before A.
func (e *Engine) PlayRound(a PlayerA, b PlayerB) Outcome {
	card := e.dealer.Deal()
	actionA := a.Decide(card)

	out := Outcome{Card: card, ActionA: actionA, ActionB: Resign}
	if actionA == Hold || !e.opts.SkipLearnerOnResign {
		out.ActionB = b.Decide(actionA)
		out.LearnerActed = true
	}

	out.RewardA = Resolve(card, actionA, out.ActionB)

	if out.LearnerActed {
		b.Observe(out.RewardB())
	}
	a.Observe(out.RewardA, out.ActionB)

	e.logger.Trace().
		Stringer("card", card).
		Stringer("action_a", actionA).
		Stringer("action_b", out.ActionB).
		Bool("learner_acted", out.LearnerActed).
		Int("reward_a", int(out.RewardA)).
		Msg("round resolved")

	return out
}
