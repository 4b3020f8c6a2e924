package game

// Action is a player's choice. For A, Hold keeps the card in play; for B,
// See (the same value) calls A's hold.
type Action uint8

const (
	Resign Action = iota
	Hold
)

// See is B's name for the non-resign action.
const See = Hold

// NumActions is the size of every player's action space.
const NumActions = 2

func (a Action) String() string {
	switch a {
	case Resign:
		return "resign"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the two actions.
func (a Action) Valid() bool {
	return a == Resign || a == Hold
}

// PlayerA decides on the dealt card.
type PlayerA interface {
	// Decide returns Resign or Hold for the card.
	Decide(card Card) Action
	// Observe is called once per round after it resolves with A's own reward
	// and B's action.
	Observe(reward Reward, opponent Action)
}

// PlayerB decides after A has acted.
type PlayerB interface {
	// Decide returns Resign or See. The opponent action is informational;
	// B only matters once A has held.
	Decide(opponent Action) Action
	// Observe is called once per round with B's own reward.
	Observe(reward Reward)
}
