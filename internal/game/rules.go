package game

// Reward is A's payoff for one round. B receives the negation.
type Reward int

// Payoff table, from A's point of view.
const (
	RewardAResigns   Reward = -20
	RewardBResigns   Reward = 10
	RewardBSeesRed   Reward = -40
	RewardBSeesBlack Reward = 30
)

// Rewards lists every payoff the game can produce.
var Rewards = [...]Reward{RewardBSeesRed, RewardAResigns, RewardBResigns, RewardBSeesBlack}

// Negate returns the opponent's reward.
func (r Reward) Negate() Reward {
	return -r
}

// Resolve returns A's reward for the given card and actions. B's action is
// ignored when A resigns.
func Resolve(card Card, actionA, actionB Action) Reward {
	if actionA == Resign {
		return RewardAResigns
	}
	if actionB == Resign {
		return RewardBResigns
	}
	if card == Red {
		return RewardBSeesRed
	}
	return RewardBSeesBlack
}
