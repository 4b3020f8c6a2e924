package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minipoker/internal/randutil"
)

func TestPlayRoundRewards(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		actionA Action
		actionB Action
		want    Reward
	}{
		{"black hold see", Black, Hold, See, 30},
		{"red hold see", Red, Hold, See, -40},
		{"black resign", Black, Resign, See, -20},
		{"red resign", Red, Resign, Resign, -20},
		{"black hold resign", Black, Hold, Resign, 10},
		{"red hold resign", Red, Hold, Resign, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &scriptedA{action: tt.actionA}
			b := &scriptedB{action: tt.actionB}
			out := NewEngine(FixedDealer(tt.card)).PlayRound(a, b)

			assert.Equal(t, tt.want, out.RewardA)
			assert.Equal(t, tt.card, out.Card)
			assert.Equal(t, tt.actionA, out.ActionA)
			assert.Equal(t, tt.actionB, out.ActionB)
			assert.True(t, out.LearnerActed)
			assert.Equal(t, []Card{tt.card}, a.cards)
			assert.Equal(t, []Action{tt.actionA}, b.hints)
		})
	}
}

func TestPlayRoundZeroSum(t *testing.T) {
	engine := NewEngine(NewDealer(randutil.New(3)))
	for _, actionA := range []Action{Resign, Hold} {
		for _, actionB := range []Action{Resign, See} {
			a := &scriptedA{action: actionA}
			b := &scriptedB{action: actionB}
			for i := 0; i < 50; i++ {
				out := engine.PlayRound(a, b)
				require.Equal(t, -out.RewardA, b.rewards[i])
				require.Equal(t, out.RewardA, a.rewards[i])
				require.Equal(t, out.RewardB(), b.rewards[i])
			}
		}
	}
}

func TestPlayRoundObserveOrder(t *testing.T) {
	var calls []string
	a := &scriptedA{action: Hold, log: &calls}
	b := &scriptedB{action: See, log: &calls}

	engine := NewEngine(FixedDealer(Black))
	engine.PlayRound(a, b)
	engine.PlayRound(a, b)

	assert.Equal(t, []string{"b", "a", "b", "a"}, calls)
}

func TestPlayRoundPassesOpponentActionToA(t *testing.T) {
	a := &scriptedA{action: Hold}
	b := &scriptedB{action: See}
	NewEngine(FixedDealer(Red)).PlayRound(a, b)

	require.Len(t, a.opponents, 1)
	assert.Equal(t, See, a.opponents[0])
}

func TestPlayRoundLearnerActsOnResignByDefault(t *testing.T) {
	a := &scriptedA{action: Resign}
	b := &scriptedB{action: See}

	out := NewEngine(FixedDealer(Red)).PlayRound(a, b)

	assert.True(t, out.LearnerActed)
	assert.Equal(t, []Action{Resign}, b.hints)
	assert.Equal(t, []Reward{20}, b.rewards)
	assert.Equal(t, []Action{See}, a.opponents)
}

func TestPlayRoundSkipLearnerOnResign(t *testing.T) {
	engine := NewEngine(FixedDealer(Red), Options{SkipLearnerOnResign: true})

	t.Run("A resigns", func(t *testing.T) {
		a := &scriptedA{action: Resign}
		b := &scriptedB{action: See}
		out := engine.PlayRound(a, b)

		assert.False(t, out.LearnerActed)
		assert.Equal(t, RewardAResigns, out.RewardA)
		assert.Empty(t, b.hints)
		assert.Empty(t, b.rewards)
		assert.Equal(t, []Action{Resign}, a.opponents)
		assert.Equal(t, []Reward{RewardAResigns}, a.rewards)
	})

	t.Run("A holds", func(t *testing.T) {
		a := &scriptedA{action: Hold}
		b := &scriptedB{action: See}
		out := engine.PlayRound(a, b)

		assert.True(t, out.LearnerActed)
		assert.Equal(t, RewardBSeesRed, out.RewardA)
		assert.Equal(t, []Reward{40}, b.rewards)
	})
}
