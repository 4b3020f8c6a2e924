package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minipoker/internal/randutil"
)

func TestCardString(t *testing.T) {
	assert.Equal(t, "black", Black.String())
	assert.Equal(t, "red", Red.String())
	assert.Equal(t, "unknown", Card(7).String())
	assert.False(t, Card(2).Valid())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "resign", Resign.String())
	assert.Equal(t, "hold", Hold.String())
	assert.Equal(t, Hold, See)
	assert.False(t, Action(2).Valid())
}

func TestRandomDealerIsFair(t *testing.T) {
	dealer := NewDealer(randutil.New(1))

	const n = 100000
	red := 0
	for i := 0; i < n; i++ {
		c := dealer.Deal()
		require.True(t, c.Valid())
		if c == Red {
			red++
		}
	}

	// 5 standard deviations of a fair coin over n draws is about 790.
	assert.InDelta(t, n/2, red, 800)
}

func TestRandomDealerUsesInjectedSource(t *testing.T) {
	dealer := NewDealer(&scriptedSource{ints: []int{1, 0, 1}})
	assert.Equal(t, Red, dealer.Deal())
	assert.Equal(t, Black, dealer.Deal())
	assert.Equal(t, Red, dealer.Deal())
}

func TestFixedDealer(t *testing.T) {
	d := FixedDealer(Red)
	for i := 0; i < 5; i++ {
		assert.Equal(t, Red, d.Deal())
	}
}
