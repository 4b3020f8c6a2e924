package game

import "github.com/lox/minipoker/internal/randutil"

// Card is the single card dealt to A each round.
type Card uint8

const (
	Black Card = iota
	Red
)

func (c Card) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// Valid reports whether c is Black or Red.
func (c Card) Valid() bool {
	return c == Black || c == Red
}

// Dealer deals one card per round.
type Dealer interface {
	Deal() Card
}

// RandomDealer deals Black or Red with probability 0.5 each.
type RandomDealer struct {
	rng randutil.Source
}

// NewDealer creates a dealer drawing from rng.
func NewDealer(rng randutil.Source) *RandomDealer {
	return &RandomDealer{rng: rng}
}

// Deal returns a fair random card.
func (d *RandomDealer) Deal() Card {
	return Card(d.rng.IntN(2))
}

// FixedDealer always deals the same card.
type FixedDealer Card

// Deal returns the fixed card.
func (d FixedDealer) Deal() Card {
	return Card(d)
}
