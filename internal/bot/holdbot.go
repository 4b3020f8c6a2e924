package bot

import "github.com/lox/minipoker/internal/game"

// HoldBot holds every card.
type HoldBot struct {
	record
}

// NewHoldBot creates a HoldBot.
func NewHoldBot() *HoldBot {
	return &HoldBot{}
}

func (h *HoldBot) Decide(game.Card) game.Action {
	return game.Hold
}

func (h *HoldBot) Observe(reward game.Reward, _ game.Action) {
	h.observe(reward)
}

// HonestBot holds black and resigns red.
type HonestBot struct {
	record
}

// NewHonestBot creates an HonestBot.
func NewHonestBot() *HonestBot {
	return &HonestBot{}
}

func (h *HonestBot) Decide(card game.Card) game.Action {
	if card == game.Black {
		return game.Hold
	}
	return game.Resign
}

func (h *HonestBot) Observe(reward game.Reward, _ game.Action) {
	h.observe(reward)
}
