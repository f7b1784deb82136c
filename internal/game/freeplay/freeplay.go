// Package freeplay implements "Rules Free": anything goes, the table
// decides what is fair.
package freeplay

import (
	"kibitzer/internal/cards"
	"kibitzer/internal/game"
)

// ID is the registry id.
const ID = "free"

// Rules implements game.Rules.
type Rules struct{}

var _ game.Rules = Rules{}

func (Rules) Info() game.Info {
	return game.Info{
		ID:   ID,
		Name: "Rules Free",
		URL:  "https://en.wikipedia.org/wiki/Card_game",
	}
}

func (Rules) Rank() cards.Rank { return cards.AceHigh }

func (Rules) HandSize(int) int { return 7 }

func (Rules) FaceDown() bool { return false }

func (Rules) CanPlay(deck *cards.Deck, hand cards.Hand) bool {
	if hand.Len() == 0 {
		return false
	}
	last, ok := deck.LastPlay()
	if deck.DiscardSize() == 0 || !ok {
		return true
	}
	return hand.HasHigher(last, 1, cards.AceHigh)
}

func (Rules) IsValidPlay(_ *cards.Deck, played cards.Hand) bool {
	return played.Len() > 0
}

func (Rules) IsWinningPlay(*cards.Deck, cards.Hand) bool { return false }

func (Rules) ClearDiscard(cards.Hand) bool { return false }

func (Rules) SetNextTurn(cards.Hand) bool { return true }

func (Rules) NoPlayTakesDiscard() bool { return false }

func (Rules) CanRevoke() bool { return true }
