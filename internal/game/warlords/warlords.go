// Package warlords implements Warlords and Scumbags, a climbing game where
// 2 is the top card and players race to empty their hands.
//
// See https://www.pagat.com/climbing/president.html.
package warlords

import (
	"kibitzer/internal/cards"
	"kibitzer/internal/game"
)

// ID is the registry id.
const ID = "warlords"

var (
	two   = cards.MustParse("2C")
	three = cards.MustParse("3C")
	ten   = cards.MustParse("XC")
)

// Rules implements game.Rules.
type Rules struct{}

var _ game.Rules = Rules{}

func (Rules) Info() game.Info {
	return game.Info{
		ID:   ID,
		Name: "Warlords and Scumbags",
		URL:  "https://en.wikipedia.org/wiki/President_(card_game)",
	}
}

func (Rules) Rank() cards.Rank { return cards.TwoHigh }

// HandSize splits the whole deck between the seated players.
func (Rules) HandSize(players int) int {
	if players < 1 {
		players = 1
	}
	return cards.NumCards / players
}

func (Rules) FaceDown() bool { return false }

// openPile reports whether any rank may be played: the pile is empty or
// topped by a 2, which restarts the sequence.
func openPile(deck *cards.Deck) bool {
	last, ok := deck.LastPlay()
	return deck.DiscardSize() == 0 || !ok || cards.TwoHigh(last) == cards.TwoHigh(two)
}

func (Rules) CanPlay(deck *cards.Deck, hand cards.Hand) bool {
	switch {
	case hand.Len() == 0:
		return false
	case hand.HasEqual(two, cards.TwoHigh):
		return true
	case openPile(deck):
		return true
	}
	last, _ := deck.LastPlay()
	return hand.HasHigher(last, deck.LastSize(), cards.TwoHigh)
}

func (Rules) IsValidPlay(deck *cards.Deck, played cards.Hand) bool {
	switch {
	case played.Len() == 0:
		return false
	case !played.IsEqual(played.Peek(), cards.TwoHigh):
		// one or more cards of the same rank
		return false
	case played.HasEqual(two, cards.TwoHigh):
		return true
	case openPile(deck):
		return true
	}
	last, _ := deck.LastPlay()
	return played.HasHigher(last, 1, cards.TwoHigh) && played.Len() == deck.LastSize()
}

func (Rules) IsWinningPlay(_ *cards.Deck, remaining cards.Hand) bool {
	return remaining.Len() == 0
}

// ClearDiscard is true for 3s, 10s and any four of a kind.
func (Rules) ClearDiscard(played cards.Hand) bool {
	return played.HasEqual(three, cards.TwoHigh) ||
		played.HasEqual(ten, cards.TwoHigh) ||
		played.Len() == 4
}

// SetNextTurn keeps the turn with a player who cleared the pile.
func (r Rules) SetNextTurn(played cards.Hand) bool {
	return !r.ClearDiscard(played)
}

func (Rules) NoPlayTakesDiscard() bool { return true }

func (Rules) CanRevoke() bool { return false }
