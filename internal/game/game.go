// Package game defines the contract implemented by every card game variant.
package game

import "kibitzer/internal/cards"

// Info describes a variant for room listings and state payloads.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Rules is a stateless rule set. One value is shared read-only by every
// room that plays it, so implementations must not keep per-game state.
type Rules interface {
	Info() Info

	// Rank is the card ordering used for legality and hand sorting.
	Rank() cards.Rank
	// HandSize is the number of cards dealt to each of players seats.
	HandSize(players int) int
	// FaceDown reports whether the discard pile is shown face down.
	FaceDown() bool

	// CanPlay reports whether hand holds some legal play on the deck.
	CanPlay(deck *cards.Deck, hand cards.Hand) bool
	// IsValidPlay reports whether exactly these cards may be played now.
	IsValidPlay(deck *cards.Deck, played cards.Hand) bool
	// IsWinningPlay reports whether the player's remaining hand wins the round.
	IsWinningPlay(deck *cards.Deck, remaining cards.Hand) bool
	// ClearDiscard reports whether the play throws away the discard pile.
	ClearDiscard(played cards.Hand) bool
	// SetNextTurn reports whether the turn passes on after the play.
	SetNextTurn(played cards.Hand) bool
	// NoPlayTakesDiscard reports whether a player who cannot play must pick
	// up the discard pile.
	NoPlayTakesDiscard() bool
	// CanRevoke reports whether the last play may be undone.
	CanRevoke() bool
}
