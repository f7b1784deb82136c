package session

import (
	"math/rand/v2"

	"kibitzer/internal/cards"
	"kibitzer/internal/game"
)

// SaveState is the single-level undo snapshot taken before a pickup or
// putdown.
type SaveState struct {
	// SessionID is the player who made the play, NoSession when there is
	// nothing to revoke.
	SessionID int
	Deck      *cards.Deck
	Hands     map[int]cards.Hand
	Turn      int
}

// Room is a table with a fixed rule set and a fixed number of seats.
type Room struct {
	Index int
	Rules game.Rules
	Deck  *cards.Deck
	Slots []int
	Turn  int
	Save  SaveState
}

// NewRoom returns a room with a shuffled pack, every seat empty and no turn
// set.
func NewRoom(index int, rules game.Rules, slots int, rng *rand.Rand) *Room {
	r := &Room{
		Index: index,
		Rules: rules,
		Deck:  cards.NewDeck(rng),
		Slots: make([]int, slots),
		Turn:  NoSession,
		Save:  SaveState{SessionID: NoSession},
	}
	for i := range r.Slots {
		r.Slots[i] = NoSession
	}
	r.Deck.Shuffle()
	return r
}

// Number is the one-based room number shown to players.
func (r *Room) Number() int { return r.Index + 1 }

// ValidSlot reports whether slot indexes a seat.
func (r *Room) ValidSlot(slot int) bool { return slot >= 0 && slot < len(r.Slots) }

// SaveFor snapshots the deck, the hands of players and the turn so actor's
// next play can be revoked.
func (r *Room) SaveFor(actor int, players []*Player) {
	hands := make(map[int]cards.Hand, len(players))
	for _, p := range players {
		hands[p.ID] = p.Hand.Clone()
	}
	r.Save = SaveState{
		SessionID: actor,
		Deck:      r.Deck.Clone(),
		Hands:     hands,
		Turn:      r.Turn,
	}
}

// Revoke restores the snapshot onto the room and the given players and
// consumes it. It returns false when there is nothing to revoke.
func (r *Room) Revoke(players []*Player) bool {
	if r.Save.SessionID == NoSession {
		return false
	}
	r.Deck = r.Save.Deck
	for _, p := range players {
		if h, ok := r.Save.Hands[p.ID]; ok {
			p.Hand = h
		}
	}
	r.Turn = r.Save.Turn
	r.Save = SaveState{SessionID: NoSession}
	return true
}

// ClearSave drops any pending snapshot.
func (r *Room) ClearSave() { r.Save = SaveState{SessionID: NoSession} }
