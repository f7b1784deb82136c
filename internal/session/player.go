// Package session holds the connected players and the fixed set of rooms
// they play in. Nothing here is safe for concurrent use; the controller
// serializes every access.
package session

import (
	"strconv"

	"kibitzer/internal/cards"
)

// State is a player's position in a room's round lifecycle.
type State int

const (
	// StateLurking players watch without a seat.
	StateLurking State = iota
	// StateJoined players hold a seat but no cards.
	StateJoined
	// StateDealt players have been dealt into the current round.
	StateDealt
)

func (s State) String() string {
	switch s {
	case StateLurking:
		return "lurking"
	case StateJoined:
		return "joined"
	case StateDealt:
		return "dealt"
	}
	return "unknown"
}

// NoSession marks an empty seat or an unset turn.
const NoSession = -1

// Player is one connected session.
type Player struct {
	ID     int
	Nic    string
	Room   int
	Slot   int
	Hand   cards.Hand
	Points int
	State  State
}

// NewPlayer returns a lurker in the first room, nicknamed after its id.
func NewPlayer(id int) *Player {
	return &Player{
		ID:    id,
		Nic:   "#" + strconv.Itoa(id),
		Slot:  NoSession,
		State: StateLurking,
	}
}

// Name is the nickname as shown in chat lines.
func (p *Player) Name() string { return "(" + p.Nic + ")" }

// Active reports whether the player holds a seat.
func (p *Player) Active() bool { return p.State != StateLurking && p.Slot != NoSession }

// PlayerEntry is one seat in a room's player list.
type PlayerEntry struct {
	SessionID int    `json:"sessionId"`
	Active    bool   `json:"active"`
	Nic       string `json:"nic"`
}

func (p *Player) entry() PlayerEntry {
	return PlayerEntry{SessionID: p.ID, Active: p.Active(), Nic: p.Nic}
}

func emptyEntry(slot int) PlayerEntry {
	return PlayerEntry{SessionID: NoSession, Nic: "empty " + strconv.Itoa(slot+1)}
}
