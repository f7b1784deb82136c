package controller

import (
	"strings"

	"kibitzer/internal/session"
)

// nextAfter picks the dealt player following current in connection order,
// wrapping around. When current is not a dealt player in the room the
// first dealt player is chosen.
func (c *Controller) nextAfter(r *session.Room, current int) int {
	var dealt []*session.Player
	for _, p := range c.dir.InRoom(r.Index) {
		if p.State == session.StateDealt {
			dealt = append(dealt, p)
		}
	}
	if len(dealt) == 0 {
		return session.NoSession
	}
	for i, p := range dealt {
		if p.ID == current {
			return dealt[(i+1)%len(dealt)].ID
		}
	}
	return dealt[0].ID
}

func (c *Controller) nextTurn(r *session.Room) int {
	return c.nextAfter(r, r.Turn)
}

// setNextTurn passes the turn to the next player able to play, skipping
// those who cannot. The turn stays put when the scan comes back round or
// nobody can play. It returns any notes about forced pickups.
func (c *Controller) setNextTurn(r *session.Room) string {
	var notes strings.Builder
	current := r.Turn
	next := c.nextAfter(r, current)
	for count := 0; next != session.NoSession && next != current && count < c.dir.Len(); count++ {
		if c.canPlay(next, &notes) {
			r.Turn = next
			break
		}
		next = c.nextAfter(r, next)
	}
	return notes.String()
}

// canPlay reports whether a player can make a play. Under rules where an
// impossible play costs the discard pile, the pile is taken once and the
// check repeated.
func (c *Controller) canPlay(sessionID int, notes *strings.Builder) bool {
	p, ok := c.dir.Get(sessionID)
	if !ok {
		return false
	}
	r := c.room(p)
	if r.Rules.CanPlay(r.Deck, p.Hand) {
		return true
	}
	if !r.Rules.NoPlayTakesDiscard() {
		return false
	}
	r.Deck.TakeDiscard(&p.Hand)
	p.Hand.Sort(r.Rules.Rank())
	notes.WriteString(" " + p.Name() + " picked up the deck.")
	return r.Rules.CanPlay(r.Deck, p.Hand)
}

// isTurn reports whether a dealt player may act. An unset turn lets any
// dealt player go first.
func (c *Controller) isTurn(p *session.Player) bool {
	if p.State != session.StateDealt {
		return false
	}
	turn := c.room(p).Turn
	return turn == session.NoSession || turn == p.ID
}
