package controller

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"kibitzer/internal/cards"
	"kibitzer/internal/session"
)

// cards renders the room's table state. A nil player leaves out the hand.
func (c *Controller) cards(p *session.Player, r *session.Room, text string) []byte {
	payload := cardsPayload{
		Pile:     r.Deck.Discard(),
		Message:  text,
		Turn:     r.Turn,
		FaceDown: r.Rules.FaceDown(),
		Game:     r.Rules.Info().Name,
	}
	if p != nil {
		hand := p.Hand
		payload.Hand = &hand
		payload.SessionID = p.ID
	}
	return encode("cards", payload)
}

// tell replies to the requester only.
func tell(kind Kind, p *session.Player, text string) Message {
	return Message{Kind: kind, Data: chatData(text), Room: p.Room}
}

// announce sends text to the requester's room.
func announce(kind Kind, p *session.Player, text string) Message {
	return Message{Kind: kind, Data: chatData(text), Broadcast: true, Room: p.Room}
}

// table sends the room state to the requester and, redacted, to the room.
func (c *Controller) table(kind Kind, p *session.Player, text, notice string) Message {
	r := c.room(p)
	return Message{
		Kind:      kind,
		Data:      c.cards(p, r, text),
		Broadcast: true,
		Room:      r.Index,
		Notice:    notice,
	}
}

func (c *Controller) chat(p *session.Player, text string) Message {
	return announce(KindChat, p, p.Name()+" "+text)
}

func (c *Controller) deal(p *session.Player) Message {
	r := c.room(p)
	switch p.State {
	case session.StateLurking:
		return tell(KindDeal, p, "select your avatar!")
	case session.StateDealt:
		return tell(KindDeal, p, fmt.Sprintf("%s already has %s", p.Name(), plural("card", p.Hand.Len())))
	}
	r.Deck.Deal(&p.Hand, r.Rules.HandSize(len(c.dir.Seated(r))))
	p.Hand.Sort(r.Rules.Rank())
	p.State = session.StateDealt
	// the snapshot does not cover these cards
	r.ClearSave()
	info := r.Rules.Info()
	ready := fmt.Sprintf("Ready to play: <a target=new href='%s'>%s</a>", info.URL, info.Name)
	return c.table(KindDeal, p, ready, p.Name()+" received cards")
}

func (c *Controller) greet(p *session.Player) Message {
	return Message{
		Kind: KindInit,
		Data: encode("init", initPayload{
			Welcome:   c.welcome,
			SessionID: p.ID,
			Players:   c.dir.PlayerList(c.room(p)),
		}),
		Room: p.Room,
	}
}

func (c *Controller) join(p *session.Player, arg string) Message {
	r := c.room(p)
	slot := toInt(arg)

	if p.State == session.StateLurking && c.dir.Seat(p, slot) {
		payload := playersPayload{
			Message: fmt.Sprintf("%s has joined the game in room %d", p.Name(), r.Number()),
			Players: c.dir.PlayerList(r),
		}
		size := r.Rules.HandSize(len(c.dir.Seated(r)))
		dealt, full := 0, 0
		for _, next := range c.dir.InRoom(r.Index) {
			if next.State == session.StateDealt {
				dealt++
				if next.Hand.Len() == size {
					full++
				}
			}
		}
		if dealt > 0 && dealt == full {
			// dealt but nobody has played yet
			payload.DealID = p.ID
			r.Turn = p.ID
		}
		turn := r.Turn
		payload.Turn = &turn
		return Message{Kind: KindJoin, Data: encode("players", payload), Broadcast: true, Room: r.Index}
	}

	other, ok := c.dir.Occupant(r, slot)
	switch {
	case !ok:
		return Message{
			Kind: KindJoin,
			Data: encode("players", playersPayload{
				Message: p.Name() + " poked nobody",
				Players: c.dir.PlayerList(r),
			}),
			Broadcast: true,
			Room:      r.Index,
		}
	case other.ID != p.ID:
		return announce(KindJoin, p, fmt.Sprintf("%s poked %s [%d cards]", p.Name(), other.Nic, other.Hand.Len()))
	case r.Rules.CanRevoke() && r.Save.SessionID == p.ID:
		r.Revoke(c.dir.InRoom(r.Index))
		text := fmt.Sprintf("%s play revoked by %s", p.Name(), p.Nic)
		return c.table(KindRevoke, p, text, text)
	case p.State == session.StateDealt && r.Turn == p.ID:
		r.Turn = c.nextTurn(r)
		text := p.Name() + " skipped their turn"
		return Message{Kind: KindJoin, Data: c.cards(nil, r, text), Broadcast: true, Room: r.Index}
	}
	return announce(KindJoin, p, fmt.Sprintf("%s has %d cards", p.Name(), p.Hand.Len()))
}

func (c *Controller) nic(p *session.Player, arg string) Message {
	if p.State == session.StateLurking {
		return tell(KindNicname, p, "lurkers can't set nic!")
	}
	name := strings.ReplaceAll(arg, `"`, "")
	if strings.TrimSpace(name) == "" {
		return tell(KindNicname, p, "nic can't be empty")
	}
	for _, other := range c.dir.Players() {
		if other.ID != p.ID && other.State != session.StateLurking && strings.EqualFold(other.Nic, name) {
			return tell(KindNicname, p, "nic "+name+" already exists")
		}
	}
	old := p.Name()
	p.Nic = name
	return Message{
		Kind: KindNicname,
		Data: encode("players", playersPayload{
			Message: old + " changed nic to: " + name,
			Players: c.dir.PlayerList(c.room(p)),
		}),
		Broadcast: true,
		Room:      p.Room,
	}
}

func (c *Controller) pickup(p *session.Player, arg string) Message {
	if !c.isTurn(p) {
		return tell(KindPickup, p, p.Name()+" wait for your turn!")
	}
	r := c.room(p)
	if r.Deck.PackSize() == 0 {
		return tell(KindPickup, p, p.Name()+" nothing to pickup!")
	}
	n := 1
	if arg != "" {
		n = toInt(arg)
	}
	if n < 1 {
		n = 1
	}

	r.SaveFor(p.ID, c.dir.InRoom(r.Index))
	picked := r.Deck.Pickup(&p.Hand, n)
	p.Hand.Sort(r.Rules.Rank())
	notes := c.setNextTurn(r)

	text := "Picked: " + picked.String() + notes
	notice := fmt.Sprintf("%s took %s from the deck%s", p.Name(), plural("card", picked.Len()), notes)
	return c.table(KindPickup, p, text, notice)
}

func (c *Controller) putdown(p *session.Player, arg string) Message {
	if !c.isTurn(p) {
		return tell(KindPutDown, p, p.Name()+" wait for your turn!")
	}
	played, err := cards.ParseHand(arg)
	if err != nil {
		c.log.Warn("error in list", zap.Int("session", p.ID), zap.String("list", arg), zap.Error(err))
	}
	r := c.room(p)
	if !p.Hand.Has(played) || !r.Rules.IsValidPlay(r.Deck, played) {
		return tell(KindPutDown, p, p.Name()+" invalid play!")
	}

	before := r.Deck.DiscardSize()
	r.SaveFor(p.ID, c.dir.InRoom(r.Index))
	p.Hand.Remove(played)
	r.Deck.Putdown(played)
	if r.Rules.ClearDiscard(played) {
		r.Deck.ClearDiscard()
	}
	if r.Rules.IsWinningPlay(r.Deck, p.Hand) {
		return c.gameover(p, r)
	}

	text := p.Name() + " played " + played.String()
	if r.Deck.DiscardSize() < before {
		text += ", discard pile now has " + plural("card", r.Deck.DiscardSize())
	}
	if r.Rules.SetNextTurn(played) {
		text += c.setNextTurn(r)
	}
	return c.table(KindPutDown, p, text, text)
}

// gameover scores the round for p and returns every room player to their
// seat with an empty hand.
func (c *Controller) gameover(p *session.Player, r *session.Room) Message {
	p.Points++
	info := r.Rules.Info()
	result := &RoundResult{Room: r.Index, Game: info.Name, Winner: p.Nic}

	var b strings.Builder
	b.WriteString(p.Name() + " won the round, you can't beat skill!<br/><br/>Score:")
	for _, next := range c.dir.InRoom(r.Index) {
		if next.State == session.StateDealt {
			next.State = session.StateJoined
		}
		next.Hand.Clear()
		fmt.Fprintf(&b, "<br/>%s: %d", next.Name(), next.Points)
		result.Scores = append(result.Scores, Score{Nic: next.Nic, Points: next.Points})
	}
	r.ClearSave()
	c.log.Info("round over",
		zap.Int("room", r.Number()),
		zap.String("game", info.Name),
		zap.String("winner", p.Nic))

	msg := c.table(KindPutDown, p, b.String(), b.String())
	msg.Round = result
	return msg
}

func (c *Controller) exchange(p *session.Player, arg string) Message {
	parts := strings.SplitN(arg, ":", 3)
	var op byte
	var toID, list string
	if len(parts[0]) > 0 {
		op = parts[0][0]
	}
	if len(parts) > 1 {
		toID = parts[1]
	}
	if len(parts) > 2 {
		list = parts[2]
	}
	give, err := cards.ParseHand(list)
	if err != nil {
		c.log.Warn("error in list", zap.Int("session", p.ID), zap.String("list", list), zap.Error(err))
	}

	target, ok := c.dir.Get(toInt(toID))
	if !ok || target.Room != p.Room {
		return tell(KindChat, p, "other player has left")
	}
	if op == 'Q' {
		return Message{
			Kind: KindOffer,
			Data: encode("exchange", exchangePayload{
				FromID:  p.ID,
				From:    p.Name(),
				ToID:    target.ID,
				Hand:    give,
				Message: fmt.Sprintf("%s offering %s to %s", p.Name(), give, target.Name()),
			}),
			Broadcast: true,
			Room:      p.Room,
		}
	}
	if give.Len() == 0 || !target.Hand.Has(give) {
		return tell(KindChat, p, fmt.Sprintf("%s no longer has %s to give", target.Name(), give))
	}

	r := c.room(p)
	target.Hand.Remove(give)
	p.Hand.AddAll(give)
	p.Hand.Sort(r.Rules.Rank())
	r.ClearSave()
	text := fmt.Sprintf("%s took %s from %s", p.Name(), give, target.Name())
	return c.table(KindExchange, p, text, text)
}

func (c *Controller) changeRoom(p *session.Player, arg string) Message {
	current := c.room(p)
	if arg == "" {
		return tell(KindRoom, p, fmt.Sprintf("In room %d playing %s", current.Number(), current.Rules.Info().Name))
	}
	index := toInt(arg) - 1
	if index == current.Index {
		return tell(KindRoom, p, fmt.Sprintf("already in room %d", current.Number()))
	}
	next, ok := c.dir.Room(index)
	if !ok {
		return tell(KindRoom, p, "invalid room")
	}

	c.dir.Move(p, index)
	if current.Save.SessionID == p.ID {
		current.ClearSave()
	}
	if current.Turn == p.ID {
		current.Turn = c.nextAfter(current, p.ID)
	}
	name := next.Rules.Info().Name
	turn := next.Turn
	return Message{
		Kind: KindRoom,
		Data: encode("players", playersPayload{
			Message:     fmt.Sprintf("%s entered room %d, %s", p.Name(), next.Number(), name),
			Players:     c.dir.PlayerList(next),
			Turn:        &turn,
			ClearHandID: p.ID,
			Game:        name,
		}),
		Broadcast: true,
		Room:      next.Index,
	}
}

func (c *Controller) shuffle(p *session.Player, arg string) Message {
	if strings.Contains(arg, "help") {
		return tell(KindShuffle, p, "deal")
	}
	if p.State == session.StateLurking {
		return tell(KindShuffle, p, "select your avatar!")
	}
	r := c.room(p)
	r.Deck.Shuffle()
	for _, next := range c.dir.InRoom(r.Index) {
		if next.State == session.StateDealt {
			next.State = session.StateJoined
		}
		next.Hand.Clear()
	}
	r.Turn = session.NoSession
	if seated := c.dir.Seated(r); len(seated) > 0 {
		r.Turn = seated[0].ID
	}
	r.ClearSave()
	return Message{Kind: KindShuffle, Data: encode("shuffle", "ready"), Broadcast: true, Room: r.Index}
}

func (c *Controller) skip(p *session.Player) Message {
	r := c.room(p)
	if p.State == session.StateDealt && r.Turn == p.ID {
		r.Turn = c.nextTurn(r)
		text := p.Name() + " skipped their turn"
		return Message{
			Kind:      KindSkip,
			Data:      c.cards(nil, r, text),
			Broadcast: true,
			Room:      r.Index,
			Notice:    text,
		}
	}
	return tell(KindSkip, p, p.Name()+" says hello")
}

// toInt reads the leading decimal number after optional spaces; anything
// else reads as 0.
func toInt(s string) int {
	s = strings.TrimLeft(s, " ")
	end := 0
	for end < len(s) && end < 9 && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

func plural(term string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, term)
	}
	return fmt.Sprintf("%d %ss", n, term)
}
