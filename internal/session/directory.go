package session

import "slices"

// Directory owns every connected player, in connection order, and the
// fixed rooms. Connection order drives turn rotation.
type Directory struct {
	players []*Player
	byID    map[int]*Player
	rooms   []*Room
}

// NewDirectory creates a directory over preallocated rooms.
func NewDirectory(rooms []*Room) *Directory {
	return &Directory{
		byID:  make(map[int]*Player),
		rooms: rooms,
	}
}

// Add registers a new player.
func (d *Directory) Add(p *Player) {
	d.players = append(d.players, p)
	d.byID[p.ID] = p
}

// Get returns a player by session id.
func (d *Directory) Get(id int) (*Player, bool) {
	p, ok := d.byID[id]
	return p, ok
}

// Remove drops a player and frees their seat.
func (d *Directory) Remove(id int) (*Player, bool) {
	p, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	d.Unseat(p)
	delete(d.byID, id)
	d.players = slices.DeleteFunc(d.players, func(next *Player) bool { return next.ID == id })
	return p, true
}

// Len is the number of connected players.
func (d *Directory) Len() int { return len(d.players) }

// Players returns every player in connection order.
func (d *Directory) Players() []*Player { return d.players }

// InRoom returns the players in a room, seated or not, in connection order.
func (d *Directory) InRoom(room int) []*Player {
	var out []*Player
	for _, p := range d.players {
		if p.Room == room {
			out = append(out, p)
		}
	}
	return out
}

// Rooms returns the rooms in index order.
func (d *Directory) Rooms() []*Room { return d.rooms }

// Room returns a room by index.
func (d *Directory) Room(index int) (*Room, bool) {
	if index < 0 || index >= len(d.rooms) {
		return nil, false
	}
	return d.rooms[index], true
}

// Occupant returns the player in a seat. A seat naming a departed session
// is cleared and reported empty.
func (d *Directory) Occupant(room *Room, slot int) (*Player, bool) {
	if !room.ValidSlot(slot) {
		return nil, false
	}
	id := room.Slots[slot]
	if id == NoSession {
		return nil, false
	}
	p, ok := d.byID[id]
	if !ok || p.Room != room.Index {
		room.Slots[slot] = NoSession
		return nil, false
	}
	return p, true
}

// Seated returns the seated players in slot order.
func (d *Directory) Seated(room *Room) []*Player {
	var out []*Player
	for slot := range room.Slots {
		if p, ok := d.Occupant(room, slot); ok {
			out = append(out, p)
		}
	}
	return out
}

// Seat puts a player into an empty seat of their room.
func (d *Directory) Seat(p *Player, slot int) bool {
	room, ok := d.Room(p.Room)
	if !ok {
		return false
	}
	if _, taken := d.Occupant(room, slot); taken || !room.ValidSlot(slot) {
		return false
	}
	room.Slots[slot] = p.ID
	p.Slot = slot
	p.State = StateJoined
	return true
}

// Unseat frees the player's seat, if any.
func (d *Directory) Unseat(p *Player) {
	if room, ok := d.Room(p.Room); ok && room.ValidSlot(p.Slot) && room.Slots[p.Slot] == p.ID {
		room.Slots[p.Slot] = NoSession
	}
	p.Slot = NoSession
}

// Move takes a player to another room as a lurker with an empty hand and
// no points.
func (d *Directory) Move(p *Player, room int) {
	d.Unseat(p)
	p.Hand.Clear()
	p.Room = room
	p.State = StateLurking
	p.Points = 0
}

// PlayerList renders every seat of a room.
func (d *Directory) PlayerList(room *Room) []PlayerEntry {
	out := make([]PlayerEntry, len(room.Slots))
	for slot := range room.Slots {
		if p, ok := d.Occupant(room, slot); ok {
			out[slot] = p.entry()
		} else {
			out[slot] = emptyEntry(slot)
		}
	}
	return out
}
