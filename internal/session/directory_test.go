package session

import (
	"testing"

	"kibitzer/internal/cards"
	"kibitzer/internal/game/freeplay"
	"kibitzer/internal/game/warlords"
)

func setupDirectory(t *testing.T, players int) *Directory {
	t.Helper()
	rooms := []*Room{
		NewRoom(0, warlords.Rules{}, 3, nil),
		NewRoom(1, freeplay.Rules{}, 3, nil),
	}
	d := NewDirectory(rooms)
	for id := 1; id <= players; id++ {
		d.Add(NewPlayer(id))
	}
	return d
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(7)
	if p.Nic != "#7" || p.Name() != "(#7)" {
		t.Fatalf("unexpected nic %q name %q", p.Nic, p.Name())
	}
	if p.Slot != NoSession || p.State != StateLurking || p.Active() {
		t.Fatalf("expected unseated lurker, got %+v", p)
	}
}

func TestDirectoryKeepsConnectionOrder(t *testing.T) {
	d := setupDirectory(t, 4)
	d.Remove(2)

	var ids []int
	for _, p := range d.Players() {
		ids = append(ids, p.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 4 {
		t.Fatalf("expected [1 3 4], got %v", ids)
	}
	if _, ok := d.Get(2); ok {
		t.Fatal("removed player still found")
	}
	if _, ok := d.Remove(2); ok {
		t.Fatal("second remove should report missing")
	}
}

func TestSeatAndUnseat(t *testing.T) {
	d := setupDirectory(t, 2)
	room, _ := d.Room(0)
	alice, _ := d.Get(1)
	bob, _ := d.Get(2)

	if !d.Seat(alice, 1) {
		t.Fatal("expected seat")
	}
	if alice.State != StateJoined || alice.Slot != 1 || !alice.Active() {
		t.Fatalf("unexpected player after seat: %+v", alice)
	}
	if d.Seat(bob, 1) {
		t.Fatal("seat is taken")
	}
	if d.Seat(bob, 3) || d.Seat(bob, -1) {
		t.Fatal("seat out of range")
	}

	d.Remove(alice.ID)
	if room.Slots[1] != NoSession {
		t.Fatalf("expected slot freed, got %d", room.Slots[1])
	}
	if !d.Seat(bob, 1) {
		t.Fatal("expected freed seat to be available")
	}
}

func TestStaleSlotSelfHeals(t *testing.T) {
	d := setupDirectory(t, 1)
	room, _ := d.Room(0)
	room.Slots[2] = 99

	list := d.PlayerList(room)
	if list[2].SessionID != NoSession || list[2].Nic != "empty 3" {
		t.Fatalf("expected empty seat, got %+v", list[2])
	}
	if room.Slots[2] != NoSession {
		t.Fatal("stale slot was not cleared")
	}
}

func TestSeatedInSlotOrder(t *testing.T) {
	d := setupDirectory(t, 3)
	room, _ := d.Room(0)
	for id, slot := range map[int]int{1: 2, 2: 0, 3: 1} {
		p, _ := d.Get(id)
		d.Seat(p, slot)
	}
	seated := d.Seated(room)
	if len(seated) != 3 || seated[0].ID != 2 || seated[1].ID != 3 || seated[2].ID != 1 {
		t.Fatalf("unexpected seating order")
	}
}

func TestMoveResetsPlayer(t *testing.T) {
	d := setupDirectory(t, 1)
	p, _ := d.Get(1)
	d.Seat(p, 0)
	p.Points = 3
	p.Hand.Add(cards.MustParse("AS"))

	d.Move(p, 1)
	old, _ := d.Room(0)
	if old.Slots[0] != NoSession {
		t.Fatal("old seat not freed")
	}
	if p.Room != 1 || p.Slot != NoSession || p.State != StateLurking || p.Points != 0 || p.Hand.Len() != 0 {
		t.Fatalf("unexpected player after move: %+v", p)
	}
	if got := len(d.InRoom(1)); got != 1 {
		t.Fatalf("expected 1 player in room 2, got %d", got)
	}
}

func TestRevokeRestoresSnapshot(t *testing.T) {
	d := setupDirectory(t, 2)
	room, _ := d.Room(1)
	room.Deck.Shuffle()
	players := []*Player{}
	for _, id := range []int{1, 2} {
		p, _ := d.Get(id)
		d.Move(p, 1)
		d.Seat(p, id-1)
		room.Deck.Deal(&p.Hand, 5)
		players = append(players, p)
	}
	room.Turn = 1
	before := players[0].Hand.String()
	pack := room.Deck.PackSize()

	room.SaveFor(1, players)
	room.Deck.Pickup(&players[0].Hand, 2)
	room.Turn = 2

	if !room.Revoke(players) {
		t.Fatal("expected revoke")
	}
	if players[0].Hand.String() != before || room.Deck.PackSize() != pack || room.Turn != 1 {
		t.Fatal("snapshot not restored")
	}
	if room.Revoke(players) {
		t.Fatal("second revoke should fail")
	}
}
