package cards

import "math/rand/v2"

// Deck is a draw pack and a discard pile. After Shuffle the pack, the
// discard pile and every hand dealt from this deck partition the 52 cards.
type Deck struct {
	pack     Hand
	discard  Hand
	last     Card
	hasLast  bool
	lastSize int
	rng      *rand.Rand
}

// NewDeck returns an empty deck. rng drives Shuffle; nil uses the global
// source.
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{rng: rng}
}

// Shuffle refills the pack with all 52 cards in random order and empties
// the discard pile.
func (d *Deck) Shuffle() {
	d.discard = nil
	d.hasLast = false
	d.lastSize = 0
	d.pack = make(Hand, 0, NumCards)
	for c := Card(0); c < NumCards; c++ {
		d.pack.Add(c)
	}
	for i := len(d.pack) - 1; i > 0; i-- {
		d.pack.Swap(d.intN(i+1), i)
	}
}

func (d *Deck) intN(n int) int {
	if d.rng == nil {
		return rand.IntN(n)
	}
	return d.rng.IntN(n)
}

// Deal replaces the hand with up to n cards from the pack. A single card
// left over in the pack is dealt as well.
func (d *Deck) Deal(hand *Hand, n int) {
	hand.Clear()
	for i := 0; i < n && len(d.pack) > 0; i++ {
		hand.Add(d.pack.Pop())
	}
	if len(d.pack) == 1 {
		hand.Add(d.pack.Pop())
	}
}

// Pickup moves up to n cards from the pack into hand and returns them.
func (d *Deck) Pickup(hand *Hand, n int) Hand {
	var picked Hand
	for i := 0; i < n && len(d.pack) > 0; i++ {
		c := d.pack.Pop()
		picked.Add(c)
		hand.Add(c)
	}
	return picked
}

// Putdown adds the played cards to the discard pile.
func (d *Deck) Putdown(hand Hand) {
	if len(hand) == 0 {
		return
	}
	d.discard.AddAll(hand)
	d.last = d.discard.Peek()
	d.hasLast = true
	d.lastSize = len(hand)
}

// TakeDiscard moves the whole discard pile into hand.
func (d *Deck) TakeDiscard(hand *Hand) {
	hand.AddAll(d.discard)
	d.discard = nil
	d.hasLast = false
	d.lastSize = 0
}

// ClearDiscard throws the discard pile away. The last play is kept so the
// size of the clearing play stays known.
func (d *Deck) ClearDiscard() { d.discard = nil }

// Discard is the discard pile, oldest card first. Callers must not modify it.
func (d *Deck) Discard() Hand { return d.discard }

// DiscardSize is the number of cards on the discard pile.
func (d *Deck) DiscardSize() int { return len(d.discard) }

// PackSize is the number of undrawn cards.
func (d *Deck) PackSize() int { return len(d.pack) }

// Pack is the draw pile, next card last. Callers must not modify it.
func (d *Deck) Pack() Hand { return d.pack }

// LastPlay is the top card of the most recent play.
func (d *Deck) LastPlay() (Card, bool) { return d.last, d.hasLast }

// LastSize is the number of cards in the most recent play.
func (d *Deck) LastSize() int { return d.lastSize }

// Clone returns an independent copy sharing the random source.
func (d *Deck) Clone() *Deck {
	cp := *d
	cp.pack = d.pack.Clone()
	cp.discard = d.discard.Clone()
	return &cp
}
