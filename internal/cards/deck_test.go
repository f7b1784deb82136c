package cards

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeck(seed uint64) *Deck {
	d := NewDeck(rand.New(rand.NewPCG(seed, seed+1)))
	d.Shuffle()
	return d
}

// requireUniverse checks that the given piles hold every card exactly once.
func requireUniverse(t *testing.T, piles ...Hand) {
	t.Helper()
	counts := make(map[Card]int)
	total := 0
	for _, p := range piles {
		for _, c := range p {
			counts[c]++
			total++
		}
	}
	require.Equal(t, NumCards, total)
	for c := Card(0); c < NumCards; c++ {
		require.Equal(t, 1, counts[c], "card %s", c)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		d := newTestDeck(seed)
		assert.Equal(t, 0, d.DiscardSize())
		requireUniverse(t, d.Pack(), d.Discard())
	}
}

func TestShuffleResetsDiscard(t *testing.T) {
	d := newTestDeck(1)
	var h Hand
	d.Deal(&h, 5)
	d.Putdown(h)
	require.Equal(t, 5, d.DiscardSize())

	d.Shuffle()
	assert.Equal(t, 0, d.DiscardSize())
	assert.Equal(t, NumCards, d.PackSize())
	_, ok := d.LastPlay()
	assert.False(t, ok)
	assert.Equal(t, 0, d.LastSize())
}

func TestShuffleMixes(t *testing.T) {
	d := newTestDeck(7)
	ordered := true
	for i, c := range d.Pack() {
		if int(c) != i {
			ordered = false
			break
		}
	}
	assert.False(t, ordered)
}

func TestDealStopsAtPackAndTakesStragglers(t *testing.T) {
	d := newTestDeck(2)
	var a, b, c Hand
	d.Deal(&a, 17)
	d.Deal(&b, 17)
	assert.Equal(t, 18, d.PackSize())

	// 17 leaves a single card, which is dealt too
	d.Deal(&c, 17)
	assert.Equal(t, 18, c.Len())
	assert.Equal(t, 0, d.PackSize())
	requireUniverse(t, a, b, c)

	var empty Hand
	d.Deal(&empty, 5)
	assert.Equal(t, 0, empty.Len())
}

func TestDealClearsHand(t *testing.T) {
	d := newTestDeck(3)
	h := hand("AS")
	d.Deal(&h, 0)
	assert.Equal(t, 0, h.Len())
}

func TestPickup(t *testing.T) {
	d := newTestDeck(4)
	var h Hand
	d.Deal(&h, 50)
	require.Equal(t, 2, d.PackSize())

	picked := d.Pickup(&h, 5)
	assert.Equal(t, 2, picked.Len())
	assert.Equal(t, 52, h.Len())
	assert.Equal(t, 0, d.PackSize())
}

func TestPutdownAndTakeDiscard(t *testing.T) {
	d := newTestDeck(5)
	var a, b Hand
	d.Deal(&a, 10)
	d.Deal(&b, 10)

	play := Hand{a[0], a[1]}
	a.Remove(play)
	d.Putdown(play)

	last, ok := d.LastPlay()
	require.True(t, ok)
	assert.Equal(t, play[1], last)
	assert.Equal(t, 2, d.LastSize())
	requireUniverse(t, a, b, d.Pack(), d.Discard())

	d.TakeDiscard(&b)
	assert.Equal(t, 12, b.Len())
	assert.Equal(t, 0, d.DiscardSize())
	assert.Equal(t, 0, d.LastSize())
	requireUniverse(t, a, b, d.Pack(), d.Discard())
}

func TestConservationUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	d := newTestDeck(11)
	hands := make([]Hand, 4)
	for i := range hands {
		d.Deal(&hands[i], 7)
	}
	for step := 0; step < 200; step++ {
		h := &hands[rng.IntN(len(hands))]
		switch rng.IntN(3) {
		case 0:
			d.Pickup(h, 1+rng.IntN(3))
		case 1:
			if h.Len() > 0 {
				play := Hand{(*h)[rng.IntN(h.Len())]}
				h.Remove(play)
				d.Putdown(play)
			}
		case 2:
			d.TakeDiscard(h)
		}
		requireUniverse(t, append([]Hand{d.Pack(), d.Discard()}, hands...)...)
	}
}

func TestClonedDeckIsIndependent(t *testing.T) {
	d := newTestDeck(6)
	snapshot := d.Clone()
	var h Hand
	d.Pickup(&h, 3)
	d.Putdown(h)

	assert.Equal(t, NumCards, snapshot.PackSize())
	assert.Equal(t, 0, snapshot.DiscardSize())
}
