package freeplay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kibitzer/internal/cards"
)

func hand(codes ...string) cards.Hand {
	var h cards.Hand
	for _, code := range codes {
		h.Add(cards.MustParse(code))
	}
	return h
}

func TestCanPlay(t *testing.T) {
	r := Rules{}
	deck := cards.NewDeck(nil)

	assert.False(t, r.CanPlay(deck, nil), "empty hand")
	assert.True(t, r.CanPlay(deck, hand("2C")), "anything on an empty pile")

	deck.Putdown(hand("QH"))
	assert.True(t, r.CanPlay(deck, hand("2C", "KD")))
	assert.False(t, r.CanPlay(deck, hand("2C", "QS")))
}

func TestPolicy(t *testing.T) {
	r := Rules{}
	deck := cards.NewDeck(nil)
	deck.Putdown(hand("AS"))

	assert.True(t, r.IsValidPlay(deck, hand("3C")))
	assert.False(t, r.IsValidPlay(deck, nil))
	assert.False(t, r.IsWinningPlay(deck, nil))
	assert.False(t, r.ClearDiscard(hand("3C", "3D", "3H", "3S")))
	assert.True(t, r.SetNextTurn(hand("3C")))
	assert.False(t, r.NoPlayTakesDiscard())
	assert.True(t, r.CanRevoke())
	assert.Equal(t, 7, r.HandSize(2))
	assert.Equal(t, 7, r.HandSize(6))
	assert.Equal(t, ID, r.Info().ID)
}
