// Package cards models the 52-card deck shared by every rule variant.
package cards

import "fmt"

// NumCards is the size of the card universe.
const NumCards = 52

const (
	faceCodes = "23456789XJQKA"
	suitCodes = "CSHD"
)

// Card is one of the 52 symbols. Cards are ordered by face value (2 first,
// ace last) then suit (clubs, spades, hearts, diamonds); that order is the
// identity tie-break used when sorting by a Rank.
type Card uint8

// New returns the card for a face index (0 = "2" .. 12 = ace) and a suit
// index (0 = clubs, 1 = spades, 2 = hearts, 3 = diamonds).
func New(face, suit int) Card {
	return Card(face*len(suitCodes) + suit)
}

// Face is the face index, 0 for a two through 12 for an ace.
func (c Card) Face() int { return int(c) / len(suitCodes) }

// Suit is the suit index.
func (c Card) Suit() int { return int(c) % len(suitCodes) }

// Valid reports whether c is one of the 52 symbols.
func (c Card) Valid() bool { return int(c) < NumCards }

// String returns the two character wire code, rank then suit, e.g. "XH".
func (c Card) String() string {
	if !c.Valid() {
		return "XX"
	}
	return string([]byte{faceCodes[c.Face()], suitCodes[c.Suit()]})
}

// Parse decodes a two character card code.
func Parse(code string) (Card, bool) {
	if len(code) != 2 {
		return 0, false
	}
	face, suit := -1, -1
	for i := 0; i < len(faceCodes); i++ {
		if faceCodes[i] == code[0] {
			face = i
		}
	}
	for i := 0; i < len(suitCodes); i++ {
		if suitCodes[i] == code[1] {
			suit = i
		}
	}
	if face < 0 || suit < 0 {
		return 0, false
	}
	return New(face, suit), true
}

// MustParse is Parse for codes known at compile time.
func MustParse(code string) Card {
	c, ok := Parse(code)
	if !ok {
		panic(fmt.Sprintf("cards: bad card code %q", code))
	}
	return c
}

// Rank maps a card to its value under one game's ordering. Cards of the
// same rank are interchangeable for legality checks.
type Rank func(Card) int

// AceHigh ranks 2 lowest through ace highest.
func AceHigh(c Card) int { return c.Face() }

// TwoHigh ranks 3 lowest, then up to ace, with 2 above everything.
func TwoHigh(c Card) int { return (c.Face() + len(faceCodes) - 1) % len(faceCodes) }

// less orders by rank, then by card identity.
func less(a, b Card, rank Rank) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}
