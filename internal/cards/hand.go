package cards

import (
	"encoding/json"
	"slices"
	"strings"
)

// Hand is an ordered multiset of cards. Order reflects play or sort order.
type Hand []Card

// Add appends a card.
func (h *Hand) Add(c Card) { *h = append(*h, c) }

// AddAll appends every card of o.
func (h *Hand) AddAll(o Hand) { *h = append(*h, o...) }

// Clear empties the hand. The backing array is released so earlier
// clones never alias later additions.
func (h *Hand) Clear() { *h = nil }

// Len is the number of cards.
func (h Hand) Len() int { return len(h) }

// HasEqual reports whether any card shares c's rank.
func (h Hand) HasEqual(c Card, rank Rank) bool {
	value := rank(c)
	for _, next := range h {
		if rank(next) == value {
			return true
		}
	}
	return false
}

// HasHigher reports whether at least minCount cards of a single rank all
// strictly outrank c.
func (h Hand) HasHigher(c Card, minCount int, rank Rank) bool {
	value := rank(c)
	counts := make(map[int]int)
	for _, next := range h {
		if r := rank(next); r > value {
			counts[r]++
		}
	}
	for _, n := range counts {
		if n >= minCount {
			return true
		}
	}
	return false
}

// Has reports whether every card of o is in h, counting duplicates.
func (h Hand) Has(o Hand) bool {
	need := make(map[Card]int, len(o))
	for _, c := range o {
		need[c]++
	}
	for _, c := range h {
		if need[c] > 0 {
			need[c]--
		}
	}
	for _, n := range need {
		if n > 0 {
			return false
		}
	}
	return true
}

// IsEqual reports whether every card shares c's rank.
func (h Hand) IsEqual(c Card, rank Rank) bool {
	value := rank(c)
	for _, next := range h {
		if rank(next) != value {
			return false
		}
	}
	return true
}

// Peek returns the last card. The hand must not be empty.
func (h Hand) Peek() Card { return h[len(h)-1] }

// Pop removes and returns the last card. The hand must not be empty.
func (h *Hand) Pop() Card {
	old := *h
	c := old[len(old)-1]
	*h = old[:len(old)-1]
	return c
}

// Remove drops every card that appears in o.
func (h *Hand) Remove(o Hand) {
	kept := make(Hand, 0, len(*h))
	for _, c := range *h {
		if !slices.Contains(o, c) {
			kept = append(kept, c)
		}
	}
	*h = kept
}

// Sort orders the hand by rank, then card identity.
func (h Hand) Sort(rank Rank) {
	slices.SortFunc(h, func(a, b Card) int {
		switch {
		case less(a, b, rank):
			return -1
		case less(b, a, rank):
			return 1
		}
		return 0
	})
}

// Swap exchanges the cards at i and j.
func (h Hand) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Clone returns an independent copy.
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	return slices.Clone(h)
}

// String joins the card codes with spaces, or "empty!" for no cards.
func (h Hand) String() string {
	if len(h) == 0 {
		return "empty!"
	}
	codes := make([]string, len(h))
	for i, c := range h {
		codes[i] = c.String()
	}
	return strings.Join(codes, " ")
}

// MarshalJSON renders the hand as an array of card codes. An empty hand is
// [] rather than null.
func (h Hand) MarshalJSON() ([]byte, error) {
	codes := make([]string, len(h))
	for i, c := range h {
		codes[i] = c.String()
	}
	return json.Marshal(codes)
}

// UnmarshalJSON accepts an array of card codes; unknown codes are skipped.
func (h *Hand) UnmarshalJSON(data []byte) error {
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	*h = fromCodes(codes)
	return nil
}

func fromCodes(codes []string) Hand {
	var h Hand
	for _, code := range codes {
		if c, ok := Parse(code); ok {
			h.Add(c)
		}
	}
	return h
}
