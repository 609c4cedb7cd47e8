package cards

import (
	"fmt"
	"math/bits"
	"strings"
)

// Set represents an unordered set of distinct cards.
//
// Each of the 52 cards is one bit of a uint64, at position Card.Index().
// Sets are values: copying a Set copies its contents.
type Set uint64

func NewSet() Set {
	return Set(0)
}

// NewSetFromCards creates a new Set from the given slice of Cards.
func NewSetFromCards(cards []Card) Set {
	result := Set(0)
	for _, card := range cards {
		result.Add(card)
	}

	return result
}

func bit(card Card) Set {
	return Set(1) << uint(card.Index())
}

// IsEmpty returns whether this Set contains any Cards.
func (s Set) IsEmpty() bool {
	return s == 0
}

// Contains returns whether the given Card is in the Set.
func (s Set) Contains(card Card) bool {
	return s&bit(card) != 0
}

// Len gets the total number of Cards in the Set.
func (s Set) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Iter calls cb for each Card in the Set in ascending index order.
func (s Set) Iter(cb func(card Card)) {
	for s != 0 {
		i := bits.TrailingZeros64(uint64(s))
		cb(FromIndex(i))
		s &= s - 1
	}
}

// AsSlice returns the Cards in the Set in ascending index order.
func (s Set) AsSlice() []Card {
	result := make([]Card, 0, s.Len())
	s.Iter(func(card Card) {
		result = append(result, card)
	})
	return result
}

// OfSuit returns the subset of Cards with the given Suit.
func (s Set) OfSuit(suit Suit) Set {
	suitMask := Set(1<<MaxRank-1) << (uint(suit) * MaxRank)
	return s & suitMask
}

// Union returns the Cards in either s or other.
func (s Set) Union(other Set) Set {
	return s | other
}

// Intersect returns the Cards in both s and other.
func (s Set) Intersect(other Set) Set {
	return s & other
}

// Minus returns the Cards in s that are not in other.
func (s Set) Minus(other Set) Set {
	return s &^ other
}

// Add includes the given Card in the Set.
// Add panics if the card is already present.
func (s *Set) Add(card Card) {
	if s.Contains(card) {
		panic(fmt.Errorf("card %v already in set", card))
	}

	*s |= bit(card)
}

// Remove removes the given Card from the Set.
// Remove panics if the card is not present in the Set.
func (s *Set) Remove(card Card) {
	if !s.Contains(card) {
		panic(fmt.Errorf("card %v not in set", card))
	}

	*s &^= bit(card)
}

// AddAll adds the given cards to the Set.
// AddAll panics if any of the cards are already present.
func (s *Set) AddAll(cards Set) {
	if overlap := *s & cards; overlap != 0 {
		panic(fmt.Errorf("cards %v already in set", overlap))
	}

	*s |= cards
}

// RemoveAll removes the given cards from the set.
// RemoveAll panics if the cards are not present to be removed.
func (s *Set) RemoveAll(cards Set) {
	if missing := cards &^ *s; missing != 0 {
		panic(fmt.Errorf("cannot remove %v from set %v", missing, *s))
	}

	*s &^= cards
}

// String implements Stringer.
func (s Set) String() string {
	result := make([]string, 0, s.Len())
	s.Iter(func(card Card) {
		result = append(result, card.String())
	})

	return "{" + strings.Join(result, ", ") + "}"
}
