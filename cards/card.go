package cards

import (
	"fmt"
)

// Ranks run from 1 (ace) through 13 (king).
const (
	MinRank = 1
	MaxRank = 13
)

// NumCards is the number of distinct cards in a full deck.
const NumCards = NumSuits * MaxRank

// Card represents one card of a standard 52-card deck.
type Card struct {
	Rank uint8
	Suit Suit
}

// New returns the Card with the given rank and suit.
func New(rank uint8, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Index maps the Card to [0, NumCards): suits in deck order, then ranks.
func (c Card) Index() int {
	return int(c.Suit)*MaxRank + int(c.Rank) - MinRank
}

// FromIndex is the inverse of Card.Index.
func FromIndex(i int) Card {
	if i < 0 || i >= NumCards {
		panic(fmt.Errorf("card index %d out of range", i))
	}

	return Card{
		Rank: uint8(i%MaxRank + MinRank),
		Suit: Suit(i / MaxRank),
	}
}

// IsValid returns whether the rank is within [MinRank, MaxRank]
// and the suit is one of the four suits.
func (c Card) IsValid() bool {
	return c.Rank >= MinRank && c.Rank <= MaxRank && c.Suit < NumSuits
}

// String implements Stringer. Face cards print numerically, so the
// queen of hearts is "H12".
func (c Card) String() string {
	return fmt.Sprintf("%v%d", c.Suit, c.Rank)
}
