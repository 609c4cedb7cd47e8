package cards

import (
	"strings"
)

// Suit is one of the four suits of a standard deck.
type Suit uint8

const (
	Diamond Suit = iota
	Heart
	Spade
	Club
)

// NumSuits is the number of distinct Suits.
const NumSuits = 4

var suitLetters = [...]byte{'D', 'H', 'S', 'C'}

var suitNames = [...]string{
	"Diamond",
	"Heart",
	"Spade",
	"Club",
}

// Suits lists all suits in deck order.
var Suits = [NumSuits]Suit{Diamond, Heart, Spade, Club}

// String implements Stringer.
func (s Suit) String() string {
	return string(suitLetters[s])
}

// Name returns the long form of the suit, e.g. "Heart".
func (s Suit) Name() string {
	return suitNames[s]
}

func suitFromLetter(b byte) (Suit, bool) {
	for i, letter := range suitLetters {
		if letter == b {
			return Suit(i), true
		}
	}

	return 0, false
}

// SuitSet is a set of suits, e.g. the suits a player is known to be void in.
type SuitSet uint8

// Add includes the given Suit in the set.
func (ss *SuitSet) Add(s Suit) {
	*ss |= 1 << s
}

// Contains returns whether the given Suit is in the set.
func (ss SuitSet) Contains(s Suit) bool {
	return ss&(1<<s) != 0
}

// Len returns the number of suits in the set.
func (ss SuitSet) Len() int {
	n := 0
	for _, s := range Suits {
		if ss.Contains(s) {
			n++
		}
	}
	return n
}

// String implements Stringer.
func (ss SuitSet) String() string {
	var sb strings.Builder
	for _, s := range Suits {
		if ss.Contains(s) {
			sb.WriteByte(suitLetters[s])
		}
	}
	return "{" + sb.String() + "}"
}

// ParseSuitSet parses a run of suit letters, e.g. "HS".
func ParseSuitSet(s string) (SuitSet, error) {
	var result SuitSet
	for i := 0; i < len(s); i++ {
		suit, ok := suitFromLetter(s[i])
		if !ok {
			return 0, errorf(ErrInvalidSuit, s, "unrecognized suit letter %q", s[i:i+1])
		}
		result.Add(suit)
	}
	return result, nil
}
