package cards

import (
	"fmt"
	"strings"
)

const (
	bitsPerCard   uint = 6
	stackCardMask      = Stack(1<<bitsPerCard) - 1
	// MaxStackLen is the number of cards a Stack can hold.
	MaxStackLen = int(64 / bitsPerCard)
)

// Stack represents an ordered pile of cards, such as the cards played
// to the current trick.
//
// Each card occupies 6 bits holding Card.Index()+1, so that an empty
// position is zero. The first card in the pile is the lowest order
// position. Up to 10 cards fit in a single uint64, more than enough
// for one trick among six players.
type Stack uint64

func assertWithinRange(n int) {
	if n < 0 || n >= MaxStackLen {
		panic(fmt.Errorf("card position %d is out of range for Stack", n))
	}
}

// NewStack creates a new Stack from the given slice of Cards.
func NewStack(cards []Card) Stack {
	result := Stack(0)
	for _, card := range cards {
		result.Push(card)
	}
	return result
}

// Len returns the number of cards in the Stack.
func (s Stack) Len() int {
	n := 0
	for s != 0 {
		n++
		s >>= bitsPerCard
	}
	return n
}

// NthCard returns the card in the Nth position of the stack.
func (s Stack) NthCard(n int) Card {
	assertWithinRange(n)
	shift := uint(n) * bitsPerCard
	encoded := int((s >> shift) & stackCardMask)
	if encoded == 0 {
		panic(fmt.Errorf("no card at position %d of %v", n, s))
	}

	return FromIndex(encoded - 1)
}

// Push places the given card after the last card in the Stack.
func (s *Stack) Push(card Card) {
	n := s.Len()
	assertWithinRange(n)
	shift := uint(n) * bitsPerCard
	*s |= Stack(card.Index()+1) << shift
}

// AsSlice returns the cards in the Stack in order.
func (s Stack) AsSlice() []Card {
	result := make([]Card, 0, s.Len())
	for ; s != 0; s >>= bitsPerCard {
		result = append(result, FromIndex(int(s&stackCardMask)-1))
	}
	return result
}

// ToSet returns the unordered Set of cards in the Stack.
func (s Stack) ToSet() Set {
	return NewSetFromCards(s.AsSlice())
}

// String implements Stringer.
func (s Stack) String() string {
	cards := make([]string, 0)
	for _, card := range s.AsSlice() {
		cards = append(cards, card.String())
	}

	return "[" + strings.Join(cards, " ") + "]"
}
