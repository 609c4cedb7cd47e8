package cards

// FullDeck is the Set of all 52 cards.
var FullDeck = NewSetFromCards(NewDeck())

// NewDeck returns the 52 cards of a standard deck: 13 of each suit,
// in suit order, ranks ascending.
func NewDeck() []Card {
	deck := make([]Card, 0, NumCards)
	for _, suit := range Suits {
		for rank := uint8(MinRank); rank <= MaxRank; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}

	return deck
}
