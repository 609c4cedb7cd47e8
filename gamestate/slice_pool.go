package gamestate

import (
	"sync"

	"github.com/timpalpant/ismcts/cards"
)

var cardSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]cards.Card, 0, cards.NumCards)
	},
}

func allocCardSlice() []cards.Card {
	return cardSlicePool.Get().([]cards.Card)
}

func freeCardSlice(s []cards.Card) {
	if cap(s) > 0 {
		cardSlicePool.Put(s[:0])
	}
}
