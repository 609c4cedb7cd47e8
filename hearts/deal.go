package hearts

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/timpalpant/ismcts/cards"
	"github.com/timpalpant/ismcts/gamestate"
)

// Removed returns the cards set aside so that the deck divides evenly
// among numPlayers: the 52 mod numPlayers lowest clubs.
func Removed(numPlayers int) cards.Set {
	result := cards.NewSet()
	for i := 0; i < cards.NumCards%numPlayers; i++ {
		result.Add(cards.New(uint8(2+i), cards.Club))
	}
	return result
}

// lowestClub returns the lowest club remaining after the removal,
// whose holder leads the first trick.
func lowestClub(numPlayers int) cards.Card {
	return cards.New(uint8(2+cards.NumCards%numPlayers), cards.Club)
}

// Deal shuffles the deck and deals it out to numPlayers.
func Deal(numPlayers int, rng *rand.Rand) *gamestate.GameState {
	if numPlayers < gamestate.MinPlayers || numPlayers > gamestate.MaxPlayers {
		panic(fmt.Errorf("cannot deal to %d players", numPlayers))
	}

	removed := Removed(numPlayers)
	deck := make([]cards.Card, 0, cards.NumCards)
	for _, card := range cards.NewDeck() {
		if !removed.Contains(card) {
			deck = append(deck, card)
		}
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	hands := make([]cards.Set, numPlayers)
	leader := gamestate.Player(0)
	for i, card := range deck {
		p := i % numPlayers
		hands[p].Add(card)
		if card == lowestClub(numPlayers) {
			leader = gamestate.Player(p)
		}
	}

	return gamestate.New(hands, leader)
}

// Position describes a game in progress from one player's seat.
type Position struct {
	NumPlayers int
	Seat       gamestate.Player
	Hand       cards.Set
	// Cards played to the current trick, in play order.
	Trick []cards.Card
	// Cards from completed tricks. The removed clubs need not be included.
	Played cards.Set
	Voids  []cards.SuitSet
	// Cards won in tricks by each player, if known. Used for scoring.
	Taken []cards.Set
}

// KnownState returns the observer's view of the position.
// Hand sizes are derived from the observer's hand: players who have
// already played to the current trick hold one card fewer.
func (pos *Position) KnownState() (*gamestate.KnownState, error) {
	n := pos.NumPlayers
	if n < gamestate.MinPlayers || n > gamestate.MaxPlayers {
		return nil, errors.Errorf("invalid number of players: %d", n)
	}
	if int(pos.Seat) >= n {
		return nil, errors.Errorf("seat %d out of range for %d players", pos.Seat, n)
	}
	if len(pos.Trick) >= n {
		return nil, errors.Errorf("trick has %d cards for %d players", len(pos.Trick), n)
	}

	leader := pos.Seat.Next(n, n-len(pos.Trick))
	handSizes := make([]int, n)
	for i := range handSizes {
		handSizes[i] = pos.Hand.Len()
	}
	for i := range pos.Trick {
		handSizes[leader.Next(n, i)]--
	}

	outOfPlay := pos.Played.Union(Removed(n))
	ks := gamestate.NewKnownState(pos.Seat, pos.Hand, handSizes, outOfPlay, leader)
	ks.Trick = cards.NewStack(pos.Trick)
	ks.Turn = pos.Seat
	for i, voids := range pos.Voids {
		if i < n {
			ks.Voids[i] = voids
		}
	}
	for i, taken := range pos.Taken {
		if i < n {
			ks.Taken[i] = taken
		}
	}

	if err := ks.Validate(); err != nil {
		return nil, errors.Wrap(err, "inconsistent position")
	}

	return ks, nil
}
