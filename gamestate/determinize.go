package gamestate

import (
	"expvar"
	"math"
	"math/big"
	"math/rand"
	"sort"

	"github.com/golang/glog"

	"github.com/timpalpant/ismcts/cards"
)

var (
	determinizations = expvar.NewInt("determinize/samples")
	voidFallbacks    = expvar.NewInt("determinize/void_fallbacks")
)

// Number of shuffles to try before giving up on dealing consistently
// with known voids.
const maxDealAttempts = 16

// Determinize samples one full GameState consistent with everything the
// observer knows: its own hand, the cards in play, cards pinned to other
// players, each player's hand size and the suits each player is void in.
//
// If no void-consistent deal is found after a number of attempts, the
// voids are ignored for this sample. Determinize never fails.
func (ks *KnownState) Determinize(rng *rand.Rand) *GameState {
	for attempt := 0; attempt < maxDealAttempts; attempt++ {
		if gs, ok := ks.deal(rng, true); ok {
			return gs
		}
	}

	voidFallbacks.Add(1)
	glog.V(3).Infof("No void-consistent deal after %d attempts, dealing uniformly: %v",
		maxDealAttempts, ks)
	gs, _ := ks.deal(rng, false)
	return gs
}

// DeterminizeUniform samples one full GameState consistent with the
// observer's hand, the cards in play, pinned cards and hand sizes,
// without regard to inferred voids.
func (ks *KnownState) DeterminizeUniform(rng *rand.Rand) *GameState {
	gs, _ := ks.deal(rng, false)
	return gs
}

// playOrder returns the players who still need unknown cards, starting
// from the player to move and excluding the observer. Players who have
// already contributed to the current trick come last and hold one card
// fewer than those yet to act.
func (ks *KnownState) playOrder(capacity []int) []Player {
	n := ks.NumPlayers()
	order := make([]Player, 0, n)
	for i := 0; i < n; i++ {
		p := ks.Turn.Next(n, i)
		if p != ks.Observer && capacity[p] > 0 {
			order = append(order, p)
		}
	}
	return order
}

func (ks *KnownState) deal(rng *rand.Rand, respectVoids bool) (*GameState, bool) {
	determinizations.Add(1)
	n := ks.NumPlayers()
	pool := allocCardSlice()
	defer func() { freeCardSlice(pool) }()
	ks.Unknown().Iter(func(card cards.Card) {
		pool = append(pool, card)
	})
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	hands := make([]cards.Set, n)
	capacity := make([]int, n)
	for p := range hands {
		if Player(p) == ks.Observer {
			hands[p] = ks.Hand
			continue
		}

		hands[p] = ks.Pinned[p]
		capacity[p] = ks.HandSizes[p] - ks.Pinned[p].Len()
	}

	order := ks.playOrder(capacity)
	if respectVoids {
		sortByConstraint(pool, order, ks.Voids)
	}

	cursor := 0
	if respectVoids && len(order) > 0 {
		// Retries start from a different player.
		cursor = rng.Intn(len(order))
	}
	for _, card := range pool {
		if len(order) == 0 {
			// More unknown cards than the hand sizes allow for: spread
			// the remainder over all opponents.
			for p := range capacity {
				capacity[p] = math.MaxInt32
			}
			order = ks.playOrder(capacity)
			respectVoids = false
			cursor = 0
		}

		i := cursor
		if respectVoids {
			found := false
			for k := 0; k < len(order); k++ {
				j := (cursor + k) % len(order)
				if !ks.Voids[order[j]].Contains(card.Suit) {
					i, found = j, true
					break
				}
			}

			if !found {
				return nil, false
			}
		}

		p := order[i]
		hands[p].Add(card)
		capacity[p]--
		if capacity[p] == 0 {
			order = append(order[:i], order[i+1:]...)
		} else {
			i++
		}

		if len(order) > 0 {
			cursor = i % len(order)
		}
	}

	gs := &GameState{
		Public: ks.Public.Clone(),
		Hands:  hands,
	}
	for p, hand := range hands {
		gs.HandSizes[p] = hand.Len()
	}

	return gs, true
}

// sortByConstraint orders the pool so that cards of suits that fewer
// players can hold are dealt first. The sort is stable so the shuffled
// order is preserved within each suit.
func sortByConstraint(pool []cards.Card, order []Player, voids []cards.SuitSet) {
	var eligible [cards.NumSuits]int
	for _, suit := range cards.Suits {
		for _, p := range order {
			if !voids[p].Contains(suit) {
				eligible[suit]++
			}
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return eligible[pool[i].Suit] < eligible[pool[j].Suit]
	})
}

// NumDeterminizations returns the number of distinct deals of the unknown
// cards to the other players consistent with their hand sizes, ignoring
// voids. It measures the size of the observer's information set.
func (ks *KnownState) NumDeterminizations() *big.Int {
	result := factorial(ks.Unknown().Len())
	for p := 0; p < ks.NumPlayers(); p++ {
		if Player(p) == ks.Observer {
			continue
		}

		k := ks.HandSizes[p] - ks.Pinned[p].Len()
		if k > 0 {
			result.Div(result, factorial(k))
		}
	}
	return result
}

func factorial(k int) *big.Int {
	return new(big.Int).MulRange(1, int64(k))
}
