package gamestate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timpalpant/ismcts/cards"
)

func TestNewKnownState(t *testing.T) {
	hand := mustParseSet(t, "H2 H13 C4")
	ks := NewKnownState(0, hand, []int{3, 3, 3}, cards.FullDeck.Minus(hand).Minus(mustParseSet(t, "D1 D2 D3 D4 D5 D6")), 0)
	require.NoError(t, ks.Validate())
	require.Equal(t, 6, ks.Unknown().Len())
	require.Equal(t, hand, ks.PossibleHoldings(0))
	require.Equal(t, ks.Unknown(), ks.PossibleHoldings(1))

	// Opponents must hold exactly the unknown cards.
	bad := NewKnownState(0, hand, []int{3, 3, 2}, cards.FullDeck.Minus(hand).Minus(mustParseSet(t, "D1 D2 D3 D4 D5 D6")), 0)
	require.Error(t, bad.Validate())
}

func TestKnownStateMatchesGameState(t *testing.T) {
	rules := followSuitRules{}
	rng := rand.New(rand.NewSource(42))
	for n := MinPlayers; n <= MaxPlayers; n++ {
		gs := randomDeal(n, rng)
		views := make([]*KnownState, n)
		for p := range views {
			views[p] = gs.KnownState(Player(p))
		}

		for !rules.IsTerminal(&gs.Public) {
			moves := rules.LegalMoves(gs)
			m := moves[rng.Intn(len(moves))]
			gs.Apply(rules, m)
			for p, ks := range views {
				ks.Apply(rules, m)
				require.NoError(t, ks.Validate())
				require.Equal(t, gs.Hands[p], ks.Hand)
				require.Equal(t, gs.KnownState(Player(p)), ks)
			}
		}
	}
}

func TestKnownStateApplyMovesPinnedCards(t *testing.T) {
	rules := followSuitRules{}
	gs := New([]cards.Set{
		mustParseSet(t, "H2 H13 C4"),
		mustParseSet(t, "H5 S12 D1"),
		mustParseSet(t, "D2 D3 D4"),
	}, 0)
	ks := gs.KnownState(0)

	passed := mustParseSet(t, "H2 H13")
	m := Pass(0, passed, 1)
	gs.Apply(rules, m)
	ks.Apply(rules, m)
	require.Equal(t, passed, ks.Pinned[1])
	require.Equal(t, c4, ks.Hand.AsSlice()[0])
	require.True(t, ks.PossibleHoldings(1).Contains(h2))
	require.False(t, ks.PossibleHoldings(2).Contains(h2))
	require.NoError(t, ks.Validate())

	// Player 1 passes one of the pinned cards on to player 2. Player 0
	// only sees that two cards changed hands.
	gs.Apply(rules, Pass(1, mustParseSet(t, "H2 S12"), 1))
	censored := gs.History.AsViewedBy(0, 3).Last()
	require.True(t, censored.Cards.IsEmpty())
	ks.Apply(rules, censored)
	require.True(t, ks.Pinned[1].IsEmpty())
	require.Equal(t, []int{1, 3, 5}, ks.HandSizes)
	require.True(t, ks.PossibleHoldings(2).Contains(h2))
	require.NoError(t, ks.Validate())
	require.Equal(t, gs.KnownState(0), ks)
}

func TestKnownStateApplyImpossiblePlayPanics(t *testing.T) {
	gs := New([]cards.Set{
		mustParseSet(t, "H2 H13"),
		mustParseSet(t, "H5 C4"),
	}, 1)
	ks := gs.KnownState(1)
	require.Panics(t, func() {
		// The observer holds C4 so no one else can play it.
		ks.Apply(followSuitRules{}, Play(0, c4))
	})
}
