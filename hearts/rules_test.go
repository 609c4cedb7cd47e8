package hearts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timpalpant/ismcts/cards"
	"github.com/timpalpant/ismcts/gamestate"
)

func mustParseSet(t testing.TB, s string) cards.Set {
	set, err := cards.ParseSet(s)
	require.NoError(t, err)
	return set
}

func mustParseCard(t testing.TB, s string) cards.Card {
	card, err := cards.ParseCard(s)
	require.NoError(t, err)
	return card
}

func movesToSet(moves []gamestate.Move) cards.Set {
	result := cards.NewSet()
	for _, m := range moves {
		result.Add(m.Card)
	}
	return result
}

func TestTrickWinner(t *testing.T) {
	testCases := []struct {
		trick  string
		leader gamestate.Player
		winner gamestate.Player
	}{
		{"H2 H13 H5 H3", 0, 1},
		{"H2 H13 H1 H3", 0, 2},
		{"D5 S1 C1 D4", 2, 2},
		{"D5 S1 C1 D6", 1, 0},
		{"S3 S12 D1", 1, 2},
	}

	for _, tc := range testCases {
		trick, err := cards.ParseCards(tc.trick)
		require.NoError(t, err)
		p := &gamestate.Public{
			Leader:    tc.leader,
			Trick:     cards.NewStack(trick),
			HandSizes: make([]int, len(trick)),
		}
		require.Equal(t, tc.winner, Rules{}.TrickWinner(p), "trick %v", tc.trick)
	}
}

func TestLegalMoves(t *testing.T) {
	rules := Rules{}
	// Every heart is dealt, so none is out of play.
	gs := gamestate.New([]cards.Set{
		mustParseSet(t, "H2 H13 C4 D1 H7 H8"),
		mustParseSet(t, "H5 S12 D2 D3 H9 H10"),
		mustParseSet(t, "H1 H3 H4 H6 H11 H12"),
	}, 0)

	// Hearts are not broken yet.
	require.False(t, HeartsBroken(&gs.Public))
	require.Equal(t, mustParseSet(t, "C4 D1"), movesToSet(rules.LegalMoves(gs)))

	gs.Apply(rules, gamestate.Play(0, mustParseCard(t, "D1")))
	// Must follow suit.
	require.Equal(t, mustParseSet(t, "D2 D3"), movesToSet(rules.LegalMoves(gs)))

	gs.Apply(rules, gamestate.Play(1, mustParseCard(t, "D2")))
	// Cannot follow, anything goes.
	require.Equal(t, mustParseSet(t, "H1 H3 H4 H6 H11 H12"), movesToSet(rules.LegalMoves(gs)))

	gs.Apply(rules, gamestate.Play(2, mustParseCard(t, "H4")))
	require.True(t, HeartsBroken(&gs.Public))
	require.Equal(t, gamestate.Player(0), gs.Turn)
	require.Equal(t, mustParseSet(t, "H2 H13 C4 H7 H8"), movesToSet(rules.LegalMoves(gs)))
}

func TestLeadHeartsWhenOnlyHearts(t *testing.T) {
	allHearts := cards.FullDeck.OfSuit(cards.Heart)
	gs := gamestate.New([]cards.Set{
		allHearts,
		cards.FullDeck.OfSuit(cards.Diamond),
	}, 0)
	require.False(t, HeartsBroken(&gs.Public))
	require.Equal(t, allHearts, movesToSet(Rules{}.LegalMoves(gs)))
}

func TestHeartsBrokenByPlayedCards(t *testing.T) {
	hand := mustParseSet(t, "H2 D3")
	held := mustParseSet(t, "S1 S2 C5 C6 D4 D5")
	pos := &Position{
		NumPlayers: 4,
		Seat:       0,
		Hand:       hand,
		Played:     cards.FullDeck.Minus(hand).Minus(held),
	}
	ks, err := pos.KnownState()
	require.NoError(t, err)
	require.True(t, HeartsBroken(&ks.Public))
	require.Equal(t, hand, movesToSet(Rules{}.CandidateMoves(ks)))

	// Hearts out of play only because of the deal do not count.
	gs := Deal(4, rand.New(rand.NewSource(3)))
	require.False(t, HeartsBroken(&gs.Public))
}

func TestCandidateMoves(t *testing.T) {
	rules := Rules{}
	// Player 0 holds every heart but H5, so none is out of play.
	observerHand := mustParseSet(t, "C4").Union(
		cards.FullDeck.OfSuit(cards.Heart).Minus(mustParseSet(t, "H5")))
	gs := gamestate.New([]cards.Set{
		observerHand,
		mustParseSet(t, "H5 D2"),
		mustParseSet(t, "S1 S3"),
	}, 1)

	ks := gs.KnownState(0)
	// Player 1 could hold any unseen card. It can't hold only hearts,
	// so it may not lead them.
	require.Equal(t, mustParseSet(t, "D2 S1 S3"), movesToSet(rules.CandidateMoves(ks)))

	m := gamestate.Play(1, mustParseCard(t, "D2"))
	gs.Apply(rules, m)
	ks.Apply(rules, m)
	// Player 2 might be void in diamonds without anyone knowing.
	require.Equal(t, mustParseSet(t, "H5 S1 S3"), movesToSet(rules.CandidateMoves(ks)))

	m = gamestate.Play(2, mustParseCard(t, "S1"))
	gs.Apply(rules, m)
	ks.Apply(rules, m)
	require.True(t, ks.Voids[2].Contains(cards.Diamond))
	require.Equal(t, observerHand, movesToSet(rules.CandidateMoves(ks)))
	require.Equal(t, rules.LegalMoves(gs), rules.CandidateMoves(ks))
}

func TestScores(t *testing.T) {
	p := &gamestate.Public{
		Taken: []cards.Set{
			mustParseSet(t, "H1 H2 H3 S12"),
			mustParseSet(t, "H4 H5 C2"),
			cards.NewSet(),
		},
		HandSizes: make([]int, 3),
	}
	require.Equal(t, []int{16, 2, 0}, Points(p))
	require.InDeltaSlice(t, []float64{10.0 / 26, 24.0 / 26, 1}, Rules{}.Scores(p), 1e-9)
}

func TestShootTheMoon(t *testing.T) {
	taken := mustParseSet(t, "S12")
	taken.AddAll(cards.FullDeck.OfSuit(cards.Heart))
	p := &gamestate.Public{
		Taken:     []cards.Set{cards.NewSet(), taken, mustParseSet(t, "C2")},
		HandSizes: make([]int, 3),
	}
	require.Equal(t, []float64{0, 1, 0}, Rules{}.Scores(p))
}

func TestDeal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := gamestate.MinPlayers; n <= gamestate.MaxPlayers; n++ {
		gs := Deal(n, rng)
		require.NoError(t, gs.Validate())
		require.Equal(t, Removed(n), gs.Played)
		for _, size := range gs.HandSizes {
			require.Equal(t, cards.NumCards/n, size)
		}
		require.True(t, gs.Hands[gs.Turn].Contains(lowestClub(n)))
	}
}

func TestPlayRandomGames(t *testing.T) {
	rules := Rules{}
	rng := rand.New(rand.NewSource(2))
	for n := gamestate.MinPlayers; n <= gamestate.MaxPlayers; n++ {
		gs := Deal(n, rng)
		views := make([]*gamestate.KnownState, n)
		for p := range views {
			views[p] = gs.KnownState(gamestate.Player(p))
		}

		for !rules.IsTerminal(&gs.Public) {
			moves := rules.LegalMoves(gs)
			require.NotEmpty(t, moves)
			m := moves[rng.Intn(len(moves))]
			for _, ks := range views {
				require.Contains(t, rules.CandidateMoves(ks), m)
			}

			gs.Apply(rules, m)
			for _, ks := range views {
				ks.Apply(rules, m)
			}
		}

		require.NoError(t, gs.Validate())
		total := 0
		for _, pts := range Points(&gs.Public) {
			total += pts
		}
		require.Equal(t, totalPoints, total)
	}
}

func TestPositionKnownState(t *testing.T) {
	hand := mustParseSet(t, "H2 H13 C4")
	trick, err := cards.ParseCards("D1")
	require.NoError(t, err)
	// 4 players, 3 tricks left: 10 tricks complete.
	played := cards.FullDeck.Minus(hand).Minus(cards.NewSetFromCards(trick))
	unseen := mustParseSet(t, "S1 S2 S3 S4 S5 S6 S7 S8")
	played = played.Minus(unseen)

	pos := &Position{
		NumPlayers: 4,
		Seat:       2,
		Hand:       hand,
		Trick:      trick,
		Played:     played,
	}
	ks, err := pos.KnownState()
	require.NoError(t, err)
	require.Equal(t, gamestate.Player(2), ks.Turn)
	require.Equal(t, gamestate.Player(1), ks.Leader)
	require.Equal(t, []int{3, 2, 3, 3}, ks.HandSizes)

	pos.Seat = 7
	_, err = pos.KnownState()
	require.Error(t, err)

	pos.Seat = 2
	pos.Played = pos.Played.Minus(pos.Played.OfSuit(cards.Diamond))
	_, err = pos.KnownState()
	require.Error(t, err)
}
