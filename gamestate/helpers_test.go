package gamestate

import (
	"math/rand"

	"github.com/timpalpant/ismcts/cards"
)

// followSuitRules is a minimal trick-taking game: follow suit if you can,
// the highest card of the led suit wins, score is tricks taken.
type followSuitRules struct{}

func (followSuitRules) TrickWinner(p *Public) Player {
	led, _ := p.LedSuit()
	best := 0
	for i := 1; i < p.Trick.Len(); i++ {
		card := p.Trick.NthCard(i)
		if card.Suit == led && card.Rank > p.Trick.NthCard(best).Rank {
			best = i
		}
	}
	return p.TrickPlayer(best)
}

func playableCards(hand cards.Set, p *Public) cards.Set {
	if led, ok := p.LedSuit(); ok && hand.OfSuit(led) != 0 {
		return hand.OfSuit(led)
	}
	return hand
}

func toMoves(player Player, playable cards.Set) []Move {
	var moves []Move
	playable.Iter(func(card cards.Card) {
		moves = append(moves, Play(player, card))
	})
	return moves
}

func (followSuitRules) LegalMoves(gs *GameState) []Move {
	return toMoves(gs.Turn, playableCards(gs.Hands[gs.Turn], &gs.Public))
}

func (followSuitRules) CandidateMoves(ks *KnownState) []Move {
	if ks.Turn == ks.Observer {
		return toMoves(ks.Turn, playableCards(ks.Hand, &ks.Public))
	}
	if ks.HandSizes[ks.Turn] == 0 {
		return nil
	}
	return toMoves(ks.Turn, ks.PossibleHoldings(ks.Turn))
}

func (followSuitRules) IsTerminal(p *Public) bool {
	return p.Remaining() == 0
}

func (followSuitRules) Scores(p *Public) []float64 {
	result := make([]float64, p.NumPlayers())
	for i, taken := range p.Taken {
		result[i] = float64(taken.Len()) / float64(cards.NumCards)
	}
	return result
}

// randomDeal deals a shuffled deck round-robin to n players after
// setting aside 52 mod n cards.
func randomDeal(n int, rng *rand.Rand) *GameState {
	deck := cards.NewDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	deck = deck[len(deck)%n:]
	hands := make([]cards.Set, n)
	for i, card := range deck {
		hands[i%n].Add(card)
	}

	return New(hands, Player(rng.Intn(n)))
}

// randomPosition deals a game and plays the given number of random
// legal moves.
func randomPosition(n, numMoves int, rng *rand.Rand) *GameState {
	rules := followSuitRules{}
	gs := randomDeal(n, rng)
	for i := 0; i < numMoves && !rules.IsTerminal(&gs.Public); i++ {
		moves := rules.LegalMoves(gs)
		gs.Apply(rules, moves[rng.Intn(len(moves))])
	}
	return gs
}
