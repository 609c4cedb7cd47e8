// Package hearts implements the rules of Hearts for the game state
// mechanics in package gamestate.
package hearts

import (
	"github.com/timpalpant/ismcts/cards"
	"github.com/timpalpant/ismcts/gamestate"
)

const (
	// Points for taking the queen of spades.
	queenPoints = 13
	// Total points in a deal. Taking all of them shoots the moon.
	totalPoints = 26
)

var queenOfSpades = cards.New(12, cards.Spade)

// Rules implements gamestate.Rules for Hearts without a passing phase.
type Rules struct{}

var _ gamestate.Rules = Rules{}

// strength orders cards within a suit, aces high.
func strength(c cards.Card) int {
	if c.Rank == cards.MinRank {
		return cards.MaxRank + 1
	}
	return int(c.Rank)
}

// TrickWinner returns the player of the highest card of the led suit.
func (Rules) TrickWinner(p *gamestate.Public) gamestate.Player {
	led, _ := p.LedSuit()
	best := 0
	for i := 1; i < p.Trick.Len(); i++ {
		card := p.Trick.NthCard(i)
		if card.Suit == led && strength(card) > strength(p.Trick.NthCard(best)) {
			best = i
		}
	}

	return p.TrickPlayer(best)
}

// HeartsBroken returns whether a heart has been played to a trick yet.
// Only clubs are set aside at the deal, so any heart out of play was
// played to a trick.
func HeartsBroken(p *gamestate.Public) bool {
	return !p.InPlay().OfSuit(cards.Heart).IsEmpty()
}

// playable filters the cards a player might hold to those it may play.
func playable(holding cards.Set, p *gamestate.Public) cards.Set {
	if led, ok := p.LedSuit(); ok {
		if following := holding.OfSuit(led); !following.IsEmpty() {
			return following
		}
		return holding
	}

	if !HeartsBroken(p) {
		if nonHearts := holding.Minus(holding.OfSuit(cards.Heart)); !nonHearts.IsEmpty() {
			return nonHearts
		}
	}

	return holding
}

func playMoves(player gamestate.Player, playable cards.Set) []gamestate.Move {
	moves := make([]gamestate.Move, 0, playable.Len())
	playable.Iter(func(card cards.Card) {
		moves = append(moves, gamestate.Play(player, card))
	})
	return moves
}

// LegalMoves returns the cards the player to move may play.
func (Rules) LegalMoves(gs *gamestate.GameState) []gamestate.Move {
	return playMoves(gs.Turn, playable(gs.Hands[gs.Turn], &gs.Public))
}

// CandidateMoves returns the cards the player to move may play, as far as
// the observer can tell. An opponent may hold any card not accounted
// for outside of the suits it is known to be void in, so it may also
// fail to follow a suit it is not yet known to be void in.
func (Rules) CandidateMoves(ks *gamestate.KnownState) []gamestate.Move {
	if ks.Turn == ks.Observer {
		return playMoves(ks.Turn, playable(ks.Hand, &ks.Public))
	}

	if ks.HandSizes[ks.Turn] == 0 {
		return nil
	}

	holding := ks.PossibleHoldings(ks.Turn)
	if _, ok := ks.LedSuit(); ok {
		return playMoves(ks.Turn, holding)
	}

	// Leading hearts before they are broken requires a hand of only
	// hearts, which the observer can rule out if there are too few.
	hearts := holding.OfSuit(cards.Heart)
	onlyHearts := hearts.Len() >= ks.HandSizes[ks.Turn] &&
		ks.Pinned[ks.Turn].Minus(hearts).IsEmpty()
	if onlyHearts {
		return playMoves(ks.Turn, holding)
	}

	return playMoves(ks.Turn, playable(holding, &ks.Public))
}

// IsTerminal returns true once every card has been played.
func (Rules) IsTerminal(p *gamestate.Public) bool {
	return p.Remaining() == 0
}

// Points returns the penalty points taken by each player so far,
// before accounting for shooting the moon.
func Points(p *gamestate.Public) []int {
	result := make([]int, p.NumPlayers())
	for i, taken := range p.Taken {
		result[i] = taken.OfSuit(cards.Heart).Len()
		if taken.Contains(queenOfSpades) {
			result[i] += queenPoints
		}
	}
	return result
}

// Scores returns 1 - points/26 for each player. A player who takes
// every point instead gives 26 points to each of the others.
func (Rules) Scores(p *gamestate.Public) []float64 {
	points := Points(p)
	for i, pts := range points {
		if pts == totalPoints {
			for j := range points {
				points[j] = totalPoints
			}
			points[i] = 0
			break
		}
	}

	result := make([]float64, len(points))
	for i, pts := range points {
		result[i] = clamp(1 - float64(pts)/totalPoints)
	}
	return result
}

func clamp(x float64) float64 {
	if x < 0 {
		return 0
	} else if x > 1 {
		return 1
	}
	return x
}
