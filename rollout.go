package ismcts

import (
	"math/rand"

	"github.com/timpalpant/ismcts/gamestate"
)

// RolloutPolicy chooses moves during simulation, from a determinized
// state to the end of the game.
type RolloutPolicy interface {
	// ChooseMove returns one of the given legal moves.
	ChooseMove(gs *gamestate.GameState, moves []gamestate.Move, rng *rand.Rand) gamestate.Move
}

// RandomRollout plays uniformly at random among the legal moves.
type RandomRollout struct{}

func (RandomRollout) ChooseMove(gs *gamestate.GameState, moves []gamestate.Move, rng *rand.Rand) gamestate.Move {
	return moves[rng.Intn(len(moves))]
}

// simulate plays out gs with the given policy and returns the scores.
// gs is modified.
func simulate(rules gamestate.Rules, policy RolloutPolicy, gs *gamestate.GameState, rng *rand.Rand) []float64 {
	rollouts.Add(1)
	for !rules.IsTerminal(&gs.Public) {
		moves := rules.LegalMoves(gs)
		if len(moves) == 0 {
			break
		}

		gs.Apply(rules, policy.ChooseMove(gs, moves, rng))
	}

	return rules.Scores(&gs.Public)
}
