package ismcts

import (
	"math"

	"github.com/timpalpant/ismcts/gamestate"
)

// ucb1 returns the selection score of a child with the given mean value
// and visit count under a parent with parentVisits visits.
func ucb1(mean float64, visits, parentVisits int, c float64) float64 {
	return mean + c*math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
}

func containsMove(moves []gamestate.Move, m gamestate.Move) bool {
	for _, other := range moves {
		if other == m {
			return true
		}
	}
	return false
}

// selectChild returns the child of id to descend into among those whose
// move is in legal (or any child if legal is nil), or NoNode if there is
// none. An unvisited child is always taken first. Ties go to the
// earliest discovered child.
func (t *Tree) selectChild(id NodeID, c float64, legal []gamestate.Move) NodeID {
	parent := t.get(id)
	best := NoNode
	bestScore := math.Inf(-1)
	for _, childID := range parent.children {
		child := &t.nodes[childID]
		if legal != nil && !containsMove(legal, child.move) {
			continue
		}

		if child.visits == 0 {
			return childID
		}

		score := ucb1(child.mean(), child.visits, parent.visits, c)
		if score > bestScore {
			best, bestScore = childID, score
		}
	}

	return best
}
