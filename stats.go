package ismcts

import (
	"fmt"

	"github.com/timpalpant/ismcts/gamestate"
)

// ChildStats summarizes the search results for one move from the root.
type ChildStats struct {
	Move   gamestate.Move
	Visits int
	// Mean result of the simulations through this move, as seen from
	// the search's Perspective. Zero if never visited.
	Mean float64
}

func (cs ChildStats) String() string {
	return fmt.Sprintf("%v: %d visits, mean %.4f", cs.Move, cs.Visits, cs.Mean)
}

func (t *Tree) rootStats() []ChildStats {
	root := t.get(RootID)
	result := make([]ChildStats, len(root.children))
	for i, id := range root.children {
		child := &t.nodes[id]
		result[i] = ChildStats{
			Move:   child.move,
			Visits: child.visits,
			Mean:   child.mean(),
		}
	}

	return result
}

// mostVisited returns the entry with the most visits, the first one
// in case of ties.
func mostVisited(stats []ChildStats) ChildStats {
	best := stats[0]
	for _, cs := range stats[1:] {
		if cs.Visits > best.Visits {
			best = cs
		}
	}

	return best
}

// mergeStats sums the statistics of each move over several searches.
// Moves are ordered by first appearance.
func mergeStats(results [][]ChildStats) []ChildStats {
	var merged []ChildStats
	index := make(map[gamestate.Move]int)
	values := make(map[gamestate.Move]float64)
	for _, stats := range results {
		for _, cs := range stats {
			i, ok := index[cs.Move]
			if !ok {
				i = len(merged)
				index[cs.Move] = i
				merged = append(merged, ChildStats{Move: cs.Move})
			}

			merged[i].Visits += cs.Visits
			values[cs.Move] += cs.Mean * float64(cs.Visits)
		}
	}

	for i := range merged {
		if merged[i].Visits > 0 {
			merged[i].Mean = values[merged[i].Move] / float64(merged[i].Visits)
		}
	}

	return merged
}
