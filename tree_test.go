package ismcts

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timpalpant/ismcts/gamestate"
	"github.com/timpalpant/ismcts/hearts"
)

func expandedTree(t *testing.T, root *gamestate.KnownState) *Tree {
	tree := newTree(root)
	tree.expand(RootID, hearts.Rules{})
	require.NotEmpty(t, tree.Children(RootID))
	return tree
}

func TestSelectChild(t *testing.T) {
	tree := expandedTree(t, openingPosition(t, 4, 20))
	children := tree.Children(RootID)
	require.GreaterOrEqual(t, len(children), 3)

	t.Run("unvisited child first", func(t *testing.T) {
		tree.nodes[RootID].visits = 1000000
		for _, id := range children {
			tree.nodes[id].visits = 1000
			tree.nodes[id].value = 1000
		}
		last := children[len(children)-1]
		tree.nodes[last].visits = 0
		tree.nodes[last].value = 0
		require.Equal(t, last, tree.selectChild(RootID, 0.7, nil))
	})

	t.Run("ties go to the earliest child", func(t *testing.T) {
		tree.nodes[RootID].visits = 10 * len(children)
		for _, id := range children {
			tree.nodes[id].visits = 10
			tree.nodes[id].value = 5
		}
		require.Equal(t, children[0], tree.selectChild(RootID, 0.7, nil))
	})

	t.Run("highest score", func(t *testing.T) {
		tree.nodes[children[1]].value = 9
		require.Equal(t, children[1], tree.selectChild(RootID, 0.7, nil))
		// With a large exploration constant the least visited child wins.
		tree.nodes[children[2]].visits = 1
		tree.nodes[children[2]].value = 0
		require.Equal(t, children[2], tree.selectChild(RootID, 100, nil))
	})

	t.Run("only legal moves", func(t *testing.T) {
		legal := []gamestate.Move{tree.nodes[children[0]].move}
		require.Equal(t, children[0], tree.selectChild(RootID, 0.7, legal))
		legal = []gamestate.Move{gamestate.Nothing()}
		require.Equal(t, NoNode, tree.selectChild(RootID, 0.7, legal))
	})
}

func TestUCB1(t *testing.T) {
	require.InDelta(t, 0.5, ucb1(0.5, 10, 1, 0.7), 1e-12)
	require.Greater(t, ucb1(0.5, 10, 100, 0.7), ucb1(0.5, 20, 100, 0.7))
	require.Greater(t, ucb1(0.6, 10, 100, 0.7), ucb1(0.5, 10, 100, 0.7))
}

func TestIterationIncrementsPath(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	s := NewSearcher(hearts.Rules{}, DefaultConfig(), rng)
	tree := expandedTree(t, openingPosition(t, 3, 22))

	for i := 0; i < 200; i++ {
		before := make([]int, tree.NumNodes())
		for id := range before {
			before[id] = tree.nodes[id].visits
		}

		leaf := s.iterate(tree, rng)
		onPath := make(map[NodeID]bool)
		for id := leaf; id != NoNode; id = tree.nodes[id].parent {
			onPath[id] = true
		}
		require.True(t, onPath[RootID])

		for id := 0; id < tree.NumNodes(); id++ {
			expected := 0
			if id < len(before) {
				expected = before[id]
			}
			if onPath[NodeID(id)] {
				expected++
			}
			require.Equal(t, expected, tree.nodes[id].visits, "node %d", id)
		}
	}

	require.Equal(t, 200, tree.Node(RootID).Visits)
	total := 0
	for _, id := range tree.Children(RootID) {
		total += tree.Node(id).Visits
	}
	require.Equal(t, 200, total)
}

func TestBackpropagate(t *testing.T) {
	for _, tc := range []struct {
		perspective Perspective
		expected    []float64
	}{
		{PerspectiveMover, []float64{0.25, 0.25, 0.75}},
		{PerspectiveObserver, []float64{0.25, 0.25, 0.25}},
	} {
		t.Run(tc.perspective.String(), func(t *testing.T) {
			tree := expandedTree(t, endgame(t))
			child := tree.Children(RootID)[0]
			tree.expand(child, hearts.Rules{})
			grandchild := tree.Children(child)[0]
			require.Equal(t, gamestate.Player(0), tree.Node(child).Player)
			require.Equal(t, gamestate.Player(1), tree.Node(grandchild).Player)

			tree.backpropagate(grandchild, []float64{0.25, 0.75}, tc.perspective)
			for i, id := range []NodeID{RootID, child, grandchild} {
				require.Equal(t, 1, tree.Node(id).Visits)
				require.Equal(t, tc.expected[i], tree.Node(id).Value)
				require.Equal(t, tc.expected[i], tree.Node(id).Mean)
			}
		})
	}
}

// duplicateRules lists every candidate move twice.
type duplicateRules struct {
	hearts.Rules
}

func (r duplicateRules) CandidateMoves(ks *gamestate.KnownState) []gamestate.Move {
	moves := r.Rules.CandidateMoves(ks)
	return append(moves, moves...)
}

func TestExpandAddsEachMoveOnce(t *testing.T) {
	root := openingPosition(t, 4, 23)
	tree := newTree(root)
	tree.expand(RootID, duplicateRules{})
	expected := len(hearts.Rules{}.CandidateMoves(root))
	require.Len(t, tree.Children(RootID), expected)

	tree.expand(RootID, hearts.Rules{})
	require.Len(t, tree.Children(RootID), expected)
	require.Equal(t, expected+1, tree.NumNodes())
}

func TestLookup(t *testing.T) {
	s := NewSearcher(hearts.Rules{}, DefaultConfig(), rand.New(rand.NewSource(24)))
	s.config.Iterations = 300
	_, err := s.Search(context.Background(), openingPosition(t, 4, 25))
	require.NoError(t, err)

	tree := s.Tree()
	for id := 0; id < tree.NumNodes(); id++ {
		node := tree.Node(NodeID(id))
		found, ok := tree.Lookup(node.State.History)
		require.True(t, ok)
		require.Equal(t, NodeID(id), found)
		if id != int(RootID) {
			require.Equal(t, node.Move, node.State.History.Last())
		}
	}

	_, ok := tree.Lookup(gamestate.NewHistoryFromMoves([]gamestate.Move{gamestate.Nothing()}))
	require.False(t, ok)
}

func TestMergeStats(t *testing.T) {
	a := gamestate.Play(0, hearts.Removed(3).AsSlice()[0])
	b := gamestate.Nothing()
	merged := mergeStats([][]ChildStats{
		{{Move: a, Visits: 2, Mean: 0.5}, {Move: b, Visits: 1, Mean: 1}},
		{{Move: b, Visits: 3, Mean: 0}, {Move: a, Visits: 0}},
	})
	require.Equal(t, []ChildStats{
		{Move: a, Visits: 2, Mean: 0.5},
		{Move: b, Visits: 4, Mean: 0.25},
	}, merged)
}
