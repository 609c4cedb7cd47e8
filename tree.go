package ismcts

import (
	"fmt"

	"github.com/timpalpant/ismcts/gamestate"
)

// NodeID addresses a node in a Tree.
type NodeID int32

const (
	// RootID is the ID of the root node of every Tree.
	RootID NodeID = 0
	// NoNode is the parent of the root.
	NoNode NodeID = -1
)

// node is one information set: every determinization that reaches
// the same KnownState shares its statistics.
type node struct {
	parent   NodeID
	children []NodeID
	// Move that led here from the parent, Nothing at the root.
	move gamestate.Move
	// Player whose point of view the node's value is accumulated from.
	player gamestate.Player
	visits int
	value  float64
	state  *gamestate.KnownState

	expanded bool
	terminal bool
}

func (n *node) mean() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.value / float64(n.visits)
}

// NodeInfo is a read-only snapshot of a node in the tree.
type NodeInfo struct {
	Parent   NodeID
	Move     gamestate.Move
	Player   gamestate.Player
	Visits   int
	Value    float64
	Mean     float64
	State    *gamestate.KnownState
	Expanded bool
	Terminal bool
}

// Tree is an information-set search tree. Nodes live in a flat table
// and refer to each other by index; they are only ever appended.
type Tree struct {
	nodes []node
	// Information-set key (history as seen by the observer) -> node.
	index map[string]NodeID
}

func newTree(root *gamestate.KnownState) *Tree {
	t := &Tree{index: make(map[string]NodeID)}
	t.nodes = append(t.nodes, node{
		parent: NoNode,
		move:   gamestate.Nothing(),
		player: root.Observer,
		state:  root,
	})
	t.index[root.History.Key()] = RootID
	return t
}

// NumNodes returns the number of nodes in the tree.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// Node returns a snapshot of the given node.
// The returned State must not be modified.
func (t *Tree) Node(id NodeID) NodeInfo {
	n := t.get(id)
	return NodeInfo{
		Parent:   n.parent,
		Move:     n.move,
		Player:   n.player,
		Visits:   n.visits,
		Value:    n.value,
		Mean:     n.mean(),
		State:    n.state,
		Expanded: n.expanded,
		Terminal: n.terminal,
	}
}

// Children returns the children of the given node in the order they
// were discovered.
func (t *Tree) Children(id NodeID) []NodeID {
	return append([]NodeID(nil), t.get(id).children...)
}

// Lookup returns the node whose state has the given history, as seen by
// the observer of the search.
func (t *Tree) Lookup(h gamestate.History) (NodeID, bool) {
	id, ok := t.index[h.Key()]
	return id, ok
}

func (t *Tree) get(id NodeID) *node {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Errorf("node %d out of range, tree has %d nodes", id, len(t.nodes)))
	}

	return &t.nodes[id]
}

func (t *Tree) addChild(parent NodeID, m gamestate.Move, state *gamestate.KnownState) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		parent: parent,
		move:   m,
		player: m.Player,
		state:  state,
	})
	p := t.get(parent)
	p.children = append(p.children, id)
	t.index[state.History.Key()] = id
	return id
}

// expand creates one child per candidate move from the given node not
// already present. A node with no candidate moves is terminal.
func (t *Tree) expand(id NodeID, rules gamestate.Rules) {
	n := t.get(id)
	n.expanded = true
	if rules.IsTerminal(&n.state.Public) {
		n.terminal = true
		return
	}

	state := n.state
	moves := rules.CandidateMoves(state)
	existing := make(map[gamestate.Move]struct{}, len(n.children)+len(moves))
	for _, child := range n.children {
		existing[t.nodes[child].move] = struct{}{}
	}

	for _, m := range moves {
		if _, ok := existing[m]; ok {
			continue
		}

		existing[m] = struct{}{}
		child := state.Clone()
		child.Apply(rules, m)
		t.addChild(id, m, child)
		nodesExpanded.Add(1)
	}

	// addChild may have moved the table.
	if n = t.get(id); len(n.children) == 0 {
		n.terminal = true
	}
}

// backpropagate adds one visit and the result, seen from each node's
// point of view, to every node from id up to the root.
func (t *Tree) backpropagate(id NodeID, result []float64, perspective Perspective) {
	observer := t.nodes[RootID].player
	for id != NoNode {
		n := t.get(id)
		player := n.player
		if perspective == PerspectiveObserver {
			player = observer
		}

		n.visits++
		n.value += result[player]
		id = n.parent
	}
}
