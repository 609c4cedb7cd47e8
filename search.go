// Package ismcts implements information-set Monte Carlo tree search
// for trick-taking card games.
//
// Each iteration samples one full game state consistent with what the
// searching player knows, and walks a tree of the searching player's
// information sets whose statistics are shared by every sample.
package ismcts

import (
	"context"
	"expvar"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/ismcts/gamestate"
)

var (
	iterations    = expvar.NewInt("ismcts/iterations")
	nodesExpanded = expvar.NewInt("ismcts/nodes_expanded")
	rollouts      = expvar.NewInt("ismcts/rollouts")
)

var (
	// ErrTerminalState is returned when searching from a finished game.
	ErrTerminalState = errors.New("search from terminal state")
	// ErrNoLegalMoves is returned when the rules report no moves for a
	// game that is not over.
	ErrNoLegalMoves = errors.New("no legal moves in non-terminal state")
	// ErrNoIterations is returned when the iteration budget is not positive.
	ErrNoIterations = errors.New("iteration budget must be positive")
)

// Perspective determines whose result each node accumulates.
type Perspective int

const (
	// PerspectiveMover values each node by the score of the player who
	// made the move leading to it, so that every player is assumed to
	// play in their own interest.
	PerspectiveMover Perspective = iota
	// PerspectiveObserver values every node by the score of the
	// searching player.
	PerspectiveObserver
)

var perspectiveStr = [...]string{
	"mover",
	"observer",
}

func (p Perspective) String() string {
	if p < 0 || int(p) >= len(perspectiveStr) {
		return fmt.Sprintf("Perspective(%d)", int(p))
	}
	return perspectiveStr[p]
}

// ParsePerspective parses the name of a Perspective.
func ParsePerspective(s string) (Perspective, error) {
	for i, name := range perspectiveStr {
		if s == name {
			return Perspective(i), nil
		}
	}

	return 0, errors.Errorf("unknown perspective %q", s)
}

// Config holds the parameters of a search.
type Config struct {
	// Number of select, expand, simulate, backpropagate cycles.
	Iterations int
	// Exploration constant C of UCB1.
	Exploration float64
	Perspective Perspective
	// Deal hidden cards without regard to inferred voids.
	UniformDeals bool
	// Number of independent trees searched in parallel. The iterations
	// are split among them.
	NumWorkers int
	// If positive, stop after this long even if iterations remain.
	MaxTime time.Duration
}

// DefaultConfig returns 10000 iterations with C = 0.7 on one worker,
// valuing nodes from the mover's perspective.
func DefaultConfig() Config {
	return Config{
		Iterations:  10000,
		Exploration: 0.7,
		Perspective: PerspectiveMover,
		NumWorkers:  1,
	}
}

// Searcher chooses moves by ISMCTS. A Searcher is not safe for
// concurrent use.
type Searcher struct {
	rules  gamestate.Rules
	config Config
	rng    *rand.Rand
	policy RolloutPolicy

	tree  *Tree
	stats []ChildStats
}

// Option customizes a Searcher.
type Option func(*Searcher)

// WithRolloutPolicy sets the policy used to play out simulations.
// The policy must be safe for concurrent use if NumWorkers > 1.
func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(s *Searcher) {
		s.policy = policy
	}
}

// NewSearcher returns a Searcher for the given game. All randomness is
// drawn from rng. If rules implements RolloutPolicy it is used for
// simulations, otherwise moves are played uniformly at random.
func NewSearcher(rules gamestate.Rules, config Config, rng *rand.Rand, opts ...Option) *Searcher {
	s := &Searcher{
		rules:  rules,
		config: config,
		rng:    rng,
		policy: RandomRollout{},
	}

	if policy, ok := rules.(RolloutPolicy); ok {
		s.policy = policy
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Search returns the most visited move from the given root.
//
// If ctx is cancelled or the time limit passes, the best move found so
// far is returned, or the context's error if no iteration completed.
func (s *Searcher) Search(ctx context.Context, root *gamestate.KnownState) (gamestate.Move, error) {
	s.tree, s.stats = nil, nil
	if s.rules.IsTerminal(&root.Public) {
		return gamestate.Nothing(), ErrTerminalState
	}

	tree := newTree(root.Clone())
	tree.expand(RootID, s.rules)
	if len(tree.nodes[RootID].children) == 0 {
		return gamestate.Nothing(), errors.Wrapf(ErrNoLegalMoves, "%v", root)
	}

	if s.config.Iterations <= 0 {
		return gamestate.Nothing(), errors.Wrapf(ErrNoIterations, "got %d", s.config.Iterations)
	}

	if s.config.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.MaxTime)
		defer cancel()
	}

	start := time.Now()
	var n int
	if s.config.NumWorkers > 1 {
		var err error
		tree, s.stats, n, err = s.searchParallel(ctx, tree)
		if err != nil {
			return gamestate.Nothing(), err
		}
	} else {
		n = s.run(ctx, tree, s.config.Iterations, s.rng)
		s.stats = tree.rootStats()
	}
	s.tree = tree

	if n == 0 {
		return gamestate.Nothing(), errors.Wrap(ctx.Err(), "search cancelled before the first iteration")
	}

	best := mostVisited(s.stats)
	glog.V(1).Infof("Searched %d iterations in %v (%d nodes): best move %v, %d visits, mean %.3f",
		n, time.Since(start), tree.NumNodes(), best.Move, best.Visits, best.Mean)
	if glog.V(2) {
		for _, cs := range s.stats {
			glog.Infof("  %v", cs)
		}
	}

	return best.Move, nil
}

// RootStats returns the statistics of each move from the root of the
// last search, in the order the moves were discovered.
func (s *Searcher) RootStats() []ChildStats {
	return append([]ChildStats(nil), s.stats...)
}

// Tree returns the tree built by the last search. When the search ran
// in parallel, it is the tree of the first worker.
func (s *Searcher) Tree() *Tree {
	return s.tree
}

// run performs up to n iterations on the tree and returns the number
// completed before ctx was done.
func (s *Searcher) run(ctx context.Context, tree *Tree, n int, rng *rand.Rand) int {
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			glog.V(1).Infof("Search stopped after %d of %d iterations: %v", i, n, ctx.Err())
			return i
		}

		s.iterate(tree, rng)
	}

	return n
}

func (s *Searcher) determinize(ks *gamestate.KnownState, rng *rand.Rand) *gamestate.GameState {
	if s.config.UniformDeals {
		return ks.DeterminizeUniform(rng)
	}
	return ks.Determinize(rng)
}

// iterate runs one select, expand, simulate, backpropagate cycle and
// returns the node that was simulated from.
//
// The hidden cards are dealt once per iteration. Selection only follows
// moves that are legal in that deal and the deal is advanced along the
// way, so the simulation starts from a determinization of the selected
// node's state.
func (s *Searcher) iterate(tree *Tree, rng *rand.Rand) NodeID {
	iterations.Add(1)
	gs := s.determinize(tree.get(RootID).state, rng)
	id := RootID
	for {
		if !tree.get(id).expanded {
			tree.expand(id, s.rules)
		}
		if tree.get(id).terminal {
			break
		}

		legal := s.rules.LegalMoves(gs)
		if len(legal) == 0 {
			break
		}

		next := tree.selectChild(id, s.config.Exploration, legal)
		if next == NoNode {
			glog.V(3).Infof("No move from node %d is legal in %v", id, gs)
			break
		}

		id = next
		gs.Apply(s.rules, tree.get(id).move)
		if tree.get(id).visits == 0 {
			break
		}
	}

	result := simulate(s.rules, s.policy, gs, rng)
	tree.backpropagate(id, result, s.config.Perspective)
	if glog.V(4) {
		glog.Infof("Simulated from %v after %v: %v", id, tree.get(id).move, result)
	}

	return id
}

// Search runs a single-threaded search with the given budget and
// exploration constant, and returns the most visited move.
func Search(ctx context.Context, rules gamestate.Rules, root *gamestate.KnownState,
	iterations int, c float64, rng *rand.Rand) (gamestate.Move, error) {
	config := DefaultConfig()
	config.Iterations = iterations
	config.Exploration = c
	return NewSearcher(rules, config, rng).Search(ctx, root)
}

func (c Config) String() string {
	return fmt.Sprintf("%d iterations, C=%v, %v perspective, uniform deals: %v, %d workers, max time %v",
		c.Iterations, c.Exploration, c.Perspective, c.UniformDeals, c.NumWorkers, c.MaxTime)
}
