package ismcts

import (
	"context"
	"math/rand"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// searchParallel splits the iterations among independent trees, one per
// worker, and merges the statistics of their root moves. The first
// tree is the given (expanded) one.
//
// Returns the first tree, the merged statistics and the total number of
// iterations completed.
func (s *Searcher) searchParallel(ctx context.Context, first *Tree) (*Tree, []ChildStats, int, error) {
	numWorkers := s.config.NumWorkers
	if numWorkers > s.config.Iterations {
		numWorkers = s.config.Iterations
	}

	// Seeds must all be drawn before any worker starts for a seeded
	// search to be reproducible.
	seeds := make([]int64, numWorkers)
	for i := range seeds {
		seeds[i] = s.rng.Int63()
	}

	trees := make([]*Tree, numWorkers)
	trees[0] = first
	root := first.get(RootID).state
	for i := 1; i < numWorkers; i++ {
		trees[i] = newTree(root.Clone())
		trees[i].expand(RootID, s.rules)
	}

	perWorker := s.config.Iterations / numWorkers
	completed := make([]int, numWorkers)
	var g errgroup.Group
	for i := range trees {
		i := i
		n := perWorker
		if i == numWorkers-1 {
			n = s.config.Iterations - perWorker*(numWorkers-1)
		}

		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[i]))
			completed[i] = s.run(ctx, trees[i], n, rng)
			glog.V(2).Infof("Worker %d completed %d of %d iterations", i, completed[i], n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, 0, err
	}

	total := 0
	results := make([][]ChildStats, numWorkers)
	for i, tree := range trees {
		total += completed[i]
		results[i] = tree.rootStats()
	}

	return first, mergeStats(results), total, nil
}
