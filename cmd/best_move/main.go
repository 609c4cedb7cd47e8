// Recommend a move for a Hearts position described by card lists.
//
// Example:
//
//	best_move -players 4 -seat 2 -hand "H2 H13 C4" -trick "D1" -played "..."
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"github.com/timpalpant/ismcts"
	"github.com/timpalpant/ismcts/cards"
	"github.com/timpalpant/ismcts/gamestate"
	"github.com/timpalpant/ismcts/hearts"
)

type RunParams struct {
	NumPlayers int
	Seat       int
	Hand       string
	Trick      string
	Played     string
	Voids      string
	Taken      string

	Seed         int64
	DebugAddr    string
	SearchParams SearchParams
}

type SearchParams struct {
	Iterations   int
	C            float64
	NumWorkers   int
	UniformDeals bool
	TimeLimit    time.Duration
	Perspective  string
}

func main() {
	var params RunParams
	flag.IntVar(&params.NumPlayers, "players", 4, "Number of players at the table")
	flag.IntVar(&params.Seat, "seat", 0, "Seat of the player to move")
	flag.StringVar(&params.Hand, "hand", "", "Cards in hand, e.g. \"H2 H13 C4\"")
	flag.StringVar(&params.Trick, "trick", "", "Cards played to the current trick, in order")
	flag.StringVar(&params.Played, "played", "", "Cards from completed tricks")
	flag.StringVar(&params.Voids, "voids", "",
		"Comma-separated suits each seat is known to be void in, e.g. \",HS,,D\"")
	flag.StringVar(&params.Taken, "taken", "",
		"Comma-separated cards each seat has taken in tricks, e.g. \"H2 S12,,,\"")
	flag.Int64Var(&params.Seed, "seed", 0, "Random seed (0 for a random seed)")
	flag.StringVar(&params.DebugAddr, "debug_addr", "localhost:4123",
		"Address to serve expvar and pprof on (empty to disable)")
	flag.IntVar(&params.SearchParams.Iterations, "iter", 10000, "Number of ISMCTS iterations")
	flag.Float64Var(&params.SearchParams.C, "c", 0.7, "Exploration constant C of UCB1")
	flag.IntVar(&params.SearchParams.NumWorkers, "workers", 1, "Number of trees to search in parallel")
	flag.BoolVar(&params.SearchParams.UniformDeals, "uniform_deals", false,
		"Deal hidden cards ignoring inferred voids")
	flag.DurationVar(&params.SearchParams.TimeLimit, "time_limit", 0,
		"Stop searching after this long (0 for no limit)")
	flag.StringVar(&params.SearchParams.Perspective, "perspective", "mover",
		"Whose result each node accumulates: mover or observer")
	flag.Parse()

	if params.Seed == 0 {
		params.Seed = int64(frand.Uint64n(math.MaxInt64))
	}
	glog.Infof("Using random seed: %d", params.Seed)

	if params.DebugAddr != "" {
		go http.ListenAndServe(params.DebugAddr, nil)
	}

	pos, err := parsePosition(params)
	if err != nil {
		glog.Fatal(err)
	}

	ks, err := pos.KnownState()
	if err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Position: %v", ks)
	glog.Infof("Information set contains %v deals", ks.NumDeterminizations())

	config, err := newConfig(params.SearchParams)
	if err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Searching with %v", config)

	rng := rand.New(rand.NewSource(params.Seed))
	searcher := ismcts.NewSearcher(hearts.Rules{}, config, rng)
	move, err := searcher.Search(context.Background(), ks)
	if err != nil {
		glog.Fatal(err)
	}

	for _, cs := range searcher.RootStats() {
		fmt.Println(cs)
	}
	fmt.Printf("Best move: %v\n", move.Card)
}

func newConfig(params SearchParams) (ismcts.Config, error) {
	perspective, err := ismcts.ParsePerspective(params.Perspective)
	if err != nil {
		return ismcts.Config{}, err
	}

	config := ismcts.DefaultConfig()
	config.Iterations = params.Iterations
	config.Exploration = params.C
	config.NumWorkers = params.NumWorkers
	config.UniformDeals = params.UniformDeals
	config.MaxTime = params.TimeLimit
	config.Perspective = perspective
	return config, nil
}

func parsePosition(params RunParams) (*hearts.Position, error) {
	pos := &hearts.Position{
		NumPlayers: params.NumPlayers,
		Seat:       gamestate.Player(params.Seat),
	}

	var err error
	if pos.Hand, err = cards.ParseSet(params.Hand); err != nil {
		return nil, errors.Wrap(err, "invalid -hand")
	}
	if pos.Trick, err = cards.ParseCards(params.Trick); err != nil {
		return nil, errors.Wrap(err, "invalid -trick")
	}
	if pos.Played, err = cards.ParseSet(params.Played); err != nil {
		return nil, errors.Wrap(err, "invalid -played")
	}

	if params.Voids != "" {
		for i, field := range strings.Split(params.Voids, ",") {
			voids, err := cards.ParseSuitSet(strings.TrimSpace(field))
			if err != nil {
				return nil, errors.Wrapf(err, "invalid -voids for seat %d", i)
			}
			pos.Voids = append(pos.Voids, voids)
		}
	}

	if params.Taken != "" {
		for i, field := range strings.Split(params.Taken, ",") {
			taken, err := cards.ParseSet(field)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid -taken for seat %d", i)
			}
			pos.Taken = append(pos.Taken, taken)
		}
	}

	return pos, nil
}
