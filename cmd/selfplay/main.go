// Play games of Hearts between ISMCTS and random players, and optionally
// record them.
package main

import (
	"context"
	"flag"
	"math"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"github.com/timpalpant/ismcts"
	"github.com/timpalpant/ismcts/cards"
	"github.com/timpalpant/ismcts/gamestate"
	"github.com/timpalpant/ismcts/hearts"
	"github.com/timpalpant/ismcts/internal/record"
)

const (
	searchPlayer = "ismcts"
	randomPlayer = "random"
)

type RunParams struct {
	NumGames    int
	NumPlayers  int
	SearchSeats string
	Output      string

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
	flag.IntVar(&params.NumGames, "num_games", 10, "Number of games to play")
	flag.IntVar(&params.NumPlayers, "players", 4, "Number of players at the table")
	flag.StringVar(&params.SearchSeats, "search_seats", "0",
		"Comma-separated seats played by ISMCTS, the rest play randomly")
	flag.StringVar(&params.Output, "output", "", "File to record games to (gzipped gob)")
	flag.Int64Var(&params.Seed, "seed", 0, "Random seed (0 for a random seed)")
	flag.StringVar(&params.DebugAddr, "debug_addr", "localhost:4123",
		"Address to serve expvar and pprof on (empty to disable)")
	flag.IntVar(&params.SearchParams.Iterations, "iter", 1000, "Number of ISMCTS iterations per move")
	flag.Float64Var(&params.SearchParams.C, "c", 0.7, "Exploration constant C of UCB1")
	flag.IntVar(&params.SearchParams.NumWorkers, "workers", 1, "Number of trees to search in parallel")
	flag.BoolVar(&params.SearchParams.UniformDeals, "uniform_deals", false,
		"Deal hidden cards ignoring inferred voids")
	flag.DurationVar(&params.SearchParams.TimeLimit, "time_limit", 0,
		"Stop each search after this long (0 for no limit)")
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

	if err := run(params); err != nil {
		glog.Fatal(err)
	}
}

// run plays params.NumGames games and logs each seat's mean score.
// Recorded games are flushed to params.Output before run returns, even
// on error.
func run(params RunParams) (err error) {
	players, err := parseSeats(params.SearchSeats, params.NumPlayers)
	if err != nil {
		return err
	}

	config, err := newConfig(params.SearchParams)
	if err != nil {
		return err
	}
	glog.Infof("Searching with %v", config)

	var w *record.Writer
	if params.Output != "" {
		f, err := os.Create(params.Output)
		if err != nil {
			return errors.Wrapf(err, "error creating %s", params.Output)
		}

		w = record.NewWriter(f)
		defer func() {
			if cerr := w.Close(); err == nil {
				err = errors.Wrapf(cerr, "error flushing games to %s", params.Output)
			}
			if cerr := f.Close(); err == nil {
				err = errors.Wrapf(cerr, "error closing %s", params.Output)
			}
		}()
	}

	rng := rand.New(rand.NewSource(params.Seed))
	searcher := ismcts.NewSearcher(hearts.Rules{}, config, rng)
	totals := make([]float64, params.NumPlayers)
	glog.Infof("Playing %d games: %v", params.NumGames, players)
	for i := 0; i < params.NumGames; i++ {
		start := time.Now()
		game, err := playGame(searcher, players, rng)
		if err != nil {
			return err
		}

		points, err := pointsOf(game)
		if err != nil {
			return err
		}

		for p, score := range game.Scores {
			totals[p] += score
		}
		glog.Infof("Game %d finished in %v. Points: %v", i, time.Since(start), points)

		if w != nil {
			if err := w.Write(game); err != nil {
				return err
			}
		}
	}

	for p, total := range totals {
		glog.Infof("%v (%s): mean score %.4f", gamestate.Player(p), players[p],
			total/float64(params.NumGames))
	}

	return nil
}

func playGame(searcher *ismcts.Searcher, players []string, rng *rand.Rand) (*record.Game, error) {
	rules := hearts.Rules{}
	gs := hearts.Deal(len(players), rng)
	game := &record.Game{
		Hands:   append([]cards.Set(nil), gs.Hands...),
		Leader:  gs.Turn,
		Players: players,
	}

	for !rules.IsTerminal(&gs.Public) {
		var m gamestate.Move
		if players[gs.Turn] == searchPlayer {
			var err error
			m, err = searcher.Search(context.Background(), gs.KnownState(gs.Turn))
			if err != nil {
				return nil, errors.Wrapf(err, "search failed for %v", gs)
			}
		} else {
			moves := rules.LegalMoves(gs)
			m = moves[rng.Intn(len(moves))]
		}

		glog.V(2).Infof("%v", m)
		gs.Apply(rules, m)
		game.Moves = append(game.Moves, m)
	}

	game.Scores = rules.Scores(&gs.Public)
	return game, nil
}

func pointsOf(game *record.Game) ([]int, error) {
	final, err := game.Replay(hearts.Rules{})
	if err != nil {
		return nil, errors.Wrap(err, "invalid game record")
	}

	return hearts.Points(&final.Public), nil
}

func parseSeats(s string, numPlayers int) ([]string, error) {
	if numPlayers < gamestate.MinPlayers || numPlayers > gamestate.MaxPlayers {
		return nil, errors.Errorf("invalid number of players: %d", numPlayers)
	}

	players := make([]string, numPlayers)
	for i := range players {
		players[i] = randomPlayer
	}

	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field == "" {
			continue
		}

		seat, err := strconv.Atoi(field)
		if err != nil || seat < 0 || seat >= numPlayers {
			return nil, errors.Errorf("invalid seat %q for %d players", field, numPlayers)
		}
		players[seat] = searchPlayer
	}

	return players, nil
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
