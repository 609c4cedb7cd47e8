// Package record saves and loads played games as a stream of gob
// records inside a gzip file.
package record

import (
	"encoding/gob"
	"io"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/ismcts/cards"
	"github.com/timpalpant/ismcts/gamestate"
)

// Game is the record of one complete deal.
type Game struct {
	// Hands as dealt, one per player.
	Hands  []cards.Set
	Leader gamestate.Player
	Moves  []gamestate.Move
	// Final score of each player.
	Scores []float64
	// Name of the strategy each player used.
	Players []string
}

// Replay applies the recorded moves to the deal and returns the final
// state of the game.
func (g *Game) Replay(rules gamestate.Rules) (*gamestate.GameState, error) {
	gs := gamestate.New(g.Hands, g.Leader)
	if err := gs.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid deal")
	}

	for i, m := range g.Moves {
		if !containsMove(rules.LegalMoves(gs), m) {
			return nil, errors.Errorf("move %d (%v) is not legal in %v", i, m, gs)
		}

		gs.Apply(rules, m)
	}

	return gs, nil
}

func containsMove(moves []gamestate.Move, m gamestate.Move) bool {
	for _, other := range moves {
		if other == m {
			return true
		}
	}
	return false
}

// Writer writes game records to an underlying stream.
type Writer struct {
	gz  *gzip.Writer
	enc *gob.Encoder
}

func NewWriter(w io.Writer) *Writer {
	gz := gzip.NewWriter(w)
	return &Writer{
		gz:  gz,
		enc: gob.NewEncoder(gz),
	}
}

func (w *Writer) Write(g *Game) error {
	return errors.Wrap(w.enc.Encode(g), "error encoding game")
}

// Close flushes any buffered records. It does not close the
// underlying stream.
func (w *Writer) Close() error {
	return w.gz.Close()
}

// Reader reads game records written by a Writer.
type Reader struct {
	gz  *gzip.Reader
	dec *gob.Decoder
}

func NewReader(r io.Reader) (*Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "error opening gzip stream")
	}

	return &Reader{
		gz:  gz,
		dec: gob.NewDecoder(gz),
	}, nil
}

// Read returns the next game, or io.EOF when there are no more.
func (r *Reader) Read() (*Game, error) {
	var g Game
	if err := r.dec.Decode(&g); err != nil {
		if err == io.EOF {
			return nil, err
		}

		return nil, errors.Wrap(err, "error decoding game")
	}

	return &g, nil
}

func (r *Reader) Close() error {
	return r.gz.Close()
}
