package gamestate

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"

	"github.com/timpalpant/ismcts/cards"
)

// History records the moves taken since the deal.
//
// Histories are shared between states after a Clone: Append never
// writes into a backing array that another History may be using,
// so a History behaves as a value.
type History struct {
	moves []Move
}

// NewHistoryFromMoves returns a History of the given moves.
func NewHistoryFromMoves(moves []Move) History {
	h := History{}
	for _, m := range moves {
		h.Append(m)
	}
	return h
}

func (h History) String() string {
	return fmt.Sprintf("%v", h.moves)
}

func (h History) Len() int {
	return len(h.moves)
}

func (h History) Get(i int) Move {
	if i < 0 || i >= len(h.moves) {
		panic(fmt.Errorf("index out of range: %d %v", i, h))
	}

	return h.moves[i]
}

// Last returns the most recent move, or Nothing if the history is empty.
func (h History) Last() Move {
	if len(h.moves) == 0 {
		return Nothing()
	}

	return h.moves[len(h.moves)-1]
}

func (h *History) Append(m Move) {
	n := len(h.moves)
	h.moves = append(h.moves[:n:n], m)
}

func (h History) AsSlice() []Move {
	result := make([]Move, len(h.moves))
	copy(result, h.moves)
	return result
}

// AsViewedBy censors the history to contain only info available to the
// given player: the cards of passes it neither made nor received are hidden.
func (h History) AsViewedBy(player Player, numPlayers int) History {
	result := History{moves: h.AsSlice()}
	for i, m := range result.moves {
		if m.Type != PassCards || m.Player == player {
			continue
		}

		if m.Player.Next(numPlayers, int(m.Offset)) != player {
			result.moves[i].Cards = cards.NewSet()
		}
	}

	return result
}

// Move is packed as:
//   [0] bits 0-1 Type, bits 2-4 Player, bits 5-7 Offset
//   [1] Card index + 1 for PlayCard moves, number of cards for PassCards
//   [2-9] passed cards, only for PassCards moves.
func encodeMove(buf []byte, m Move) []byte {
	hdr := uint8(m.Type) | uint8(m.Player)<<2 | m.Offset<<5
	var card uint8
	switch m.Type {
	case PlayCard:
		card = uint8(m.Card.Index() + 1)
	case PassCards:
		card = m.NumCards
	}
	buf = append(buf, hdr, card)
	if m.Type == PassCards {
		var setBuf [8]byte
		binary.LittleEndian.PutUint64(setBuf[:], uint64(m.Cards))
		buf = append(buf, setBuf[:]...)
	}
	return buf
}

// Key returns a compact digest of the history, suitable as an
// information-set key.
func (h History) Key() string {
	buf := make([]byte, 0, 2*len(h.moves))
	for _, m := range h.moves {
		buf = encodeMove(buf, m)
	}

	// Hash into smaller bitstring since it is sparse.
	hash := md5.Sum(buf)
	return string(hash[:])
}
