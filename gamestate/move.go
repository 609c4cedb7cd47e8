package gamestate

import (
	"fmt"

	"github.com/timpalpant/ismcts/cards"
)

// MoveType is the kind of move a player makes.
type MoveType uint8

const (
	// NoMove is a placeholder, e.g. for the root of a search tree.
	NoMove MoveType = iota
	PassCards
	PlayCard
)

var moveTypeStr = [...]string{
	"NoMove",
	"PassCards",
	"PlayCard",
}

func (t MoveType) String() string {
	return moveTypeStr[t]
}

// Move records each transition in the game history.
//
// Moves are comparable and may be used as map keys.
type Move struct {
	Type   MoveType
	Player Player
	// Card played, for PlayCard moves.
	Card cards.Card
	// Cards passed, for PassCards moves.
	Cards cards.Set
	// Number of seats to the left of Player that receives passed cards.
	Offset uint8
	// Number of cards passed. Public even when Cards is hidden.
	NumCards uint8
}

// Play returns the move of the given player playing card.
func Play(player Player, card cards.Card) Move {
	return Move{Type: PlayCard, Player: player, Card: card}
}

// Pass returns the move of the given player passing cards to the
// player offset seats to their left.
func Pass(player Player, passed cards.Set, offset int) Move {
	return Move{
		Type:     PassCards,
		Player:   player,
		Cards:    passed,
		Offset:   uint8(offset),
		NumCards: uint8(passed.Len()),
	}
}

// Nothing returns the placeholder move.
func Nothing() Move {
	return Move{}
}

func (m Move) String() string {
	switch m.Type {
	case PlayCard:
		return fmt.Sprintf("%s:%s:%v", m.Player, m.Type, m.Card)
	case PassCards:
		return fmt.Sprintf("%s:%s:%v:+%d", m.Player, m.Type, m.Cards, m.Offset)
	default:
		return m.Type.String()
	}
}
