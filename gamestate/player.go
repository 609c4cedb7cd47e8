package gamestate

import (
	"fmt"
)

// Player represents the identity (seat) of a player in the game.
type Player uint8

// Limits on the number of players at the table.
const (
	MinPlayers = 2
	MaxPlayers = 6
)

func (p Player) String() string {
	return fmt.Sprintf("Player%d", uint8(p))
}

// Next returns the player seated offset places to the left of p.
func (p Player) Next(numPlayers, offset int) Player {
	return Player((int(p) + offset) % numPlayers)
}
