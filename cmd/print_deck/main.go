// Print the 52-card deck in canonical form, one suit per line.
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/timpalpant/ismcts/cards"
)

func main() {
	flag.Parse()

	deck := cards.NewDeck()
	perSuit := cards.NumCards / cards.NumSuits
	for i := 0; i < len(deck); i += perSuit {
		tokens := make([]string, perSuit)
		for j, card := range deck[i : i+perSuit] {
			tokens[j] = card.String()
		}

		fmt.Println(strings.Join(tokens, " "))
	}
}
