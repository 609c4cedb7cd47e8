package gamestate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/timpalpant/ismcts/cards"
)

// KnownState represents the state of the game from the point of view of
// one of the players. Many distinct GameStates share the same KnownState
// due to the hidden information the player is not privy to.
type KnownState struct {
	Public
	// The player whose point of view this is.
	Observer Player
	// The cards in the observer's hand.
	Hand cards.Set
	// Cards the observer knows to be in another player's hand,
	// e.g. because it passed them to that player.
	Pinned []cards.Set
}

// NewKnownState returns the view of a player at the start of a deal:
// the given hand, with the remaining cards split among the other players
// according to handSizes. Cards in neither the hand nor any other player's
// share are considered out of play (played) and must be given explicitly.
func NewKnownState(observer Player, hand cards.Set, handSizes []int, outOfPlay cards.Set, leader Player) *KnownState {
	public := newPublic(len(handSizes))
	copy(public.HandSizes, handSizes)
	public.Turn = leader
	public.Leader = leader
	public.Played = outOfPlay
	return &KnownState{
		Public:   public,
		Observer: observer,
		Hand:     hand,
		Pinned:   make([]cards.Set, len(handSizes)),
	}
}

// Clone returns a deep copy of the KnownState.
func (ks *KnownState) Clone() *KnownState {
	return &KnownState{
		Public:   ks.Public.Clone(),
		Observer: ks.Observer,
		Hand:     ks.Hand,
		Pinned:   append([]cards.Set(nil), ks.Pinned...),
	}
}

func (ks *KnownState) String() string {
	return fmt.Sprintf("%v observing, %v to play, hand: %v, trick: %v, played: %d cards, voids: %v",
		ks.Observer, ks.Turn, ks.Hand, ks.Trick, ks.Played.Len(), ks.Voids)
}

// Unknown returns the cards whose location the observer does not know:
// the full deck less played cards, the current trick, the observer's
// hand and any pinned cards.
func (ks *KnownState) Unknown() cards.Set {
	result := cards.FullDeck.Minus(ks.InPlay()).Minus(ks.Hand)
	for _, pinned := range ks.Pinned {
		result = result.Minus(pinned)
	}
	return result
}

// PossibleHoldings returns the cards that the given player might hold
// from the observer's point of view, excluding suits it is void in.
func (ks *KnownState) PossibleHoldings(p Player) cards.Set {
	if p == ks.Observer {
		return ks.Hand
	}

	result := ks.Unknown()
	for _, suit := range cards.Suits {
		if ks.Voids[p].Contains(suit) {
			result = result.Minus(result.OfSuit(suit))
		}
	}
	return result.Union(ks.Pinned[p])
}

// Validate verifies that the KnownState satisfies all internal constraints.
func (ks *KnownState) Validate() error {
	if err := ks.Public.validate(); err != nil {
		return errors.Wrap(err, "invalid public state")
	}
	if int(ks.Observer) >= ks.NumPlayers() {
		return fmt.Errorf("observer %v out of range", ks.Observer)
	}
	if len(ks.Pinned) != ks.NumPlayers() {
		return fmt.Errorf("%d pinned sets for %d players", len(ks.Pinned), ks.NumPlayers())
	}
	if ks.Hand.Len() != ks.HandSizes[ks.Observer] {
		return fmt.Errorf("observer holds %d cards, expected %d", ks.Hand.Len(), ks.HandSizes[ks.Observer])
	}
	if overlap := ks.Hand.Intersect(ks.InPlay()); overlap != 0 {
		return fmt.Errorf("hand %v overlaps cards in play %v", ks.Hand, overlap)
	}

	accounted := ks.InPlay().Union(ks.Hand)
	for i, pinned := range ks.Pinned {
		if pinned.Intersect(accounted) != 0 {
			return fmt.Errorf("pinned cards %v of player %d are already accounted for", pinned, i)
		}
		if pinned.Len() > ks.HandSizes[i] {
			return fmt.Errorf("player %d has %d pinned cards but only %d in hand",
				i, pinned.Len(), ks.HandSizes[i])
		}
		accounted = accounted.Union(pinned)
	}

	opponentCards := ks.Remaining() - ks.Hand.Len()
	for _, pinned := range ks.Pinned {
		opponentCards -= pinned.Len()
	}
	if unknown := ks.Unknown().Len(); unknown != opponentCards {
		return fmt.Errorf("%d unknown cards, but opponents hold %d unpinned cards", unknown, opponentCards)
	}

	return nil
}

// Apply advances the KnownState by the given (public) move.
// Apply panics if the move is not possible in this state.
func (ks *KnownState) Apply(rules Rules, m Move) {
	switch m.Type {
	case PlayCard:
		if m.Player == ks.Observer {
			ks.Hand.Remove(m.Card)
		} else if ks.Pinned[m.Player].Contains(m.Card) {
			ks.Pinned[m.Player].Remove(m.Card)
		} else if !ks.Unknown().Contains(m.Card) {
			panic(fmt.Errorf("%v cannot hold %v: %v", m.Player, m.Card, ks))
		}
		ks.playCard(rules, m)
	case PassCards:
		to := m.Player.Next(ks.NumPlayers(), int(m.Offset))
		if m.Player == ks.Observer {
			ks.Hand.RemoveAll(m.Cards)
			ks.Pinned[to].AddAll(m.Cards)
		} else if to == ks.Observer {
			ks.Pinned[m.Player] = ks.Pinned[m.Player].Minus(m.Cards)
			ks.Hand.AddAll(m.Cards)
		} else {
			// The observer does not see which cards changed hands, so
			// anything pinned to the passer may now be with either.
			ks.Pinned[m.Player] = cards.NewSet()
			m.Cards = cards.NewSet()
		}
		ks.passCards(m, to)
	case NoMove:
		ks.History.Append(m)
	default:
		panic(fmt.Errorf("invalid move: %+v", m))
	}
}
