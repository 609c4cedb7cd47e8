package gamestate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/timpalpant/ismcts/cards"
)

// Public holds the information about a game in progress that is
// observable by every player at the table.
type Public struct {
	// Player whose turn it is to move.
	Turn Player
	// Player who led the current trick.
	Leader Player
	// Cards played to the current trick, in play order.
	Trick cards.Stack
	// Cards resolved out of play: completed tricks and any cards
	// removed from the deck before the deal.
	Played cards.Set
	// Cards won in tricks by each player.
	Taken []cards.Set
	// Suits each player is known to hold no cards of.
	Voids []cards.SuitSet
	// Number of cards in each player's hand.
	HandSizes []int
	// Moves taken since the deal.
	History History
}

func newPublic(numPlayers int) Public {
	return Public{
		Taken:     make([]cards.Set, numPlayers),
		Voids:     make([]cards.SuitSet, numPlayers),
		HandSizes: make([]int, numPlayers),
	}
}

// NumPlayers returns the number of players at the table.
func (p *Public) NumPlayers() int {
	return len(p.HandSizes)
}

// Clone returns a deep copy of the public state.
func (p *Public) Clone() Public {
	result := *p
	result.Taken = append([]cards.Set(nil), p.Taken...)
	result.Voids = append([]cards.SuitSet(nil), p.Voids...)
	result.HandSizes = append([]int(nil), p.HandSizes...)
	return result
}

// LedSuit returns the suit of the first card of the current trick,
// and false if the trick is empty.
func (p *Public) LedSuit() (cards.Suit, bool) {
	if p.Trick == 0 {
		return 0, false
	}

	return p.Trick.NthCard(0).Suit, true
}

// TrickPlayer returns the player who played the ith card of the current trick.
func (p *Public) TrickPlayer(i int) Player {
	return p.Leader.Next(p.NumPlayers(), i)
}

// InPlay returns the set of cards that are no longer in any hand.
func (p *Public) InPlay() cards.Set {
	return p.Played.Union(p.Trick.ToSet())
}

// Remaining returns the number of cards still held across all hands.
func (p *Public) Remaining() int {
	total := 0
	for _, n := range p.HandSizes {
		total += n
	}
	return total
}

func (p *Public) validate() error {
	n := p.NumPlayers()
	if n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%d players, must be between %d and %d", n, MinPlayers, MaxPlayers)
	}
	if len(p.Taken) != n || len(p.Voids) != n {
		return fmt.Errorf("per-player state sized %d/%d for %d players",
			len(p.Taken), len(p.Voids), n)
	}
	if int(p.Turn) >= n || int(p.Leader) >= n {
		return fmt.Errorf("turn %v or leader %v out of range", p.Turn, p.Leader)
	}
	if p.Trick.Len() >= n {
		return fmt.Errorf("trick %v has %d cards for %d players", p.Trick, p.Trick.Len(), n)
	}
	if p.TrickPlayer(p.Trick.Len()) != p.Turn {
		return fmt.Errorf("trick led by %v with %d cards, but it is %v's turn",
			p.Leader, p.Trick.Len(), p.Turn)
	}
	if p.Trick.ToSet().Intersect(p.Played) != 0 {
		return fmt.Errorf("trick %v overlaps played cards %v", p.Trick, p.Played)
	}
	for i, taken := range p.Taken {
		if taken.Minus(p.Played) != 0 {
			return fmt.Errorf("player %d took %v which were not played", i, taken.Minus(p.Played))
		}
	}

	return nil
}

// GameState represents the full state of a game in progress,
// including every player's hand. It is used only during simulation.
type GameState struct {
	Public
	Hands []cards.Set
}

// New returns a new GameState from the given hands. Cards not in any
// hand are considered out of play. The given player leads.
func New(hands []cards.Set, leader Player) *GameState {
	public := newPublic(len(hands))
	public.Turn = leader
	public.Leader = leader
	dealt := cards.NewSet()
	for i, hand := range hands {
		dealt.AddAll(hand)
		public.HandSizes[i] = hand.Len()
	}
	public.Played = cards.FullDeck.Minus(dealt)

	return &GameState{
		Public: public,
		Hands:  append([]cards.Set(nil), hands...),
	}
}

// Clone returns a deep copy of the GameState.
func (gs *GameState) Clone() *GameState {
	return &GameState{
		Public: gs.Public.Clone(),
		Hands:  append([]cards.Set(nil), gs.Hands...),
	}
}

func (gs *GameState) String() string {
	return fmt.Sprintf("%v to play, trick: %v, hands: %v, played: %v",
		gs.Turn, gs.Trick, gs.Hands, gs.Played)
}

// Validate sanity checks the GameState to ensure every card is in exactly
// one of some hand, the played cards or the current trick.
func (gs *GameState) Validate() error {
	if err := gs.Public.validate(); err != nil {
		return errors.Wrap(err, "invalid public state")
	}
	if len(gs.Hands) != gs.NumPlayers() {
		return fmt.Errorf("%d hands for %d players", len(gs.Hands), gs.NumPlayers())
	}

	seen := gs.InPlay()
	for i, hand := range gs.Hands {
		if hand.Len() != gs.HandSizes[i] {
			return fmt.Errorf("player %d has %d cards, expected %d", i, hand.Len(), gs.HandSizes[i])
		}
		if overlap := seen.Intersect(hand); overlap != 0 {
			return fmt.Errorf("player %d holds %v which are already accounted for", i, overlap)
		}
		seen = seen.Union(hand)
		for _, suit := range cards.Suits {
			if gs.Voids[i].Contains(suit) && hand.OfSuit(suit) != 0 {
				return fmt.Errorf("player %d is void in %v but holds %v", i, suit, hand.OfSuit(suit))
			}
		}
	}
	if seen != cards.FullDeck {
		return fmt.Errorf("cards %v are missing", cards.FullDeck.Minus(seen))
	}

	return nil
}

// Apply advances the GameState by the given move.
// Apply panics if the move is not possible in this state.
func (gs *GameState) Apply(rules Rules, m Move) {
	switch m.Type {
	case PlayCard:
		gs.Hands[m.Player].Remove(m.Card)
		gs.playCard(rules, m)
	case PassCards:
		to := m.Player.Next(gs.NumPlayers(), int(m.Offset))
		gs.Hands[m.Player].RemoveAll(m.Cards)
		gs.Hands[to].AddAll(m.Cards)
		gs.passCards(m, to)
	case NoMove:
		gs.History.Append(m)
	default:
		panic(fmt.Errorf("invalid move: %+v", m))
	}
}

// KnownState returns the view of this game from the given player's seat.
func (gs *GameState) KnownState(observer Player) *KnownState {
	public := gs.Public.Clone()
	public.History = gs.History.AsViewedBy(observer, gs.NumPlayers())
	pinned := make([]cards.Set, gs.NumPlayers())
	for i := 0; i < gs.History.Len(); i++ {
		m := gs.History.Get(i)
		if m.Type != PassCards {
			continue
		}

		to := m.Player.Next(gs.NumPlayers(), int(m.Offset))
		switch {
		case m.Player == observer:
			pinned[to] = pinned[to].Union(m.Cards)
		case to == observer:
			pinned[m.Player] = pinned[m.Player].Minus(m.Cards)
		default:
			pinned[m.Player] = cards.NewSet()
		}
	}
	// Pinned cards the holder has since played are no longer pinned.
	for i := range pinned {
		pinned[i] = pinned[i].Intersect(gs.Hands[i])
	}

	return &KnownState{
		Public:   public,
		Observer: observer,
		Hand:     gs.Hands[observer],
		Pinned:   pinned,
	}
}

// playCard applies the public effects of playing a card: void inference,
// trick completion, and turn advancement.
func (p *Public) playCard(rules Rules, m Move) {
	if m.Player != p.Turn {
		panic(fmt.Errorf("%v played out of turn, expected %v", m.Player, p.Turn))
	}

	if led, ok := p.LedSuit(); ok && m.Card.Suit != led {
		p.Voids[m.Player].Add(led)
	}

	p.Trick.Push(m.Card)
	p.HandSizes[m.Player]--
	p.History.Append(m)
	p.Turn = p.Turn.Next(p.NumPlayers(), 1)
	if p.Trick.Len() < p.NumPlayers() {
		return
	}

	winner := rules.TrickWinner(p)
	trick := p.Trick.ToSet()
	p.Played.AddAll(trick)
	p.Taken[winner].AddAll(trick)
	p.Trick = 0
	p.Leader = winner
	p.Turn = winner
}

func (p *Public) passCards(m Move, to Player) {
	if m.Player != p.Turn {
		panic(fmt.Errorf("%v passed out of turn, expected %v", m.Player, p.Turn))
	}

	n := int(m.NumCards)
	p.HandSizes[m.Player] -= n
	p.HandSizes[to] += n
	p.History.Append(m)
	p.Turn = p.Turn.Next(p.NumPlayers(), 1)
	p.Leader = p.Turn
}
