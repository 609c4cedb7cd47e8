package cards

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidToken   = errors.New("invalid card token")
	ErrInvalidSuit    = errors.New("invalid suit")
	ErrInvalidRank    = errors.New("invalid rank")
	ErrRankOutOfRange = errors.New("rank out of range")
)

// ParseError describes a token that could not be parsed as a Card.
// It unwraps to one of the Err* sentinels above.
type ParseError struct {
	Token  string
	Reason string
	err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("card %q: %s", e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

func errorf(kind error, token string, format string, args ...interface{}) error {
	return &ParseError{
		Token:  token,
		Reason: fmt.Sprintf(format, args...),
		err:    kind,
	}
}

var faceRanks = map[string]uint8{
	"J": 11,
	"Q": 12,
	"K": 13,
}

// ParseCard parses a single "<suit letter><rank>" token such as "D1",
// "H13" or "HQ".
func ParseCard(token string) (Card, error) {
	if len(token) != 2 && len(token) != 3 {
		return Card{}, errorf(ErrInvalidToken, token, "expected 2 or 3 characters, got %d", len(token))
	}

	suit, ok := suitFromLetter(token[0])
	if !ok {
		return Card{}, errorf(ErrInvalidSuit, token, "unrecognized suit letter %q", token[:1])
	}

	rankStr := token[1:]
	if rank, ok := faceRanks[rankStr]; ok {
		return Card{Rank: rank, Suit: suit}, nil
	}

	rank, err := strconv.Atoi(rankStr)
	if err != nil || !isDecimal(rankStr) {
		return Card{}, errorf(ErrInvalidRank, token, "rank %q is not a number or face letter", rankStr)
	}

	if rank < MinRank || rank > MaxRank {
		return Card{}, errorf(ErrRankOutOfRange, token, "rank %d out of range [%d, %d]",
			rank, MinRank, MaxRank)
	}

	return Card{Rank: uint8(rank), Suit: suit}, nil
}

// isDecimal returns whether s is written with digits only and no
// leading zero.
func isDecimal(s string) bool {
	if len(s) > 1 && s[0] == '0' {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseCards parses a whitespace-separated list of cards, preserving order.
// The first invalid token is reported.
func ParseCards(s string) ([]Card, error) {
	tokens := strings.Fields(s)
	result := make([]Card, 0, len(tokens))
	for _, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return nil, err
		}

		result = append(result, card)
	}

	return result, nil
}

// ParseSet parses a list of cards as with ParseCards, rejecting duplicates.
func ParseSet(s string) (Set, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return 0, err
	}

	result := NewSet()
	for _, card := range cards {
		if result.Contains(card) {
			return 0, errors.Errorf("duplicate card %v in %q", card, s)
		}
		result.Add(card)
	}

	return result, nil
}
