// Package handeval ranks hold'em hands with github.com/paulhankin/poker.
package handeval

import (
	"errors"
	"fmt"
	"slices"

	ph "github.com/paulhankin/poker"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/poker"
)

var (
	// ErrCardCount is returned for fewer than 5 or more than 7 cards.
	ErrCardCount = errors.New("hand must have 5 to 7 cards")
	// ErrBadCards is returned for invalid or repeated cards.
	ErrBadCards = errors.New("invalid or repeated cards")
)

// Evaluator implements equity.Evaluator. It is safe for concurrent use.
type Evaluator struct {
	cards [poker.NumCards]ph.Card
}

var _ equity.Evaluator = (*Evaluator)(nil)

// New builds the card translation table.
func New() (*Evaluator, error) {
	e := &Evaluator{}
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			c, err := ph.MakeCard(toSuit(suit), toRank(rank))
			if err != nil {
				return nil, fmt.Errorf("translate %s: %w", poker.NewCard(rank, suit), err)
			}
			e.cards[poker.NewCard(rank, suit).Index()] = c
		}
	}
	return e, nil
}

// Library ranks run ace=1 then deuce..king as 2..13.
func toRank(r poker.Rank) ph.Rank {
	if r == poker.Ace {
		return ph.Rank(1)
	}
	return ph.Rank(r + 2)
}

func toSuit(s poker.Suit) ph.Suit {
	switch s {
	case poker.Clubs:
		return ph.Club
	case poker.Diamonds:
		return ph.Diamond
	case poker.Hearts:
		return ph.Heart
	default:
		return ph.Spade
	}
}

func (e *Evaluator) translate(cards []poker.Card) ([]ph.Card, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return nil, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}
	var seen poker.Hand
	out := make([]ph.Card, len(cards))
	for i, c := range cards {
		if !c.Valid() || seen.HasCard(c) {
			return nil, fmt.Errorf("%w: %s", ErrBadCards, poker.FormatCards(cards))
		}
		seen.AddCard(c)
		out[i] = e.cards[c.Index()]
	}
	return out, nil
}

// Rank scores the best five-card hand among 5 to 7 distinct cards.
func (e *Evaluator) Rank(cards []poker.Card) (equity.HandRank, error) {
	pcs, err := e.translate(cards)
	if err != nil {
		return 0, err
	}

	switch len(pcs) {
	case 7:
		var a7 [7]ph.Card
		copy(a7[:], pcs)
		return equity.HandRank(ph.Eval7(&a7)), nil
	case 5:
		var a5 [5]ph.Card
		copy(a5[:], pcs)
		return equity.HandRank(ph.Eval5(&a5)), nil
	default:
		return equity.HandRank(bestOfSix(pcs)), nil
	}
}

// bestOfSix drops each card in turn and keeps the strongest remaining five.
func bestOfSix(pcs []ph.Card) int16 {
	var best int16
	for skip := range pcs {
		var five [5]ph.Card
		n := 0
		for i, c := range pcs {
			if i != skip {
				five[n] = c
				n++
			}
		}
		if score := ph.Eval5(&five); skip == 0 || score > best {
			best = score
		}
	}
	return best
}

// Winners returns the positions holding the highest rank.
func (e *Evaluator) Winners(ranks []equity.HandRank) []int {
	if len(ranks) == 0 {
		return nil
	}
	best := slices.Max(ranks)
	var winners []int
	for i, r := range ranks {
		if r == best {
			winners = append(winners, i)
		}
	}
	return winners
}

// Describe names the best hand among the cards, e.g. "pair of aces".
func (e *Evaluator) Describe(cards []poker.Card) (string, error) {
	pcs, err := e.translate(cards)
	if err != nil {
		return "", err
	}
	return ph.Describe(pcs)
}
