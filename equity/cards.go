package equity

import (
	"fmt"

	"github.com/lox/pokerequity/poker"
)

// HoleCards are one player's two private cards.
type HoleCards [2]poker.Card

// Board holds the five community cards of one trial.
type Board [5]poker.Card

// NewHoleCards builds hole cards from exactly two distinct, valid cards.
func NewHoleCards(cards []poker.Card) (HoleCards, error) {
	if len(cards) != 2 {
		return HoleCards{}, fmt.Errorf("%w: hole cards must be exactly 2 cards, got %d", ErrInvalidInput, len(cards))
	}
	h := HoleCards{cards[0], cards[1]}
	if err := h.validate(); err != nil {
		return HoleCards{}, err
	}
	return h, nil
}

// ParseHoleCards parses notation such as "AsKd".
func ParseHoleCards(s string) (HoleCards, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return HoleCards{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return NewHoleCards(cards)
}

// MustParseHoleCards parses hole cards and panics on error (for tests)
func MustParseHoleCards(s string) HoleCards {
	h, err := ParseHoleCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hole cards %q: %v", s, err))
	}
	return h
}

func (h HoleCards) validate() error {
	for _, c := range h {
		if !c.Valid() {
			return fmt.Errorf("%w: invalid card %#x", ErrInvalidInput, uint64(c))
		}
	}
	if h[0] == h[1] {
		return fmt.Errorf("%w: duplicate hole card %s", ErrInvalidInput, h[0])
	}
	return nil
}

// Hand returns the hole cards as a card set.
func (h HoleCards) Hand() poker.Hand {
	return poker.NewHand(h[0], h[1])
}

func (h HoleCards) String() string {
	return h[0].String() + h[1].String()
}

func (b Board) String() string {
	return poker.FormatCards(b[:])
}

// validateMatchup checks both hands and that they share no card.
func validateMatchup(holeA, holeB HoleCards) error {
	if err := holeA.validate(); err != nil {
		return fmt.Errorf("hand A: %w", err)
	}
	if err := holeB.validate(); err != nil {
		return fmt.Errorf("hand B: %w", err)
	}
	if shared := holeA.Hand() & holeB.Hand(); shared != 0 {
		return fmt.Errorf("%w: hands share %s", ErrInvalidInput, poker.FormatCards(shared.Cards()))
	}
	return nil
}
