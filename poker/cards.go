package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], deuce in the low bit of each suit.
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// Rank is the ordinal of a card's face value, 0 (deuce) through 12 (ace).
type Rank uint8

// Suit identifies one of the four suits.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	NumRanks = 13
	NumSuits = 4
	NumCards = NumRanks * NumSuits
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

var suitGlyphs = [NumSuits]string{"♣", "♦", "♥", "♠"}

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(1) << (uint8(suit)*NumRanks + uint8(rank))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && c&(c-1) == 0 && bits.TrailingZeros64(uint64(c)) < NumCards
}

// Index returns the bit position (0-51) of the card, or -1 for an invalid card.
func (c Card) Index() int {
	if !c.Valid() {
		return -1
	}
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the rank of the card.
func (c Card) Rank() Rank {
	return Rank(c.Index() % NumRanks)
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	return Suit(c.Index() / NumRanks)
}

// String returns the short notation, e.g. "As", "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// Pretty renders the card with a suit glyph, e.g. "A♠", "10♥".
func (c Card) Pretty() string {
	if !c.Valid() {
		return "??"
	}
	rank := string(rankChars[c.Rank()])
	if c.Rank() == Ten {
		rank = "10"
	}
	return rank + suitGlyphs[c.Suit()]
}

// IsRed returns true for hearts and diamonds.
func (c Card) IsRed() bool {
	s := c.Suit()
	return c.Valid() && (s == Hearts || s == Diamonds)
}

// String returns the rank character.
func (r Rank) String() string {
	if int(r) >= NumRanks {
		return "?"
	}
	return string(rankChars[r])
}

// String returns the suit character.
func (s Suit) String() string {
	if int(s) >= NumSuits {
		return "?"
	}
	return string(suitChars[s])
}

// ParseCard parses a string like "As" or "td" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}

	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(Rank(rank), Suit(suit)), nil
}

// ParseCards parses concatenated card notation such as "AsKd" or "As Kd".
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card at position %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

// FormatCards joins cards with a space using short notation.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand creates a hand from multiple cards
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the cards in the hand in bit order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}
