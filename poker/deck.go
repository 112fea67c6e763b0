package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

var (
	// ErrCardNotInDeck is returned when excluding a card the deck does not hold.
	ErrCardNotInDeck = errors.New("card not in deck")
	// ErrDuplicateCard is returned when the same card is supplied twice.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrShortDeck is returned when more cards are drawn than the deck holds.
	ErrShortDeck = errors.New("not enough cards in deck")
)

// buildOrder lists suits in the order cards of equal rank appear in a fresh deck.
var buildOrder = [NumSuits]Suit{Spades, Hearts, Diamonds, Clubs}

// Deck is an ordered sequence of distinct cards. Operations return new decks and
// never modify the receiver, so a Deck can be shared read-only between goroutines.
type Deck struct {
	cards []Card
}

// NewDeck returns all 52 cards ordered by rank (ace first) then suit (s, h, d, c).
func NewDeck() Deck {
	cards := make([]Card, 0, NumCards)
	for rank := Ace; ; rank-- {
		for _, suit := range buildOrder {
			cards = append(cards, NewCard(rank, suit))
		}
		if rank == Two {
			break
		}
	}
	return Deck{cards: cards}
}

// Len returns the number of cards in the deck.
func (d Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck's cards in order.
func (d Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Contains reports whether the deck holds the card.
func (d Deck) Contains(c Card) bool {
	for _, card := range d.cards {
		if card == c {
			return true
		}
	}
	return false
}

// Exclude returns a new deck without the known cards, preserving the order of
// the remaining cards. It fails if a known card is repeated or is not in the deck.
func (d Deck) Exclude(known ...Card) (Deck, error) {
	var excluded Hand
	for _, card := range known {
		if excluded.HasCard(card) {
			return Deck{}, fmt.Errorf("%w: %s", ErrDuplicateCard, card)
		}
		if !card.Valid() || !d.Contains(card) {
			return Deck{}, fmt.Errorf("%w: %s", ErrCardNotInDeck, card)
		}
		excluded.AddCard(card)
	}

	cards := make([]Card, 0, len(d.cards)-len(known))
	for _, card := range d.cards {
		if !excluded.HasCard(card) {
			cards = append(cards, card)
		}
	}
	return Deck{cards: cards}, nil
}

// Shuffle returns a uniformly shuffled copy of the deck using Fisher-Yates.
func (d Deck) Shuffle(rng *rand.Rand) Deck {
	cards := d.Cards()
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return Deck{cards: cards}
}

// Draw returns a copy of the first n cards.
func (d Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrShortDeck, n, len(d.cards))
	}
	return append([]Card(nil), d.cards[:n]...), nil
}
