package poker

import (
	"errors"
	"math"
	"testing"

	"github.com/lox/pokerequity/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()
	d := NewDeck()
	if d.Len() != NumCards {
		t.Fatalf("Expected 52 cards, got %d", d.Len())
	}

	var all Hand
	for _, c := range d.Cards() {
		if all.HasCard(c) {
			t.Fatalf("duplicate card %s", c)
		}
		all.AddCard(c)
	}

	cards := d.Cards()
	if cards[0] != NewCard(Ace, Spades) || cards[1] != NewCard(Ace, Hearts) || cards[51] != NewCard(Two, Clubs) {
		t.Errorf("unexpected order: first %s %s, last %s", cards[0], cards[1], cards[51])
	}
}

func TestDeckExclude(t *testing.T) {
	t.Parallel()
	known := MustParseCards("AsAh2c7d")
	d, err := NewDeck().Exclude(known...)
	if err != nil {
		t.Fatalf("Exclude: %v", err)
	}
	if d.Len() != NumCards-len(known) {
		t.Errorf("Expected %d cards, got %d", NumCards-len(known), d.Len())
	}
	for _, c := range known {
		if d.Contains(c) {
			t.Errorf("reduced deck still contains %s", c)
		}
	}
	if !d.Contains(NewCard(King, Spades)) {
		t.Error("reduced deck lost an unrelated card")
	}

	// Order of the remaining cards follows the source deck.
	prev := -1
	full := NewDeck().Cards()
	for _, c := range d.Cards() {
		pos := -1
		for i, fc := range full {
			if fc == c {
				pos = i
			}
		}
		if pos <= prev {
			t.Fatalf("order not preserved at %s", c)
		}
		prev = pos
	}
}

func TestDeckExcludeErrors(t *testing.T) {
	t.Parallel()
	reduced, err := NewDeck().Exclude(NewCard(Ace, Spades))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := reduced.Exclude(NewCard(Ace, Spades)); !errors.Is(err, ErrCardNotInDeck) {
		t.Errorf("expected ErrCardNotInDeck, got %v", err)
	}
	if _, err := NewDeck().Exclude(NewCard(King, Clubs), NewCard(King, Clubs)); !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("expected ErrDuplicateCard, got %v", err)
	}
	if _, err := NewDeck().Exclude(Card(0)); !errors.Is(err, ErrCardNotInDeck) {
		t.Errorf("expected ErrCardNotInDeck for invalid card, got %v", err)
	}
}

func TestDeckShuffleDoesNotMutate(t *testing.T) {
	t.Parallel()
	d := NewDeck()
	before := d.Cards()
	shuffled := d.Shuffle(randutil.New(1))

	after := d.Cards()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("Shuffle modified the receiver")
		}
	}
	if NewHand(shuffled.Cards()...) != NewHand(before...) {
		t.Error("Shuffle changed the card set")
	}
}

func TestDeckShuffleDeterministic(t *testing.T) {
	t.Parallel()
	a := NewDeck().Shuffle(randutil.New(123)).Cards()
	b := NewDeck().Shuffle(randutil.New(123)).Cards()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestDeckShuffleUniform(t *testing.T) {
	t.Parallel()
	const shuffles = 52 * 400
	rng := randutil.New(2024)
	d := NewDeck()
	index := make(map[Card]int, NumCards)
	for i, c := range d.Cards() {
		index[c] = i
	}

	var counts [NumCards][NumCards]int
	for n := 0; n < shuffles; n++ {
		for pos, c := range d.Shuffle(rng).Cards() {
			counts[index[c]][pos]++
		}
	}

	// Expected 400 per cell with sd ~19.8; 6 sd gives a safe bound over 2704 cells.
	expected := float64(shuffles) / NumCards
	tolerance := 6 * math.Sqrt(expected*(1-1.0/NumCards))
	for card := range counts {
		for pos, got := range counts[card] {
			if math.Abs(float64(got)-expected) > tolerance {
				t.Errorf("card %d at position %d: %d hits, expected %.0f±%.0f", card, pos, got, expected, tolerance)
			}
		}
	}
}

func TestDeckDraw(t *testing.T) {
	t.Parallel()
	d := NewDeck()
	board, err := d.Draw(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != 5 || board[0] != NewCard(Ace, Spades) {
		t.Errorf("unexpected draw %v", board)
	}
	board[0] = NewCard(Two, Clubs)
	if d.Cards()[0] != NewCard(Ace, Spades) {
		t.Error("Draw exposed the deck's backing array")
	}

	if _, err := d.Draw(53); !errors.Is(err, ErrShortDeck) {
		t.Errorf("expected ErrShortDeck, got %v", err)
	}
	if _, err := d.Draw(-1); !errors.Is(err, ErrShortDeck) {
		t.Errorf("expected ErrShortDeck for negative draw, got %v", err)
	}
}
