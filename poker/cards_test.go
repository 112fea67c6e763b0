package poker

import (
	"testing"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Rank() != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank())
	}
	if aceSpades.Suit() != Spades {
		t.Errorf("Expected suit Spades, got %d", aceSpades.Suit())
	}
	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}
	if aceSpades.Pretty() != "A♠" {
		t.Errorf("Expected 'A♠', got %s", aceSpades.Pretty())
	}

	tenHearts := NewCard(Ten, Hearts)
	if tenHearts.Pretty() != "10♥" {
		t.Errorf("Expected '10♥', got %s", tenHearts.Pretty())
	}
	if !tenHearts.IsRed() || aceSpades.IsRed() {
		t.Error("IsRed mismatch")
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCard Card
		wantErr  bool
	}{
		{name: "ace of spades", input: "As", wantCard: NewCard(Ace, Spades)},
		{name: "two of hearts", input: "2h", wantCard: NewCard(Two, Hearts)},
		{name: "lowercase face", input: "kd", wantCard: NewCard(King, Diamonds)},
		{name: "uppercase suit", input: "TC", wantCard: NewCard(Ten, Clubs)},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "too long", input: "Asd", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCard(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && card != tc.wantCard {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, card, tc.wantCard)
			}
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	cards, err := ParseCards("As Kd 2c")
	if err != nil {
		t.Fatalf("ParseCards: %v", err)
	}
	if got := FormatCards(cards); got != "As Kd 2c" {
		t.Errorf("FormatCards = %q", got)
	}
	if _, err := ParseCards("AsK"); err == nil {
		t.Error("expected error for odd length")
	}
	if _, err := ParseCards("AsZz"); err == nil {
		t.Error("expected error for bad card")
	}
}

func TestAll52Cards(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(rank, suit)
			if !card.Valid() {
				t.Fatalf("card %d/%d invalid", rank, suit)
			}
			str := card.String()
			if seen[str] {
				t.Errorf("Duplicate card: %s", str)
			}
			seen[str] = true

			parsed, err := ParseCard(str)
			if err != nil || parsed != card {
				t.Errorf("round trip %s: got %v, err %v", str, parsed, err)
			}
		}
	}
	if len(seen) != NumCards {
		t.Errorf("Expected 52 unique cards, got %d", len(seen))
	}
}

func TestInvalidCard(t *testing.T) {
	t.Parallel()
	for _, c := range []Card{0, NewCard(Ace, Spades) | NewCard(Two, Clubs), Card(1) << 60} {
		if c.Valid() {
			t.Errorf("%#x should be invalid", uint64(c))
		}
		if c.String() != "??" {
			t.Errorf("%#x String() = %q", uint64(c), c.String())
		}
	}
}

func TestHandOperations(t *testing.T) {
	t.Parallel()
	as := NewCard(Ace, Spades)
	kh := NewCard(King, Hearts)
	qd := NewCard(Queen, Diamonds)

	hand := NewHand(as, kh)
	if hand.CountCards() != 2 {
		t.Errorf("Expected 2 cards, got %d", hand.CountCards())
	}
	if !hand.HasCard(as) || hand.HasCard(qd) {
		t.Error("HasCard mismatch")
	}

	hand.AddCard(qd)
	hand.AddCard(qd)
	if hand.CountCards() != 3 {
		t.Errorf("Expected 3 cards after add, got %d", hand.CountCards())
	}

	cards := hand.Cards()
	if len(cards) != 3 {
		t.Fatalf("Cards() returned %d cards", len(cards))
	}
	if NewHand(cards...) != hand {
		t.Error("Cards() did not round trip")
	}
}
