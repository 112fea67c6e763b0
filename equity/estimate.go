package equity

import (
	"context"
	rand "math/rand/v2"

	"github.com/lox/pokerequity/poker"
)

// Estimate simulates the matchup and finalizes the counts into equities.
// A cancelled run returns no result.
func Estimate(ctx context.Context, holeA, holeB HoleCards, opts Options) (Result, error) {
	tally, err := Simulate(ctx, holeA, holeB, opts)
	if err != nil {
		return Result{}, err
	}
	return Finalize(tally)
}

// Matchup is a random deal: two starting hands and a sample runout.
type Matchup struct {
	HoleA HoleCards
	HoleB HoleCards
	Board Board
}

// Deal shuffles a full deck and deals hand A, hand B and a five-card preview board.
func Deal(rng *rand.Rand) (Matchup, error) {
	var m Matchup
	cards, err := poker.NewDeck().Shuffle(rng).Draw(len(m.HoleA) + len(m.HoleB) + len(m.Board))
	if err != nil {
		return Matchup{}, err
	}

	copy(m.HoleA[:], cards[0:2])
	copy(m.HoleB[:], cards[2:4])
	copy(m.Board[:], cards[4:9])
	return m, nil
}
