package equity

import "github.com/lox/pokerequity/poker"

// HandRank is an evaluator's opaque score for a best five-card hand.
// Larger values are stronger; equal values are an exact tie.
type HandRank int32

// Evaluator ranks hands and picks winners at showdown.
//
// The simulator always passes exactly two ranks to Winners, one per player, and
// reads a two-position answer as a tie between them. An evaluator that reports
// partial ties among more than two candidates is outside this contract.
type Evaluator interface {
	// Rank scores the best five-card hand among 5 to 7 distinct cards.
	Rank(cards []poker.Card) (HandRank, error)
	// Winners returns the positions of ranks holding the maximum value.
	Winners(ranks []HandRank) []int
}

// Outcome is the result of a single showdown.
type Outcome uint8

const (
	WinA Outcome = iota
	WinB
	Tie
)

func (o Outcome) String() string {
	switch o {
	case WinA:
		return "win_a"
	case WinB:
		return "win_b"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}
