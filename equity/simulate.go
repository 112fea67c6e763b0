package equity

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

const (
	// DefaultIterations trades estimate variance for compute time.
	DefaultIterations = 2000

	maxWorkers = 8

	// chunkSize trials share one random stream, keyed by chunk index.
	chunkSize = 256
)

// Options configures a simulation.
type Options struct {
	Iterations int
	// Workers is the number of goroutines sharing the trials. Zero means DefaultWorkers.
	// Results are reproducible for a fixed Seed whatever the worker count.
	Workers   int
	Seed      int64
	Evaluator Evaluator
	Logger    *log.Logger
}

// DefaultWorkers returns the CPU count capped at 8, past which returns diminish.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), maxWorkers)
}

func (o Options) validate() error {
	if o.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidInput, o.Iterations)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidInput, o.Workers)
	}
	if o.Evaluator == nil {
		return fmt.Errorf("%w: no hand evaluator", ErrInvalidInput)
	}
	return nil
}

func (o Options) workers() int {
	w := o.Workers
	if w == 0 {
		w = DefaultWorkers()
	}
	return min(w, o.chunks())
}

func (o Options) chunks() int {
	return (o.Iterations + chunkSize - 1) / chunkSize
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Simulate runs opts.Iterations random board completions for the two hands and
// counts who wins each showdown.
//
// The context is checked between trials. When it is cancelled the counts gathered
// so far are returned with Partial set, alongside an error wrapping ErrCanceled.
func Simulate(ctx context.Context, holeA, holeB HoleCards, opts Options) (Tally, error) {
	if err := validateMatchup(holeA, holeB); err != nil {
		return Tally{}, err
	}
	if err := opts.validate(); err != nil {
		return Tally{}, err
	}

	reduced, err := poker.NewDeck().Exclude(holeA[0], holeA[1], holeB[0], holeB[1])
	if err != nil {
		return Tally{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	logger := opts.logger()
	workers := opts.workers()
	chunks := opts.chunks()
	logger.Debug("Starting equity simulation",
		"holeA", holeA,
		"holeB", holeB,
		"iterations", opts.Iterations,
		"workers", workers,
		"chunks", chunks,
		"seed", opts.Seed)

	tallies := make([]Tally, chunks)
	var next atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for {
				c := int(next.Add(1) - 1)
				if c >= chunks {
					return nil
				}
				trials := min(chunkSize, opts.Iterations-c*chunkSize)
				rng := randutil.Stream(opts.Seed, uint64(c))
				t, err := runChunk(gctx, reduced, holeA, holeB, trials, rng, opts.Evaluator)
				tallies[c] = t
				if err != nil {
					return err
				}
			}
		})
	}
	err = g.Wait()

	var total Tally
	for _, t := range tallies {
		total.Merge(t)
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrEvaluator):
		logger.Error("Hand evaluator failed", "error", err, "completed", total.Trials)
		return Tally{}, err
	case ctx.Err() != nil:
		total.Partial = true
		logger.Warn("Equity simulation cancelled", "completed", total.Trials, "iterations", opts.Iterations)
		return total, fmt.Errorf("%w after %d of %d trials: %w", ErrCanceled, total.Trials, opts.Iterations, ctx.Err())
	default:
		return Tally{}, err
	}

	if total.Trials != opts.Iterations || !total.consistent() {
		return Tally{}, fmt.Errorf("%w: recorded %d outcomes for %d iterations", ErrPartialSample, total.Trials, opts.Iterations)
	}

	logger.Debug("Equity simulation complete",
		"winsA", total.WinsA,
		"winsB", total.WinsB,
		"ties", total.Ties)
	return total, nil
}

// runChunk plays trials against its own shuffled copies of the shared reduced deck.
func runChunk(ctx context.Context, reduced poker.Deck, holeA, holeB HoleCards, trials int, rng *rand.Rand, ev Evaluator) (Tally, error) {
	var t Tally
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			t.Partial = true
			return t, err
		}

		board, err := DrawBoard(reduced, rng)
		if err != nil {
			return t, err
		}

		sd, err := RunTrial(holeA, holeB, board, ev)
		if err != nil {
			return t, err
		}
		t.Record(sd.Outcome)
	}
	return t, nil
}

// DrawBoard shuffles a copy of deck and takes its first five cards.
func DrawBoard(deck poker.Deck, rng *rand.Rand) (Board, error) {
	cards, err := deck.Shuffle(rng).Draw(len(Board{}))
	if err != nil {
		return Board{}, err
	}
	var b Board
	copy(b[:], cards)
	return b, nil
}

// Showdown is the outcome of one trial.
type Showdown struct {
	Board   Board
	RankA   HandRank
	RankB   HandRank
	Outcome Outcome
}

// RunTrial completes both hands with board and asks the evaluator for the winner.
func RunTrial(holeA, holeB HoleCards, board Board, ev Evaluator) (Showdown, error) {
	sevenA := sevenCards(holeA, board)
	sevenB := sevenCards(holeB, board)

	rankA, err := ev.Rank(sevenA[:])
	if err != nil {
		return Showdown{}, fmt.Errorf("%w: ranking %s: %w", ErrEvaluator, poker.FormatCards(sevenA[:]), err)
	}
	rankB, err := ev.Rank(sevenB[:])
	if err != nil {
		return Showdown{}, fmt.Errorf("%w: ranking %s: %w", ErrEvaluator, poker.FormatCards(sevenB[:]), err)
	}

	outcome, err := outcomeOf(ev.Winners([]HandRank{rankA, rankB}))
	if err != nil {
		return Showdown{}, err
	}

	return Showdown{
		Board:   board,
		RankA:   rankA,
		RankB:   rankB,
		Outcome: outcome,
	}, nil
}

func sevenCards(hole HoleCards, board Board) [7]poker.Card {
	var cards [7]poker.Card
	copy(cards[:2], hole[:])
	copy(cards[2:], board[:])
	return cards
}

// outcomeOf reads a two-candidate winners answer.
func outcomeOf(winners []int) (Outcome, error) {
	switch {
	case len(winners) == 1 && winners[0] == 0:
		return WinA, nil
	case len(winners) == 1 && winners[0] == 1:
		return WinB, nil
	case len(winners) == 2 && winners[0] != winners[1] &&
		(winners[0] == 0 || winners[0] == 1) && (winners[1] == 0 || winners[1] == 1):
		return Tie, nil
	default:
		return 0, fmt.Errorf("%w: winners %v from two candidates", ErrEvaluator, winners)
	}
}
