package equity

import (
	"fmt"
	"math"
)

// Tally counts showdown outcomes. A tally with Partial set came from an
// interrupted run and cannot be finalized.
type Tally struct {
	WinsA   int
	WinsB   int
	Ties    int
	Trials  int
	Partial bool
}

// Record adds one showdown outcome.
func (t *Tally) Record(o Outcome) {
	switch o {
	case WinA:
		t.WinsA++
	case WinB:
		t.WinsB++
	case Tie:
		t.Ties++
	}
	t.Trials++
}

// Merge folds another worker's counts into t.
func (t *Tally) Merge(o Tally) {
	t.WinsA += o.WinsA
	t.WinsB += o.WinsB
	t.Ties += o.Ties
	t.Trials += o.Trials
	t.Partial = t.Partial || o.Partial
}

// Swap returns the tally seen from the other player's seat.
func (t Tally) Swap() Tally {
	t.WinsA, t.WinsB = t.WinsB, t.WinsA
	return t
}

func (t Tally) consistent() bool {
	return t.WinsA >= 0 && t.WinsB >= 0 && t.Ties >= 0 && t.WinsA+t.WinsB+t.Ties == t.Trials
}

// Result holds final equities. Ties credit each player half a pot.
type Result struct {
	EquityA float64
	EquityB float64
	Tally   Tally
}

// Finalize turns a completed tally into equities.
func Finalize(t Tally) (Result, error) {
	if t.Partial {
		return Result{}, fmt.Errorf("%w: tally covers %d interrupted trials", ErrPartialSample, t.Trials)
	}
	if t.Trials <= 0 {
		return Result{}, ErrEmptySample
	}
	if !t.consistent() {
		return Result{}, fmt.Errorf("%w: %d+%d+%d outcomes for %d trials",
			ErrPartialSample, t.WinsA, t.WinsB, t.Ties, t.Trials)
	}

	n := float64(t.Trials)
	half := float64(t.Ties) * 0.5
	return Result{
		EquityA: (float64(t.WinsA) + half) / n,
		EquityB: (float64(t.WinsB) + half) / n,
		Tally:   t,
	}, nil
}

// WinRateA returns the share of trials won outright by hand A.
func (r Result) WinRateA() float64 {
	return float64(r.Tally.WinsA) / float64(r.Tally.Trials)
}

// WinRateB returns the share of trials won outright by hand B.
func (r Result) WinRateB() float64 {
	return float64(r.Tally.WinsB) / float64(r.Tally.Trials)
}

// TieRate returns the share of trials that split the pot.
func (r Result) TieRate() float64 {
	return float64(r.Tally.Ties) / float64(r.Tally.Trials)
}

// ConfidenceInterval returns the 95% confidence interval for hand A's equity.
// Hand B's interval is [1-upper, 1-lower].
func (r Result) ConfidenceInterval() (lower, upper float64) {
	n := float64(r.Tally.Trials)
	if n == 0 {
		return 0, 0
	}

	// Standard error for binomial proportion
	se := math.Sqrt((r.EquityA * (1.0 - r.EquityA)) / n)
	margin := 1.96 * se

	lower = math.Max(0.0, r.EquityA-margin)
	upper = math.Min(1.0, r.EquityA+margin)
	return lower, upper
}
