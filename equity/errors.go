package equity

import "errors"

var (
	// ErrInvalidInput covers malformed or overlapping hole cards and bad options.
	// It is always returned before any trial runs.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEvaluator means the hand evaluator broke its contract.
	ErrEvaluator = errors.New("hand evaluator error")
	// ErrEmptySample is returned when finalizing a tally with no trials.
	ErrEmptySample = errors.New("empty sample")
	// ErrPartialSample is returned when finalizing an incomplete or inconsistent tally.
	ErrPartialSample = errors.New("partial sample")
	// ErrCanceled is returned when a simulation is stopped before all trials ran.
	ErrCanceled = errors.New("simulation canceled")
)
