package sst

import "errors"

var (
	// ErrInvalidInput indicates a parameter outside its physically valid
	// domain. The wrapped message names the offending field.
	ErrInvalidInput = errors.New("sst: invalid input")

	// ErrOverload indicates an operating power above the rated power times
	// the configured overload margin. It is never clamped away.
	ErrOverload = errors.New("sst: operating power out of spec")

	// ErrDivergentModel indicates a parameterization whose total loss
	// leaves no positive output power. A modeling error, not a result.
	ErrDivergentModel = errors.New("sst: divergent loss model")

	// ErrMissingFundamental indicates a harmonic spectrum with no
	// order-1 entry (or a zero-magnitude one).
	ErrMissingFundamental = errors.New("sst: no fundamental in spectrum")
)
