package dab

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a parameter outside its physically valid
	// domain. The wrapped message names the offending field.
	ErrInvalidInput = errors.New("dab: invalid input")

	// ErrPhaseShiftRange indicates a phase shift outside the allowed
	// normalized range configured on the parameters.
	ErrPhaseShiftRange = errors.New("dab: phase shift out of allowed range")

	// ErrUnachievable indicates an operating point with no physical
	// solution under the phase-shift power-transfer relation. Failures of
	// this kind carry an *UnachievableError with the achievable bound.
	ErrUnachievable = errors.New("dab: operating point not achievable")
)

// UnachievableError reports a target power beyond what the configured
// voltages, frequency and inductance can transfer at any allowed phase
// shift. MaxPower is the achievable bound.
type UnachievableError struct {
	TargetPower float64 // W
	MaxPower    float64 // W
}

func (e *UnachievableError) Error() string {
	return fmt.Sprintf("dab: target power %g W exceeds achievable maximum %g W", e.TargetPower, e.MaxPower)
}

func (e *UnachievableError) Is(target error) bool { return target == ErrUnachievable }

// OutOfRangeError reports a phase shift outside the allowed normalized
// range of the parameters.
type OutOfRangeError struct {
	PhaseShift float64
	Min, Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("dab: phase shift %g outside [%g, %g]", e.PhaseShift, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrPhaseShiftRange }
