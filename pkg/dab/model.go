package dab

import (
	"fmt"
	"math"
)

// Phase-shift convention used throughout this package: d is the offset
// between the two bridge square waves as a fraction of the switching
// half-period, valid on [-0.5, 0.5]. Transferred power is
//
//	P(d) = V1 * n*V2 * d * (1 - |d|) / (2 * f * L)
//
// maximized at |d| = 0.5, positive d moving power from V1 to V2.

// DABParameters describes one dual-active-bridge operating target.
// Units:
//   - V1/V2: Volts (primary/secondary DC port voltages)
//   - TargetPower: Watts, positive for V1 -> V2 transfer
//   - SwitchingFrequency: Hertz
//   - TurnsRatio: N_prim/N_sec (0 means unity)
//   - PhaseShiftMin/PhaseShiftMax: allowed normalized phase-shift range;
//     both zero means the default forward range [0, 0.5]
type DABParameters struct {
	V1                 float64
	V2                 float64
	TargetPower        float64
	SwitchingFrequency float64
	TurnsRatio         float64
	PhaseShiftMin      float64
	PhaseShiftMax      float64
}

// phaseShiftLimit is the |d| at which the transfer relation peaks.
const phaseShiftLimit = 0.5

func (p DABParameters) normalized() DABParameters {
	if p.TurnsRatio == 0 {
		p.TurnsRatio = 1
	}
	if p.PhaseShiftMin == 0 && p.PhaseShiftMax == 0 {
		p.PhaseShiftMax = phaseShiftLimit
	}
	return p
}

// referredV2 is the secondary port voltage seen from the primary winding.
func (p DABParameters) referredV2() float64 { return p.TurnsRatio * p.V2 }

// Validate checks every field against its physical domain. The returned
// error wraps ErrInvalidInput and names the offending field.
func (p DABParameters) Validate() error {
	q := p.normalized()
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"primary voltage", q.V1},
		{"secondary voltage", q.V2},
		{"target power", q.TargetPower},
		{"switching frequency", q.SwitchingFrequency},
		{"turns ratio", q.TurnsRatio},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidInput, f.name, f.v)
		}
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidInput, f.name, f.v)
		}
	}
	if q.PhaseShiftMin < -phaseShiftLimit || q.PhaseShiftMax > phaseShiftLimit ||
		q.PhaseShiftMin >= q.PhaseShiftMax {
		return fmt.Errorf("%w: phase shift range [%g, %g] must satisfy -0.5 <= min < max <= 0.5",
			ErrInvalidInput, q.PhaseShiftMin, q.PhaseShiftMax)
	}
	return nil
}

// checkPhaseShift verifies d against the allowed range of the (already
// normalized) parameters.
func (p DABParameters) checkPhaseShift(d float64) error {
	if math.IsNaN(d) || d < p.PhaseShiftMin || d > p.PhaseShiftMax {
		return &OutOfRangeError{PhaseShift: d, Min: p.PhaseShiftMin, Max: p.PhaseShiftMax}
	}
	return nil
}

// Stats are the inductor current waveform statistics at one operating
// point, derived from the exact piecewise-linear geometry (not a fixed
// ripple fraction), so asymmetric ports (V1 != n*V2) are reflected.
type Stats struct {
	RippleRatio float64 // peak-to-peak over DC port current
	RMSCurrent  float64 // A, primary referred
	PeakCurrent float64 // A
	PeakToPeak  float64 // A
	DCCurrent   float64 // A, average primary port current P/V1
	Power       float64 // W, transferred power recomputed from the waveform
}

// LossCoefficients model a candidate inductor's dissipation.
// Units:
//   - WindingOhmsPerHenry: Ohms of winding resistance per Henry (winding
//     length grows with inductance)
//   - CoreLossCoeff: Watts per Hertz per squared Weber of flux-linkage swing
type LossCoefficients struct {
	WindingOhmsPerHenry float64
	CoreLossCoeff       float64
}

// Constraint names one design limit checked on a candidate.
type Constraint string

const (
	ConstraintRipple        Constraint = "ripple ratio"
	ConstraintPeakCurrent   Constraint = "peak current"
	ConstraintLoss          Constraint = "inductor loss"
	ConstraintPowerTransfer Constraint = "power transfer"
	ConstraintPhaseShift    Constraint = "phase shift floor"
)

// Violation records one exceeded limit. Overshoot is (Value-Limit)/Limit,
// so violations of different constraints compare on a common scale.
type Violation struct {
	Constraint Constraint
	Value      float64
	Limit      float64
	Overshoot  float64
}

// Constraints are the design limits a candidate must satisfy. A zero or
// negative limit disables that check.
type Constraints struct {
	MaxRippleRatio float64
	MaxPeakCurrent float64 // A
	MaxLoss        float64 // W, copper + core
}

// Candidate is one evaluated point of the search space. An infeasible
// candidate keeps its full violation list so tradeoffs stay inspectable.
type Candidate struct {
	Inductance float64 // H
	PhaseShift float64 // normalized, solved for the target power
	Stats      Stats
	CopperLoss float64 // W
	CoreLoss   float64 // W
	Feasible   bool
	Violations []Violation
}

// TotalLoss is the candidate's copper plus core dissipation in Watts.
func (c Candidate) TotalLoss() float64 { return c.CopperLoss + c.CoreLoss }

func (c Candidate) overshootSum() float64 {
	var s float64
	for _, v := range c.Violations {
		s += v.Overshoot
	}
	return s
}

// SearchSpace is a finite logarithmic grid of candidate inductances.
type SearchSpace struct {
	LMin   float64 // H
	LMax   float64 // H
	Points int
}

// DefaultSearchSpace spans two decades below the largest inductance that
// can still transfer the target power (at which the solved phase shift
// reaches the transfer peak).
func DefaultSearchSpace(p DABParameters) SearchSpace {
	q := p.normalized()
	lmax := q.V1 * q.referredV2() / (8 * q.SwitchingFrequency * q.TargetPower)
	return SearchSpace{LMin: lmax / 100, LMax: lmax, Points: 60}
}

// Selection is the outcome of a candidate search. Feasible mirrors
// Best.Feasible; when false, Best is the least-violating candidate and
// must not be treated as a valid design. Candidates holds the full
// evaluated set in enumeration order for traceability and plotting.
type Selection struct {
	Best       Candidate
	Feasible   bool
	Candidates []Candidate
}
