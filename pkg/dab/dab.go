package dab

import (
	"fmt"
	"math"
)

// Power returns the power transferred through inductance L at phase shift
// d under single-phase-shift modulation. Positive d moves power V1 -> V2.
func Power(p DABParameters, L, d float64) (float64, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if err := checkInductance(L); err != nil {
		return 0, err
	}
	if err := q.checkPhaseShift(d); err != nil {
		return 0, err
	}
	return q.V1 * q.referredV2() * d * (1 - math.Abs(d)) / (2 * q.SwitchingFrequency * L), nil
}

// MaxPower returns the largest forward (V1 -> V2) power transferable
// through inductance L at any phase shift in the allowed range. For a
// reverse-only range (max <= 0) the result is negative: the least
// reverse transfer the range permits, meaning no forward transfer at
// all is achievable.
func MaxPower(p DABParameters, L float64) (float64, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if err := checkInductance(L); err != nil {
		return 0, err
	}
	// P(d) = scale*d*(1-|d|) is nondecreasing across [-0.5, 0.5], so the
	// maximum over the allowed range sits at its upper endpoint.
	d := q.PhaseShiftMax
	return q.V1 * q.referredV2() * d * (1 - math.Abs(d)) / (2 * q.SwitchingFrequency * L), nil
}

// RequiredInductance solves the transfer relation for L with the target
// power and the given phase shift fixed. This is the dual of
// PhaseShiftForPower, for designs that pin the operating phase shift.
func RequiredInductance(p DABParameters, d float64) (float64, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if err := q.checkPhaseShift(d); err != nil {
		return 0, err
	}
	l := q.V1 * q.referredV2() * d * (1 - math.Abs(d)) / (2 * q.SwitchingFrequency * q.TargetPower)
	if l <= 0 {
		return 0, fmt.Errorf("%w: phase shift %g and target power %g W imply inductance %g H",
			ErrUnachievable, d, q.TargetPower, l)
	}
	return l, nil
}

// PhaseShiftForPower solves the transfer relation for d with the target
// power and inductance L fixed, returning the smaller quadratic root (the
// lower-circulating-current operating point). Targets beyond the
// achievable maximum of the allowed range fail with *UnachievableError
// carrying that maximum.
func PhaseShiftForPower(p DABParameters, L float64) (float64, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if err := checkInductance(L); err != nil {
		return 0, err
	}

	// d*(1-d) = k, k > 0 for forward transfer.
	k := 2 * q.SwitchingFrequency * L * q.TargetPower / (q.V1 * q.referredV2())
	if k > 0.25 {
		maxP, _ := MaxPower(q, L)
		return 0, &UnachievableError{TargetPower: q.TargetPower, MaxPower: maxP}
	}
	d := (1 - math.Sqrt(1-4*k)) / 2
	if err := q.checkPhaseShift(d); err != nil {
		if d > q.PhaseShiftMax {
			maxP, _ := MaxPower(q, L)
			return 0, &UnachievableError{TargetPower: q.TargetPower, MaxPower: maxP}
		}
		return 0, err
	}
	return d, nil
}

// WaveformStats derives ripple, RMS and peak of the inductor current from
// the piecewise-linear waveform at inductance L and phase shift d. Corner
// currents of the half period (primary referred), with Th = 1/(2f):
//
//	i(0)    = -(V1 + V2'*(2|d|-1)) * Th / (2L)
//	i(|d|Th) = (V2' - V1*(1-2|d|)) * Th / (2L)
//
// and the second half period mirrors the first. The ripple ratio is the
// peak-to-peak current over the DC primary port current P/V1.
func WaveformStats(p DABParameters, L, d float64) (Stats, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return Stats{}, err
	}
	if err := checkInductance(L); err != nil {
		return Stats{}, err
	}
	if err := q.checkPhaseShift(d); err != nil {
		return Stats{}, err
	}
	dd := math.Abs(d)
	if dd == 0 {
		return Stats{}, fmt.Errorf("%w: phase shift must be non-zero for waveform statistics", ErrInvalidInput)
	}

	v2 := q.referredV2()
	th := 1 / (2 * q.SwitchingFrequency)
	i0 := -(q.V1 + v2*(2*dd-1)) * th / (2 * L)
	i1 := (v2 - q.V1*(1-2*dd)) * th / (2 * L)

	peak := math.Max(math.Abs(i0), math.Abs(i1))
	// Segment RMS of a linear ramp from a to b is sqrt((a^2+ab+b^2)/3);
	// the two segments span fractions dd and 1-dd of the half period.
	rms := math.Sqrt(dd*(i0*i0+i0*i1+i1*i1)/3 + (1-dd)*(i1*i1-i1*i0+i0*i0)/3)

	// Mean primary port current over the half period; times V1 this
	// reproduces the closed-form transfer relation.
	mean := (i1 + (2*dd-1)*i0) / 2
	power := q.V1 * mean
	if d < 0 {
		power = -power
	}

	return Stats{
		RippleRatio: 2 * peak / mean,
		RMSCurrent:  rms,
		PeakCurrent: peak,
		PeakToPeak:  2 * peak,
		DCCurrent:   mean,
		Power:       power,
	}, nil
}

func checkInductance(L float64) error {
	if math.IsNaN(L) || math.IsInf(L, 0) || L <= 0 {
		return fmt.Errorf("%w: inductance must be > 0 and finite, got %v", ErrInvalidInput, L)
	}
	return nil
}
