package dab

import (
	"fmt"
	"math"
)

// EstimateInductorLoss returns the copper and core dissipation of a
// candidate inductor. Copper is I_rms^2 through the winding resistance
// (scaled with L); core uses the flux-linkage swing L*Ipp as the flux
// proxy at switching frequency fsw.
func EstimateInductorLoss(L, fsw float64, s Stats, c LossCoefficients) (copper, core float64) {
	r := c.WindingOhmsPerHenry * L
	copper = s.RMSCurrent * s.RMSCurrent * r
	flux := L * s.PeakToPeak
	core = c.CoreLossCoeff * fsw * flux * flux
	return copper, core
}

// MinInductanceZVS returns the smallest inductance that still achieves
// zero-voltage switching at minPower, given the primary-bridge MOSFET
// output capacitance coss [F]. Smaller inductors store too little energy
// to swing the device capacitances at light load.
func MinInductanceZVS(p DABParameters, coss, minPower float64) (float64, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return 0, err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"output capacitance", coss},
		{"minimum power", minPower},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return 0, fmt.Errorf("%w: %s must be > 0 and finite, got %v", ErrInvalidInput, f.name, f.v)
		}
	}
	ts := 1 / q.SwitchingFrequency
	iout := minPower / q.V2
	den := iout*ts/q.TurnsRatio + 8*coss*q.V1
	ratio := 2 * ts * q.V1 / den
	return coss * ratio * ratio, nil
}

// PowerResolution returns the power step caused by the smallest phase
// shift increment a digital modulator clocked at clockFreq [Hz] can make
// around operating point d, for inductance L. Large inductors trade
// conduction loss for coarser control resolution.
func PowerResolution(p DABParameters, L, d, clockFreq float64) (float64, error) {
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
	if math.IsNaN(clockFreq) || math.IsInf(clockFreq, 0) || clockFreq <= q.SwitchingFrequency {
		return 0, fmt.Errorf("%w: modulator clock must be finite and above the switching frequency, got %v",
			ErrInvalidInput, clockFreq)
	}
	// One clock tick as a fraction of the half period.
	step := 2 * q.SwitchingFrequency / clockFreq
	scale := q.V1 * q.referredV2() / (2 * q.SwitchingFrequency * L)
	dd := math.Abs(d)
	prev := dd - step
	return scale * (dd*(1-dd) - prev*(1-math.Abs(prev))), nil
}
