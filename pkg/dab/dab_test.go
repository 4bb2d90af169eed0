package dab

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference design: 600 V / 400 V ports, unity transformer, 50 kHz, 10 kW
func refParams() DABParameters {
	return DABParameters{
		V1:                 600,
		V2:                 400,
		TargetPower:        10e3,
		SwitchingFrequency: 50e3,
		TurnsRatio:         1,
		PhaseShiftMin:      0,
		PhaseShiftMax:      0.5,
	}
}

func TestRequiredInductance_ReferenceDesign(t *testing.T) {
	p := refParams()
	l, err := RequiredInductance(p, 0.3)
	require.NoError(t, err)
	assert.Greater(t, l, 0.0)

	// P = V1*V2*d*(1-d)/(2*f*L) solved for L
	want := 600.0 * 400 * 0.3 * 0.7 / (2 * 50e3 * 10e3)
	assert.InDelta(t, want, l, 1e-12)
	t.Logf("required inductance @ d=0.3: %.2f µH", l*1e6)
}

func TestRequiredInductance_OutOfRange(t *testing.T) {
	p := refParams()
	_, err := RequiredInductance(p, 0.6)
	require.ErrorIs(t, err, ErrPhaseShiftRange)

	_, err = RequiredInductance(p, -0.1)
	require.ErrorIs(t, err, ErrPhaseShiftRange)
}

func TestRequiredInductance_DegenerateIsUnachievable(t *testing.T) {
	p := refParams()
	p.PhaseShiftMin = -0.5
	// reverse phase shift with a forward power target has no positive L
	_, err := RequiredInductance(p, -0.3)
	require.ErrorIs(t, err, ErrUnachievable)
}

func TestPower_RoundTripWithRequiredInductance(t *testing.T) {
	p := refParams()
	for _, d := range []float64{0.05, 0.1, 0.3, 0.45} {
		l, err := RequiredInductance(p, d)
		require.NoError(t, err)
		got, err := Power(p, l, d)
		require.NoError(t, err)
		assert.InDelta(t, p.TargetPower, got, 1e-6, "power at d=%g", d)
	}
}

func TestPhaseShiftForPower_SolvesTransferRelation(t *testing.T) {
	p := refParams()
	const l = 50.4e-6 // the d=0.3 design inductance
	d, err := PhaseShiftForPower(p, l)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, d, 1e-9)

	// the solver picks the low-circulating-current root, never d > 0.5
	assert.LessOrEqual(t, d, 0.5)
}

func TestPhaseShiftForPower_UnachievableCarriesBound(t *testing.T) {
	p := refParams()
	const l = 100e-6 // P_max = V1*V2/(8*f*L) = 6 kW < 10 kW target

	_, err := PhaseShiftForPower(p, l)
	require.ErrorIs(t, err, ErrUnachievable)

	var ue *UnachievableError
	require.ErrorAs(t, err, &ue)
	assert.InDelta(t, 6000, ue.MaxPower, 1e-6)
	assert.InDelta(t, 10e3, ue.TargetPower, 1e-12)
}

func TestMaxPower_RespectsAllowedRange(t *testing.T) {
	p := refParams()
	const l = 100e-6
	full, err := MaxPower(p, l)
	require.NoError(t, err)
	assert.InDelta(t, p.V1*p.V2/(8*p.SwitchingFrequency*l), full, 1e-9)

	// narrowing the range lowers the achievable maximum
	p.PhaseShiftMax = 0.25
	narrow, err := MaxPower(p, l)
	require.NoError(t, err)
	assert.InDelta(t, p.V1*p.V2*0.25*0.75/(2*p.SwitchingFrequency*l), narrow, 1e-9)
	assert.Less(t, narrow, full)
}

func TestMaxPower_ReverseOnlyRange(t *testing.T) {
	p := refParams()
	p.PhaseShiftMin = -0.5
	p.PhaseShiftMax = -0.1
	const l = 100e-6

	// the forward maximum over a reverse-only range is negative: the
	// upper endpoint d = -0.1 is still reverse transfer
	maxP, err := MaxPower(p, l)
	require.NoError(t, err)
	want := p.V1 * p.V2 * -0.1 * 0.9 / (2 * p.SwitchingFrequency * l)
	assert.InDelta(t, want, maxP, 1e-9)
	assert.Negative(t, maxP)

	// so a forward target is unachievable, reported with that bound
	_, err = PhaseShiftForPower(p, l)
	require.ErrorIs(t, err, ErrUnachievable)
	var ue *UnachievableError
	require.ErrorAs(t, err, &ue)
	assert.InDelta(t, want, ue.MaxPower, 1e-9)
}

func TestWaveformStats_ReproducesPower(t *testing.T) {
	p := refParams()
	t.Logf("#     d      L(µH)    ripple     rms(A)    peak(A)   power(W)")
	for _, d := range []float64{0.1, 0.2, 0.3, 0.45} {
		l, err := RequiredInductance(p, d)
		require.NoError(t, err)
		s, err := WaveformStats(p, l, d)
		require.NoError(t, err)

		// power recomputed from the waveform geometry matches the target
		require.InDelta(t, p.TargetPower, s.Power, p.TargetPower*1e-9, "round trip at d=%g", d)
		// DC port current is P/V1
		require.InDelta(t, p.TargetPower/p.V1, s.DCCurrent, 1e-6)
		// geometry sanity
		assert.Greater(t, s.RMSCurrent, 0.0)
		assert.GreaterOrEqual(t, s.PeakCurrent, s.RMSCurrent)
		assert.InDelta(t, 2*s.PeakCurrent, s.PeakToPeak, 1e-12)
		assert.InDelta(t, s.PeakToPeak/s.DCCurrent, s.RippleRatio, 1e-9)

		t.Logf("%7.2f %9.2f %9.3f %10.3f %10.3f %10.1f",
			d, l*1e6, s.RippleRatio, s.RMSCurrent, s.PeakCurrent, s.Power)
	}
}

func TestWaveformStats_SymmetricPortsBalanceCorners(t *testing.T) {
	// with V1 == n*V2 the two waveform corners are mirror images
	p := refParams()
	p.V2 = 300
	p.TurnsRatio = 2

	const d = 0.25
	l, err := RequiredInductance(p, d)
	require.NoError(t, err)
	s, err := WaveformStats(p, l, d)
	require.NoError(t, err)

	th := 1 / (2 * p.SwitchingFrequency)
	want := p.V1 * d * th / l // |i0| == |i1| == V1*d*Th/L when ports match
	assert.InDelta(t, want, s.PeakCurrent, 1e-9)
}

func TestWaveformStats_AsymmetricPortsShiftPeak(t *testing.T) {
	// V1 != n*V2: the corner currents differ and the geometry, not a fixed
	// fraction, must decide the peak
	p := refParams()
	const d = 0.3
	l, err := RequiredInductance(p, d)
	require.NoError(t, err)
	s, err := WaveformStats(p, l, d)
	require.NoError(t, err)

	th := 1 / (2 * p.SwitchingFrequency)
	i0 := -(p.V1 + p.V2*(2*d-1)) * th / (2 * l)
	i1 := (p.V2 - p.V1*(1-2*d)) * th / (2 * l)
	assert.Greater(t, math.Abs(math.Abs(i0)-math.Abs(i1)), 1e-3)
	assert.InDelta(t, math.Max(math.Abs(i0), math.Abs(i1)), s.PeakCurrent, 1e-9)
}

func TestWaveformStats_RejectsZeroPhaseShift(t *testing.T) {
	p := refParams()
	_, err := WaveformStats(p, 50e-6, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidate_NamesOffendingField(t *testing.T) {
	p := refParams()
	p.V2 = 0
	err := p.Validate()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "secondary voltage")

	p = refParams()
	p.PhaseShiftMax = 0.7
	err = p.Validate()
	require.ErrorIs(t, err, ErrInvalidInput)

	p = refParams()
	p.SwitchingFrequency = math.Inf(1)
	require.Error(t, p.Validate())
}

func TestUnachievableError_ErrorsIs(t *testing.T) {
	err := error(&UnachievableError{TargetPower: 10e3, MaxPower: 6e3})
	assert.True(t, errors.Is(err, ErrUnachievable))
	assert.Contains(t, err.Error(), "6000")
}
