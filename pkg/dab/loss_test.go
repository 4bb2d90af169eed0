package dab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateInductorLoss(t *testing.T) {
	const (
		l   = 50e-6
		fsw = 50e3
	)
	s := Stats{RMSCurrent: 28.5, PeakToPeak: 87.3}
	c := LossCoefficients{WindingOhmsPerHenry: 1000, CoreLossCoeff: 5}

	copper, core := EstimateInductorLoss(l, fsw, s, c)

	assert.InDelta(t, 28.5*28.5*(1000*l), copper, 1e-9)
	flux := l * 87.3
	assert.InDelta(t, 5*fsw*flux*flux, core, 1e-9)
	assert.GreaterOrEqual(t, core, 0.0)
}

func TestMinInductanceZVS(t *testing.T) {
	p := refParams()
	const (
		coss     = 260e-12
		minPower = 5e3
	)
	l, err := MinInductanceZVS(p, coss, minPower)
	require.NoError(t, err)
	assert.Greater(t, l, 0.0)

	// energy stored at a lighter load is smaller, so the bound tightens
	lighter, err := MinInductanceZVS(p, coss, 2e3)
	require.NoError(t, err)
	assert.Greater(t, lighter, l)

	ts := 1 / p.SwitchingFrequency
	iout := minPower / p.V2
	ratio := 2 * ts * p.V1 / (iout*ts/p.TurnsRatio + 8*coss*p.V1)
	assert.InDelta(t, coss*ratio*ratio, l, 1e-15)

	_, err = MinInductanceZVS(p, 0, minPower)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = MinInductanceZVS(p, coss, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPowerResolution(t *testing.T) {
	p := refParams()
	const (
		l    = 50.4e-6
		d    = 0.3
		fclk = 250e6
	)
	dp, err := PowerResolution(p, l, d, fclk)
	require.NoError(t, err)
	assert.Greater(t, dp, 0.0)

	// one modulator tick as a fraction of the half period
	step := 2 * p.SwitchingFrequency / fclk
	scale := p.V1 * p.V2 / (2 * p.SwitchingFrequency * l)
	want := scale * (d*(1-d) - (d-step)*(1-(d-step)))
	assert.InDelta(t, want, dp, 1e-9)

	// a larger inductor makes the step finer
	coarse, err := PowerResolution(p, l/2, d, fclk)
	require.NoError(t, err)
	assert.Greater(t, coarse, dp)

	_, err = PowerResolution(p, l, d, p.SwitchingFrequency)
	require.ErrorIs(t, err, ErrInvalidInput)
}
