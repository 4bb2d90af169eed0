package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `
sst:
  input_voltage_v: 600
  output_voltage_v: 400
  rated_power_w: 10000
  switching_frequency_hz: 50000
  ron_primary_ohm: 0.08
  ron_secondary_ohm: 0.021
  switching_energy_j_per_a: 1.0e-5
  core_loss_coeff: 12
  turns_ratio: 1
  overload_margin: 1.2
  thermal_resistance_k_per_w: 0.0005
  inductor_loss_w: 45.7

dab:
  v1_v: 600
  v2_v: 400
  target_power_w: 10000
  switching_frequency_hz: 50000
  turns_ratio: 1
  phase_shift_max: 0.5

inductor:
  winding_ohm_per_henry: 1000
  core_loss_coeff: 5

constraints:
  max_ripple_ratio: 10
  max_peak_current_a: 150
  max_loss_w: 200

search:
  l_min_h: 2.0e-5
  l_max_h: 5.0e-5
  points: 16
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FullScenario(t *testing.T) {
	cfg, err := Load(writeScenario(t, scenario))
	require.NoError(t, err)

	sp := cfg.SSTParameters()
	assert.Equal(t, 600.0, sp.InputVoltage)
	assert.Equal(t, 10000.0, sp.RatedPower)
	assert.Equal(t, 0.08, sp.RonPrimary)
	assert.Equal(t, 45.7, sp.InductorLoss)
	require.NoError(t, sp.Validate())

	dp := cfg.DABParameters()
	assert.Equal(t, 400.0, dp.V2)
	assert.Equal(t, 0.5, dp.PhaseShiftMax)
	require.NoError(t, dp.Validate())

	assert.Equal(t, 1000.0, cfg.InductorCoefficients().WindingOhmsPerHenry)
	assert.Equal(t, 150.0, cfg.InductorConstraints().MaxPeakCurrent)

	space := cfg.SearchSpace()
	assert.Equal(t, 16, space.Points)
	assert.InDelta(t, 2e-5, space.LMin, 1e-12)
}

func TestLoad_RejectsInvalidScenario(t *testing.T) {
	_, err := Load(writeScenario(t, `
sst:
  input_voltage_v: -600
  output_voltage_v: 400
  rated_power_w: 10000
  switching_frequency_hz: 50000
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input voltage")
}

func TestLoad_RejectsEmptyScenario(t *testing.T) {
	_, err := Load(writeScenario(t, "{}\n"))
	require.Error(t, err)
}

func TestLoad_RejectsBadSearchSpace(t *testing.T) {
	_, err := Load(writeScenario(t, `
dab:
  v1_v: 600
  v2_v: 400
  target_power_w: 10000
  switching_frequency_hz: 50000
search:
  l_min_h: 5.0e-5
  l_max_h: 2.0e-5
  points: 16
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search space")
}

func TestLoadUnchecked_SkipsValidation(t *testing.T) {
	cfg, err := LoadUnchecked(writeScenario(t, "sst:\n  input_voltage_v: -1\n"))
	require.NoError(t, err)
	assert.Equal(t, -1.0, cfg.SST.InputVoltage)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
