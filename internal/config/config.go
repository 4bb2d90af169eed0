package config

import (
	"fmt"
	"os"

	"github.com/fulongli/dabkit/pkg/dab"
	"github.com/fulongli/dabkit/pkg/sst"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML). A scenario bundles the SST
// stage parameters, the DAB operating target, the inductor constraints and
// the search space, so a full analysis run is reproducible from one file.
type Config struct {
	SST         SSTConfig         `yaml:"sst"`
	DAB         DABConfig         `yaml:"dab"`
	Inductor    InductorConfig    `yaml:"inductor"`
	Constraints ConstraintsConfig `yaml:"constraints"`
	Search      SearchConfig      `yaml:"search"`
}

type SSTConfig struct {
	InputVoltage          float64 `yaml:"input_voltage_v"`
	OutputVoltage         float64 `yaml:"output_voltage_v"`
	RatedPower            float64 `yaml:"rated_power_w"`
	SwitchingFrequency    float64 `yaml:"switching_frequency_hz"`
	RonPrimary            float64 `yaml:"ron_primary_ohm"`
	RonSecondary          float64 `yaml:"ron_secondary_ohm"`
	SwitchingEnergyPerAmp float64 `yaml:"switching_energy_j_per_a"`
	CoreLossCoeff         float64 `yaml:"core_loss_coeff"`
	TurnsRatio            float64 `yaml:"turns_ratio"`
	OverloadMargin        float64 `yaml:"overload_margin"`
	ThermalResistance     float64 `yaml:"thermal_resistance_k_per_w"`
	InductorLoss          float64 `yaml:"inductor_loss_w"`
}

type DABConfig struct {
	V1                 float64 `yaml:"v1_v"`
	V2                 float64 `yaml:"v2_v"`
	TargetPower        float64 `yaml:"target_power_w"`
	SwitchingFrequency float64 `yaml:"switching_frequency_hz"`
	TurnsRatio         float64 `yaml:"turns_ratio"`
	PhaseShiftMin      float64 `yaml:"phase_shift_min"`
	PhaseShiftMax      float64 `yaml:"phase_shift_max"`
}

type InductorConfig struct {
	WindingOhmsPerHenry float64 `yaml:"winding_ohm_per_henry"`
	CoreLossCoeff       float64 `yaml:"core_loss_coeff"`
}

type ConstraintsConfig struct {
	MaxRippleRatio float64 `yaml:"max_ripple_ratio"`
	MaxPeakCurrent float64 `yaml:"max_peak_current_a"`
	MaxLoss        float64 `yaml:"max_loss_w"`
}

type SearchConfig struct {
	LMin   float64 `yaml:"l_min_h"`
	LMax   float64 `yaml:"l_max_h"`
	Points int     `yaml:"points"`
}

// Load reads, decodes and validates a scenario file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// LoadUnchecked loads a scenario without validating it. Useful for
// printing partial configs while drafting a scenario.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &c, nil
}

// Validate defers to the engine parameter validation, so the file and the
// API reject exactly the same inputs.
func (c *Config) Validate() error {
	if c.SST == (SSTConfig{}) && c.DAB == (DABConfig{}) {
		return fmt.Errorf("scenario needs at least an sst or dab section")
	}
	if c.SST != (SSTConfig{}) {
		if err := c.SSTParameters().Validate(); err != nil {
			return err
		}
	}
	if c.DAB != (DABConfig{}) {
		if err := c.DABParameters().Validate(); err != nil {
			return err
		}
	}
	if s := c.Search; s != (SearchConfig{}) {
		if s.LMin <= 0 || s.LMax <= s.LMin || s.Points < 2 {
			return fmt.Errorf("search space must satisfy 0 < l_min_h < l_max_h and points >= 2")
		}
	}
	return nil
}

func (c *Config) SSTParameters() sst.SSTParameters {
	return sst.SSTParameters{
		InputVoltage:          c.SST.InputVoltage,
		OutputVoltage:         c.SST.OutputVoltage,
		RatedPower:            c.SST.RatedPower,
		SwitchingFrequency:    c.SST.SwitchingFrequency,
		RonPrimary:            c.SST.RonPrimary,
		RonSecondary:          c.SST.RonSecondary,
		SwitchingEnergyPerAmp: c.SST.SwitchingEnergyPerAmp,
		CoreLossCoeff:         c.SST.CoreLossCoeff,
		TurnsRatio:            c.SST.TurnsRatio,
		OverloadMargin:        c.SST.OverloadMargin,
		ThermalResistance:     c.SST.ThermalResistance,
		InductorLoss:          c.SST.InductorLoss,
	}
}

func (c *Config) DABParameters() dab.DABParameters {
	return dab.DABParameters{
		V1:                 c.DAB.V1,
		V2:                 c.DAB.V2,
		TargetPower:        c.DAB.TargetPower,
		SwitchingFrequency: c.DAB.SwitchingFrequency,
		TurnsRatio:         c.DAB.TurnsRatio,
		PhaseShiftMin:      c.DAB.PhaseShiftMin,
		PhaseShiftMax:      c.DAB.PhaseShiftMax,
	}
}

func (c *Config) InductorCoefficients() dab.LossCoefficients {
	return dab.LossCoefficients{
		WindingOhmsPerHenry: c.Inductor.WindingOhmsPerHenry,
		CoreLossCoeff:       c.Inductor.CoreLossCoeff,
	}
}

func (c *Config) InductorConstraints() dab.Constraints {
	return dab.Constraints{
		MaxRippleRatio: c.Constraints.MaxRippleRatio,
		MaxPeakCurrent: c.Constraints.MaxPeakCurrent,
		MaxLoss:        c.Constraints.MaxLoss,
	}
}

func (c *Config) SearchSpace() dab.SearchSpace {
	return dab.SearchSpace{LMin: c.Search.LMin, LMax: c.Search.LMax, Points: c.Search.Points}
}
