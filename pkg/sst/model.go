package sst

import (
	"fmt"
	"math"
)

// SSTParameters describes one solid-state-transformer design point for the
// DC-DC (DAB) stage. All coefficients live here so every computation is a
// pure function of its visible arguments; nothing is read from globals.
// Units:
//   - InputVoltage/OutputVoltage: Volts (DC port voltages of the stage)
//   - RatedPower: Watts
//   - SwitchingFrequency: Hertz
//   - RonPrimary/RonSecondary: Ohms, drain-source on-resistance per switch
//   - SwitchingEnergyPerAmp: Joules per Ampere per switching event
//   - CoreLossCoeff: Watts per Hertz per squared Weber of flux swing
//   - TurnsRatio: N_prim/N_sec (1 for a unity transformer)
//   - OverloadMargin: multiple of RatedPower still accepted as operating power
//   - ThermalResistance: Kelvin per Watt, lumped junction-to-ambient
//   - InductorLoss: Watts, optional extra magnetic term contributed by a
//     separately selected link inductor (0 if none)
type SSTParameters struct {
	InputVoltage          float64
	OutputVoltage         float64
	RatedPower            float64
	SwitchingFrequency    float64
	RonPrimary            float64
	RonSecondary          float64
	SwitchingEnergyPerAmp float64
	CoreLossCoeff         float64
	TurnsRatio            float64
	OverloadMargin        float64
	ThermalResistance     float64
	InductorLoss          float64

	// Switching selects the switching-loss strategy. Nil means
	// LinearSwitching built from SwitchingEnergyPerAmp.
	Switching SwitchingModel
}

// DefaultParameters returns a parameter set for the reference 10 kW design
// (600 V / 400 V ports, 50 kHz, SiC full bridges).
func DefaultParameters() SSTParameters {
	return SSTParameters{
		InputVoltage:          600,
		OutputVoltage:         400,
		RatedPower:            10e3,
		SwitchingFrequency:    50e3,
		RonPrimary:            80e-3,
		RonSecondary:          21e-3,
		SwitchingEnergyPerAmp: 10e-6,
		CoreLossCoeff:         12,
		TurnsRatio:            1,
		OverloadMargin:        1.2,
		ThermalResistance:     0.5e-3,
	}
}

// normalized fills the defaultable fields that a zero value leaves unset.
func (p SSTParameters) normalized() SSTParameters {
	if p.TurnsRatio == 0 {
		p.TurnsRatio = 1
	}
	if p.OverloadMargin == 0 {
		p.OverloadMargin = 1
	}
	return p
}

// Validate checks every field against its physical domain. The returned
// error wraps ErrInvalidInput and names the offending field.
func (p SSTParameters) Validate() error {
	q := p.normalized()
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"input voltage", q.InputVoltage},
		{"output voltage", q.OutputVoltage},
		{"rated power", q.RatedPower},
		{"switching frequency", q.SwitchingFrequency},
		{"turns ratio", q.TurnsRatio},
		{"overload margin", q.OverloadMargin},
	} {
		if err := requirePositive(f.name, f.v); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"primary on-resistance", q.RonPrimary},
		{"secondary on-resistance", q.RonSecondary},
		{"switching energy per amp", q.SwitchingEnergyPerAmp},
		{"core loss coefficient", q.CoreLossCoeff},
		{"thermal resistance", q.ThermalResistance},
		{"inductor loss", q.InductorLoss},
	} {
		if err := requireNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

func (p SSTParameters) switchingModel() SwitchingModel {
	if p.Switching != nil {
		return p.Switching
	}
	return LinearSwitching{EnergyPerAmp: p.SwitchingEnergyPerAmp, Switches: defaultSwitchCount}
}

// LossBreakdown is the per-mechanism dissipation of the stage at one
// operating point. Total is always the exact sum of the three named
// contributions; there is no hidden term.
type LossBreakdown struct {
	Conduction float64 // W
	Switching  float64 // W
	Magnetic   float64 // W
	Total      float64 // W
}

// EfficiencyResult relates an operating power to the loss it incurs.
// OperatingPower is the power entering the stage; OutputPower is what
// leaves after TotalLoss.
type EfficiencyResult struct {
	OperatingPower float64 // W
	OutputPower    float64 // W
	TotalLoss      float64 // W
	Efficiency     float64 // (0,1]
}

// ThermalResult is the lumped thermal picture at one operating point.
type ThermalResult struct {
	Ambient  float64 // °C
	Rise     float64 // K
	Junction float64 // °C
}

// PowerRange is a closed linear interval of operating powers sampled at
// Steps points (endpoints included).
type PowerRange struct {
	Min   float64 // W
	Max   float64 // W
	Steps int
}

// SweepPoint is one element of an efficiency sweep. Err is non-nil when
// the model rejected this power level; Losses/Efficiency are then zero.
type SweepPoint struct {
	Power      float64
	Losses     LossBreakdown
	Efficiency EfficiencyResult
	Err        error
}

func requirePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidInput, name, v)
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidInput, name, v)
	}
	return nil
}

func requireNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidInput, name, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidInput, name, v)
	}
	return nil
}
