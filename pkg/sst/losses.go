package sst

import (
	"fmt"
	"math"
)

// ComputePowerLosses maps an operating power to its per-mechanism loss
// breakdown. operatingPower is the power entering the stage in Watts; it
// must be positive and no more than RatedPower*OverloadMargin. Overload is
// reported, never clamped, so a sizing error cannot hide behind a quietly
// truncated input.
func ComputePowerLosses(p SSTParameters, operatingPower float64) (LossBreakdown, error) {
	if err := p.Validate(); err != nil {
		return LossBreakdown{}, err
	}
	q := p.normalized()
	if err := requirePositive("operating power", operatingPower); err != nil {
		return LossBreakdown{}, err
	}
	if limit := q.RatedPower * q.OverloadMargin; operatingPower > limit {
		return LossBreakdown{}, fmt.Errorf("%w: %g W exceeds %g W (rated %g W x margin %g)",
			ErrOverload, operatingPower, limit, q.RatedPower, q.OverloadMargin)
	}

	// Port currents implied by the operating power. Two switches conduct
	// at any instant in each full bridge.
	iPri := operatingPower / q.InputVoltage
	iSec := operatingPower / q.OutputVoltage
	conduction := 2*q.RonPrimary*iPri*iPri + 2*q.RonSecondary*iSec*iSec

	switching := q.switchingModel().Loss(q.SwitchingFrequency, iSec)

	// Flux-swing proxy: mean applied volt-seconds over a quarter period,
	// with the secondary referred through the turns ratio.
	flux := (q.InputVoltage + q.TurnsRatio*q.OutputVoltage) / (4 * q.SwitchingFrequency)
	magnetic := q.CoreLossCoeff*q.SwitchingFrequency*flux*flux + q.InductorLoss

	return LossBreakdown{
		Conduction: conduction,
		Switching:  switching,
		Magnetic:   magnetic,
		Total:      conduction + switching + magnetic,
	}, nil
}

// ComputeEfficiency derives output power and efficiency from a loss
// breakdown at the given operating (input) power. A total loss at or above
// the operating power means the parameterization is unphysical and fails
// with ErrDivergentModel.
func ComputeEfficiency(b LossBreakdown, operatingPower float64) (EfficiencyResult, error) {
	if err := requirePositive("operating power", operatingPower); err != nil {
		return EfficiencyResult{}, err
	}
	if b.Total < 0 || math.IsNaN(b.Total) {
		return EfficiencyResult{}, fmt.Errorf("%w: negative total loss %g W", ErrDivergentModel, b.Total)
	}
	if b.Total >= operatingPower {
		return EfficiencyResult{}, fmt.Errorf("%w: total loss %g W leaves no output at %g W operating power",
			ErrDivergentModel, b.Total, operatingPower)
	}
	out := operatingPower - b.Total
	return EfficiencyResult{
		OperatingPower: operatingPower,
		OutputPower:    out,
		TotalLoss:      b.Total,
		Efficiency:     out / operatingPower,
	}, nil
}

// ThermalAnalysis applies the lumped junction model: temperature rise is
// total loss times the configured thermal resistance above ambient [°C].
func ThermalAnalysis(p SSTParameters, operatingPower, ambient float64) (ThermalResult, error) {
	b, err := ComputePowerLosses(p, operatingPower)
	if err != nil {
		return ThermalResult{}, err
	}
	rise := b.Total * p.normalized().ThermalResistance
	return ThermalResult{
		Ambient:  ambient,
		Rise:     rise,
		Junction: ambient + rise,
	}, nil
}

// DCLinkVoltage returns the DC link produced by a three-phase rectifier
// fed from the given line-to-line RMS voltage.
func DCLinkVoltage(lineToLine float64) (float64, error) {
	if err := requirePositive("line-to-line voltage", lineToLine); err != nil {
		return 0, err
	}
	return 1.35 * lineToLine * math.Sqrt2, nil
}

// TransformerTurnsRatio sizes the isolation transformer (N_sec/N_prim)
// from the line voltages on either side of the stage, assuming matching
// rectifier structures.
func TransformerTurnsRatio(inputLineToLine, outputLineToLine float64) (float64, error) {
	if err := requirePositive("input line-to-line voltage", inputLineToLine); err != nil {
		return 0, err
	}
	if err := requirePositive("output line-to-line voltage", outputLineToLine); err != nil {
		return 0, err
	}
	vin, _ := DCLinkVoltage(inputLineToLine)
	vout, _ := DCLinkVoltage(outputLineToLine)
	return vout / vin, nil
}
