package sst

// defaultSwitchCount is a full-bridge DAB stage: four switches per bridge.
const defaultSwitchCount = 8

// SwitchingModel maps switching frequency and operating current to a
// switching loss. The current dependence of real devices is not pinned
// down by datasheet coefficients alone, so the exponent/shape is a
// strategy; the selector and loss aggregation only see this interface.
type SwitchingModel interface {
	// Loss returns the total switching loss in Watts for the stage at
	// switching frequency freq [Hz] and operating current current [A].
	Loss(freq, current float64) float64
}

// LinearSwitching models the per-event energy as linear in the switched
// current: E = EnergyPerAmp * I, dissipated freq times per second in each
// of Switches devices.
type LinearSwitching struct {
	EnergyPerAmp float64 // J/A per event
	Switches     int
}

func (m LinearSwitching) Loss(freq, current float64) float64 {
	n := m.Switches
	if n <= 0 {
		n = defaultSwitchCount
	}
	if current < 0 {
		current = -current
	}
	return m.EnergyPerAmp * current * freq * float64(n)
}
