package types

import "fmt"

// Henries is a float64 wrapper representing an inductance in Henries.
type Henries float64

// Humanized returns a human-readable string with automatic unit (nH, µH, mH, H).
func (h Henries) Humanized() string {
	v := float64(h)
	switch {
	case v >= 1:
		return fmt.Sprintf("%.2f H", v)
	case v >= 1e-3:
		return fmt.Sprintf("%.2f mH", v*1e3)
	case v >= 1e-6:
		return fmt.Sprintf("%.2f µH", v*1e6)
	default:
		return fmt.Sprintf("%.2f nH", v*1e9)
	}
}

// Micro returns the inductance in microhenries.
func (h Henries) Micro() float64 { return float64(h) * 1e6 }

// Watts is a float64 wrapper representing a power in Watts.
type Watts float64

// Humanized returns a human-readable string with automatic unit (W, kW, MW).
func (w Watts) Humanized() string {
	v := float64(w)
	if v < 0 {
		v = -v
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MW", float64(w)*1e-6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f kW", float64(w)*1e-3)
	default:
		return fmt.Sprintf("%.2f W", float64(w))
	}
}

// Kilo returns the power in kilowatts.
func (w Watts) Kilo() float64 { return float64(w) * 1e-3 }

// Hertz is a float64 wrapper representing a frequency in Hertz.
type Hertz float64

// Humanized returns a human-readable string with automatic unit (Hz, kHz, MHz).
func (f Hertz) Humanized() string {
	v := float64(f)
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v*1e-6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f kHz", v*1e-3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}

// Amperes is a float64 wrapper representing a current in Amperes.
type Amperes float64

// Humanized returns a human-readable string in Amperes.
func (a Amperes) Humanized() string { return fmt.Sprintf("%.2f A", float64(a)) }
