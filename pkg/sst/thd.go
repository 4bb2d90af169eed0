package sst

import (
	"fmt"
	"math"
)

// Harmonic is one spectral line of the output waveform.
type Harmonic struct {
	Order     int     // 1 = fundamental
	Magnitude float64 // same unit for every line; THD is unit-free
}

// Spectrum is a set of harmonics. Order within the slice is irrelevant;
// duplicate orders are a caller error, not summed.
type Spectrum []Harmonic

// ComputeTHD returns total harmonic distortion: the RMS of all harmonics
// of order >= 2 divided by the fundamental magnitude.
func ComputeTHD(s Spectrum) (float64, error) {
	var (
		fundamental float64
		haveFund    bool
		sumSq       float64
	)
	seen := make(map[int]struct{}, len(s))
	for _, h := range s {
		if h.Order < 1 {
			return 0, fmt.Errorf("%w: harmonic order must be >= 1, got %d", ErrInvalidInput, h.Order)
		}
		if math.IsNaN(h.Magnitude) || math.IsInf(h.Magnitude, 0) || h.Magnitude < 0 {
			return 0, fmt.Errorf("%w: magnitude of harmonic %d must be finite and >= 0, got %v",
				ErrInvalidInput, h.Order, h.Magnitude)
		}
		if _, dup := seen[h.Order]; dup {
			return 0, fmt.Errorf("%w: duplicate harmonic order %d", ErrInvalidInput, h.Order)
		}
		seen[h.Order] = struct{}{}
		if h.Order == 1 {
			fundamental = h.Magnitude
			haveFund = true
		} else {
			sumSq += h.Magnitude * h.Magnitude
		}
	}
	if !haveFund || fundamental == 0 {
		return 0, ErrMissingFundamental
	}
	return math.Sqrt(sumSq) / fundamental, nil
}
