package sst

import (
	"fmt"
	"iter"

	"gonum.org/v1/gonum/floats"
)

// Sweep returns a lazy sequence of efficiency results over a linear grid
// of operating powers. Every point is computed independently from p when
// the sequence is ranged, so the sequence can be consumed partially and
// re-ranged from the start any number of times. Points the model rejects
// (for example a power level where the loss diverges) carry their error in
// SweepPoint.Err instead of terminating the sequence.
func Sweep(p SSTParameters, r PowerRange) (iter.Seq[SweepPoint], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := requirePositive("sweep minimum power", r.Min); err != nil {
		return nil, err
	}
	if err := requirePositive("sweep maximum power", r.Max); err != nil {
		return nil, err
	}
	if r.Max < r.Min {
		return nil, fmt.Errorf("%w: sweep maximum power %g W below minimum %g W", ErrInvalidInput, r.Max, r.Min)
	}
	if r.Steps < 2 {
		return nil, fmt.Errorf("%w: sweep steps must be >= 2, got %d", ErrInvalidInput, r.Steps)
	}

	grid := floats.Span(make([]float64, r.Steps), r.Min, r.Max)
	return func(yield func(SweepPoint) bool) {
		for _, pw := range grid {
			pt := SweepPoint{Power: pw}
			b, err := ComputePowerLosses(p, pw)
			if err == nil {
				pt.Losses = b
				pt.Efficiency, err = ComputeEfficiency(b, pw)
			}
			pt.Err = err
			if !yield(pt) {
				return
			}
		}
	}, nil
}
