package dab

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EvaluateCandidate evaluates one inductance against the target power:
// the phase shift is solved for the target (power is the fixed quantity
// per call; RequiredInductance is the dual), the waveform statistics and
// inductor losses are computed, and every constraint is checked
// independently. A violating candidate is returned, not discarded.
func EvaluateCandidate(p DABParameters, L float64, cons Constraints, lc LossCoefficients) (Candidate, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return Candidate{}, err
	}
	if err := checkInductance(L); err != nil {
		return Candidate{}, err
	}

	cand := Candidate{Inductance: L}
	d, err := PhaseShiftForPower(q, L)
	if err != nil {
		var (
			ue *UnachievableError
			re *OutOfRangeError
		)
		switch {
		case errors.As(err, &ue):
			// The target cannot be reached with this inductance. Keep
			// the candidate with a transfer violation so the caller sees
			// how far off it is.
			cand.Violations = append(cand.Violations, Violation{
				Constraint: ConstraintPowerTransfer,
				Value:      ue.TargetPower,
				Limit:      ue.MaxPower,
				Overshoot:  (ue.TargetPower - ue.MaxPower) / ue.MaxPower,
			})
		case errors.As(err, &re):
			// The solved phase shift sits below the configured floor
			// (a modulator resolution limit). Still a candidate, with
			// the undershoot recorded against the floor.
			cand.PhaseShift = re.PhaseShift
			cand.Violations = append(cand.Violations, Violation{
				Constraint: ConstraintPhaseShift,
				Value:      re.PhaseShift,
				Limit:      re.Min,
				Overshoot:  (re.Min - re.PhaseShift) / re.Min,
			})
		default:
			return Candidate{}, err
		}
		return cand, nil
	}
	cand.PhaseShift = d

	stats, err := WaveformStats(q, L, d)
	if err != nil {
		return Candidate{}, err
	}
	cand.Stats = stats
	cand.CopperLoss, cand.CoreLoss = EstimateInductorLoss(L, q.SwitchingFrequency, stats, lc)

	check := func(c Constraint, value, limit float64) {
		if limit > 0 && value > limit {
			cand.Violations = append(cand.Violations, Violation{
				Constraint: c,
				Value:      value,
				Limit:      limit,
				Overshoot:  (value - limit) / limit,
			})
		}
	}
	check(ConstraintRipple, stats.RippleRatio, cons.MaxRippleRatio)
	check(ConstraintPeakCurrent, stats.PeakCurrent, cons.MaxPeakCurrent)
	check(ConstraintLoss, cand.TotalLoss(), cons.MaxLoss)

	cand.Feasible = len(cand.Violations) == 0
	return cand, nil
}

// SelectInductor enumerates a deterministic logarithmic grid of candidate
// inductances, evaluates each against the target power and constraints,
// and returns the selection with the full candidate set. Among feasible
// candidates the lowest total inductor loss wins, ties broken by smaller
// ripple ratio, then smaller inductance. With no feasible candidate the
// one with the fewest violations wins (ties by smallest total normalized
// overshoot) and the selection is marked infeasible.
func SelectInductor(p DABParameters, cons Constraints, lc LossCoefficients, space SearchSpace) (Selection, error) {
	q := p.normalized()
	if err := q.Validate(); err != nil {
		return Selection{}, err
	}
	if space == (SearchSpace{}) {
		space = DefaultSearchSpace(q)
	}
	if err := checkInductance(space.LMin); err != nil {
		return Selection{}, err
	}
	if math.IsNaN(space.LMax) || math.IsInf(space.LMax, 0) || space.LMax <= space.LMin {
		return Selection{}, fmt.Errorf("%w: search space upper bound %v H must exceed lower bound %v H",
			ErrInvalidInput, space.LMax, space.LMin)
	}
	if space.Points < 2 {
		return Selection{}, fmt.Errorf("%w: search space must have >= 2 points, got %d",
			ErrInvalidInput, space.Points)
	}

	grid := floats.LogSpan(make([]float64, space.Points), space.LMin, space.LMax)
	sel := Selection{Candidates: make([]Candidate, 0, len(grid))}
	best := -1
	for _, l := range grid {
		cand, err := EvaluateCandidate(q, l, cons, lc)
		if err != nil {
			return Selection{}, err
		}
		sel.Candidates = append(sel.Candidates, cand)
		if best < 0 || better(cand, sel.Candidates[best]) {
			best = len(sel.Candidates) - 1
		}
	}
	sel.Best = sel.Candidates[best]
	sel.Feasible = sel.Best.Feasible
	return sel, nil
}

// better reports whether a should replace b as the running selection.
// Strict comparisons keep the earliest candidate on full ties, so the
// outcome is a pure function of the grid order.
func better(a, b Candidate) bool {
	if a.Feasible != b.Feasible {
		return a.Feasible
	}
	if a.Feasible {
		if a.TotalLoss() != b.TotalLoss() {
			return a.TotalLoss() < b.TotalLoss()
		}
		if a.Stats.RippleRatio != b.Stats.RippleRatio {
			return a.Stats.RippleRatio < b.Stats.RippleRatio
		}
		return a.Inductance < b.Inductance
	}
	if len(a.Violations) != len(b.Violations) {
		return len(a.Violations) < len(b.Violations)
	}
	return a.overshootSum() < b.overshootSum()
}
