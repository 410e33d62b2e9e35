package template

import (
	"math"

	"modernc.org/mathutil"
)

// AngleLadder is a finite, strictly increasing sequence of angles in degrees
// within [-180, 180), built from a coarse top-of-ladder spacing and a finest
// descent-floor spacing. When rotation is disabled the ladder is {0}.
type AngleLadder struct {
	Degrees  []float64
	CoarseStep float64
	MinStep    float64
}

// BuildAngleLadder samples angles at coarseStepDeg spacing, anchored at 0 and
// ascending, starting at the smallest multiple of coarseStepDeg that is
// >= -180 and stopping before 180 (resolves spec.md's Open Question: anchor
// at 0, drop angles >= 180).
func BuildAngleLadder(coarseStepDeg, minStepDeg float64, rotationEnabled bool) *AngleLadder {
	if !rotationEnabled {
		return &AngleLadder{Degrees: []float64{0}, CoarseStep: coarseStepDeg, MinStep: minStepDeg}
	}
	if coarseStepDeg <= 0 {
		coarseStepDeg = 30
	}
	if minStepDeg <= 0 {
		minStepDeg = coarseStepDeg
	}
	var degs []float64
	// smallest multiple of coarseStepDeg that is >= -180
	k := math.Ceil(-180 / coarseStepDeg)
	for angle := k * coarseStepDeg; angle < 180; angle += coarseStepDeg {
		degs = append(degs, angle)
	}
	if len(degs) == 0 {
		degs = []float64{0}
	}
	return &AngleLadder{Degrees: degs, CoarseStep: coarseStepDeg, MinStep: minStepDeg}
}

// DividesFullCircleEvenly reports whether minStepDeg divides 360 degrees
// evenly, the condition under which the ladder invariant guarantees a 0
// degree entry. Angles are scaled to tenths of a degree (integers) so the
// check can use exact integer GCD arithmetic via modernc.org/mathutil
// instead of comparing floats.
func DividesFullCircleEvenly(minStepDeg float64) bool {
	if minStepDeg <= 0 {
		return false
	}
	stepTenths := int64(minStepDeg*10 + 0.5)
	if stepTenths <= 0 {
		return false
	}
	const fullCircleTenths = 3600
	g := int64(mathutil.GCDUint64(uint64(stepTenths), fullCircleTenths))
	return g == stepTenths
}

// StepAtLevel returns the ladder's angular spacing when descending to the
// given number of levels below the top (0 = top level), halving on each
// descent but never going below MinStep.
func (l *AngleLadder) StepAtLevel(levelsBelowTop int) float64 {
	step := l.CoarseStep
	for i := 0; i < levelsBelowTop; i++ {
		step /= 2
		if step < l.MinStep {
			return l.MinStep
		}
	}
	if step < l.MinStep {
		step = l.MinStep
	}
	return step
}

// Quantize maps an angle to the nearest multiple of MinStep, used as the
// lazy rotation cache key to avoid near-duplicate rotated templates.
func (l *AngleLadder) Quantize(angleDeg float64) float64 {
	if l.MinStep <= 0 {
		return angleDeg
	}
	steps := angleDeg / l.MinStep
	rounded := float64(int(steps + sign(steps)*0.5))
	return rounded * l.MinStep
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Neighbors returns the ladder indices within halfRange steps (inclusive) on
// each side of centerIdx, clamped to the ladder's bounds (no wraparound:
// the ladder does not repeat at its ends because it does not include both
// -180 and 180).
func (l *AngleLadder) Neighbors(centerIdx, halfRange int) []int {
	lo := centerIdx - halfRange
	hi := centerIdx + halfRange
	if lo < 0 {
		lo = 0
	}
	if hi > len(l.Degrees)-1 {
		hi = len(l.Degrees) - 1
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
