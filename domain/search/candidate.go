// Package search implements the coarse-to-fine beam search engine: S0
// coarse enumeration at the top pyramid level, S1 descent with ROI
// dilation and angle-window narrowing, and S2 finalization (NMS, top-K,
// subpixel/subdegree refinement).
package search

import "math"

// Candidate is one node in the beam: a window position, an angle, the
// pyramid level it was evaluated at, and its score. AngleIdx is a
// canonical ordering key derived from the angle (not a ladder slice
// index, since S1 evaluates angles the ladder never lists verbatim) so
// the tie-break stays total and comparable across levels.
type Candidate struct {
	X, Y     int
	AngleDeg float64
	AngleIdx int
	Score    float64
	Level    int
}

// Less implements the engine's strict tie-break: score descending, then
// y, x, angle index ascending (spec.md §3 "Candidate"). It is a total
// order, which is what makes reductions deterministic regardless of
// thread count.
func Less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.AngleIdx < b.AngleIdx
}

// angleIndex maps an angle to an integer step count from -180 degrees in
// units of minStepDeg, giving every angle evaluated anywhere in the
// engine (ladder entries and S1's finer, ladder-less angles alike) a
// single ascending ordering key.
func angleIndex(angleDeg, minStepDeg float64) int {
	if minStepDeg <= 0 {
		return 0
	}
	return int(math.Round((angleDeg + 180) / minStepDeg))
}
