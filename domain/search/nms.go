package search

import (
	"math"

	"golang.org/x/exp/slices"
)

// nonMaxSuppress sorts by the full tie-break and greedily keeps a
// candidate only when it is not within nmsRadius pixels and within one
// finest angular step of an already-kept, higher-scoring candidate
// (spec.md §4.6).
func nonMaxSuppress(candidates []Candidate, nmsRadius int, finestAngleStep float64) []Candidate {
	sorted := append([]Candidate(nil), candidates...)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		switch {
		case Less(a, b):
			return -1
		case Less(b, a):
			return 1
		default:
			return 0
		}
	})

	kept := make([]Candidate, 0, len(sorted))
	for _, c := range sorted {
		suppressed := false
		for _, k := range kept {
			dx, dy := c.X-k.X, c.Y-k.Y
			dist2 := dx*dx + dy*dy
			if dist2 <= nmsRadius*nmsRadius && math.Abs(c.AngleDeg-k.AngleDeg) <= finestAngleStep {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, c)
		}
	}
	return kept
}
