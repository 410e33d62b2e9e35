package match

import "time"

// Stats generalizes the teacher's CaptureStats: observability data
// returned alongside the result set, never used to decide it.
type Stats struct {
	CandidatesEvaluated int64
	LevelsSearched      int
	Elapsed             time.Duration
}
