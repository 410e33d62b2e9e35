package search

import (
	"errors"

	"github.com/soocke/pyrmatch/domain/preprocess"
	"github.com/soocke/pyrmatch/domain/template"
)

// ErrNoMatch is returned when the pyramid has zero searchable levels, when
// every candidate scores below min_score at some level, or when NMS leaves
// nothing to report (spec.md §4.5 "Failure semantics"). It is a sentinel
// value, not a fault: callers are expected to check for it.
var ErrNoMatch = errors.New("search: no candidate survived")

// Stats reports non-deterministic, observability-only counters about one
// Search call (spec.md §5's "candidates evaluated" is never used to
// decide the result set).
type Stats struct {
	CandidatesEvaluated int64
	LevelsSearched      int
}

// Search runs the full S0/S1/S2 beam search state machine described in
// spec.md §4.5 and returns up to cfg.TopK refined results, best first.
func Search(ct *template.CompiledTemplate, ci *preprocess.CompiledImage, cfg Config) ([]Result, Stats, error) {
	var evaluated int64

	levels := ct.Pyramid.NumLevels()
	if n := ci.Pyramid.NumLevels(); n < levels {
		levels = n
	}
	if levels < 1 {
		return nil, Stats{}, ErrNoMatch
	}
	top := levels - 1
	stats := Stats{LevelsSearched: levels}

	beam := coarseEnumerate(ct, ci, top, cfg, &evaluated)
	if len(beam) == 0 {
		stats.CandidatesEvaluated = evaluated
		return nil, stats, ErrNoMatch
	}

	for level := top - 1; level >= 0; level-- {
		levelsBelowTop := top - level
		beam = descendLevel(ct, ci, level, levelsBelowTop, beam, cfg, &evaluated)
		if len(beam) == 0 {
			stats.CandidatesEvaluated = evaluated
			return nil, stats, ErrNoMatch
		}
	}
	stats.CandidatesEvaluated = evaluated

	finestStep := ct.Ladder.MinStep
	kept := nonMaxSuppress(beam, cfg.NMSRadius, finestStep)
	if len(kept) == 0 {
		return nil, stats, ErrNoMatch
	}

	k := cfg.TopK
	if k < 1 {
		k = 1
	}
	if len(kept) > k {
		kept = kept[:k]
	}

	results := make([]Result, len(kept))
	for i, c := range kept {
		results[i] = refine(ct, ci, c, cfg)
	}
	return results, stats, nil
}
