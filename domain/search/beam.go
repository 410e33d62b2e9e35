package search

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/soocke/pyrmatch/domain/parallel"
	"github.com/soocke/pyrmatch/domain/preprocess"
	"github.com/soocke/pyrmatch/domain/score"
	"github.com/soocke/pyrmatch/domain/template"
)

// coarseEnumerate is S0: exhaustively score every valid window position at
// the coarsest searched level L for every ladder angle, keep the top
// per_angle_topk per angle, then the top beam_width overall. evaluated
// accumulates a count of scored windows for match.Stats; it never
// affects the deterministic result set.
func coarseEnumerate(ct *template.CompiledTemplate, ci *preprocess.CompiledImage, level int, cfg Config, evaluated *int64) []Candidate {
	img := ci.Pyramid.Level(level)
	tpl := ct.Pyramid.Level(level)
	maxX := img.Width - tpl.Width
	maxY := img.Height - tpl.Height
	if maxX < 0 || maxY < 0 {
		return nil
	}
	rows := maxY + 1

	angles := ct.Ladder.Degrees
	if !cfg.RotationEnabled {
		angles = []float64{0}
	}

	angleGroups := make([][]Candidate, len(angles))
	for ai, a := range angles {
		rt := ct.Rotated(level, a)
		rowGroups := make([][]Candidate, rows)
		parallel.For(rows, cfg.Parallel, func(ry int) {
			y := ry
			q := newBoundedQueue(cfg.PerAngleTopK)
			n := int64(0)
			for x := 0; x <= maxX; x++ {
				c := evalCandidate(ci, level, x, y, rt, ct.Ladder.MinStep, cfg)
				n++
				if c.Score < cfg.MinScore {
					continue
				}
				q.offer(c)
			}
			atomic.AddInt64(evaluated, n)
			rowGroups[ry] = q.all()
		})
		angleGroups[ai] = mergeTopK(rowGroups, cfg.PerAngleTopK)
	}
	return mergeTopK(angleGroups, cfg.BeamWidth)
}

// descendLevel is one iteration of S1: propagate the incoming beam to a
// finer level, evaluating an ROI around each candidate's doubled position
// and an angle window around its angle at that level's ladder step.
func descendLevel(ct *template.CompiledTemplate, ci *preprocess.CompiledImage, level, levelsBelowTop int, beam []Candidate, cfg Config, evaluated *int64) []Candidate {
	img := ci.Pyramid.Level(level)
	tpl := ct.Pyramid.Level(level)
	maxX := img.Width - tpl.Width
	maxY := img.Height - tpl.Height
	if maxX < 0 || maxY < 0 {
		return nil
	}
	step := ct.Ladder.StepAtLevel(levelsBelowTop)

	groups := make([][]Candidate, len(beam))
	var mu sync.Mutex
	parallel.For(len(beam), cfg.Parallel, func(bi int) {
		cand := beam[bi]
		cx, cy := cand.X*2, cand.Y*2
		x0, x1 := cx-cfg.ROIRadius, cx+cfg.ROIRadius
		y0, y1 := cy-cfg.ROIRadius, cy+cfg.ROIRadius
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 > maxX {
			x1 = maxX
		}
		if y1 > maxY {
			y1 = maxY
		}
		if x0 > x1 || y0 > y1 {
			return
		}

		var angles []float64
		if !cfg.RotationEnabled {
			angles = []float64{0}
		} else {
			for k := -cfg.AngleHalfRangeSteps; k <= cfg.AngleHalfRangeSteps; k++ {
				angles = append(angles, cand.AngleDeg+float64(k)*step)
			}
		}

		perAngle := make([][]Candidate, len(angles))
		for ai, a := range angles {
			rt := ct.Rotated(level, a)
			q := newBoundedQueue(cfg.PerAngleTopK)
			n := int64(0)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					c := evalCandidate(ci, level, x, y, rt, ct.Ladder.MinStep, cfg)
					n++
					if c.Score < cfg.MinScore {
						continue
					}
					q.offer(c)
				}
			}
			atomic.AddInt64(evaluated, n)
			perAngle[ai] = q.all()
		}

		mu.Lock()
		groups[bi] = mergeTopK(perAngle, cfg.PerAngleTopK)
		mu.Unlock()
	})

	return mergeTopK(groups, cfg.BeamWidth)
}

func evalCandidate(ci *preprocess.CompiledImage, level, x, y int, rt *template.RotatedTemplate, minStep float64, cfg Config) Candidate {
	s := score.Score(ci, level, x, y, rt, cfg.Metric, cfg.MinVarI)
	if math.IsNaN(s) {
		s = math.Inf(-1)
	}
	return Candidate{
		X:        x,
		Y:        y,
		AngleDeg: rt.AngleDeg,
		AngleIdx: angleIndex(rt.AngleDeg, minStep),
		Score:    s,
		Level:    level,
	}
}
