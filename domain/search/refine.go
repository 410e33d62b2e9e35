package search

import (
	"github.com/soocke/pyrmatch/domain/preprocess"
	"github.com/soocke/pyrmatch/domain/score"
	"github.com/soocke/pyrmatch/domain/template"
)

// Result is the engine's output for one kept candidate after subpixel and
// subdegree refinement: possibly-fractional finest-level coordinates, the
// refined angle normalized to (-180, 180], and the unrefined integer-grid
// score the candidate was kept on.
type Result struct {
	X, Y     float64
	AngleDeg float64
	Score    float64
	Level    int
}

// refine fits a separable 3-point parabola independently to x, y and
// angle around c and reports the analytic extremum, clamped to one unit
// of the respective step (SPEC_FULL.md §6, resolving spec.md's open
// question on the exact refinement formula).
func refine(ct *template.CompiledTemplate, ci *preprocess.CompiledImage, c Candidate, cfg Config) Result {
	img := ci.Pyramid.Level(c.Level)
	tpl := ct.Pyramid.Level(c.Level)
	maxX := img.Width - tpl.Width
	maxY := img.Height - tpl.Height

	rt := ct.Rotated(c.Level, c.AngleDeg)

	x := float64(c.X)
	if c.X-1 >= 0 && c.X+1 <= maxX {
		sMinus := score.Score(ci, c.Level, c.X-1, c.Y, rt, cfg.Metric, cfg.MinVarI)
		sPlus := score.Score(ci, c.Level, c.X+1, c.Y, rt, cfg.Metric, cfg.MinVarI)
		x += parabolicOffset(sMinus, c.Score, sPlus)
	}

	y := float64(c.Y)
	if c.Y-1 >= 0 && c.Y+1 <= maxY {
		sMinus := score.Score(ci, c.Level, c.X, c.Y-1, rt, cfg.Metric, cfg.MinVarI)
		sPlus := score.Score(ci, c.Level, c.X, c.Y+1, rt, cfg.Metric, cfg.MinVarI)
		y += parabolicOffset(sMinus, c.Score, sPlus)
	}

	angle := c.AngleDeg
	if cfg.RotationEnabled && ct.Ladder.MinStep > 0 {
		step := ct.Ladder.MinStep
		cx, cy := clampInt(c.X, 0, maxX), clampInt(c.Y, 0, maxY)
		rtMinus := ct.Rotated(c.Level, c.AngleDeg-step)
		rtPlus := ct.Rotated(c.Level, c.AngleDeg+step)
		sMinus := score.Score(ci, c.Level, cx, cy, rtMinus, cfg.Metric, cfg.MinVarI)
		sPlus := score.Score(ci, c.Level, cx, cy, rtPlus, cfg.Metric, cfg.MinVarI)
		angle += parabolicOffset(sMinus, c.Score, sPlus) * step
	}

	return Result{X: x, Y: y, AngleDeg: normalizeAngle(angle), Score: c.Score, Level: c.Level}
}

// parabolicOffset is the 3-point parabolic fit of spec.md's Open Question
// resolution: 0.5*(s- - s+)/(s- - 2*s0 + s+) when the neighborhood is
// concave down (a real interior maximum), clamped to [-1, 1]; otherwise no
// refinement is applied.
func parabolicOffset(sMinus, sZero, sPlus float64) float64 {
	denom := sMinus - 2*sZero + sPlus
	if denom >= -1e-12 {
		return 0
	}
	offset := 0.5 * (sMinus - sPlus) / denom
	if offset > 1 {
		offset = 1
	}
	if offset < -1 {
		offset = -1
	}
	return offset
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalizeAngle maps a to (-180, 180], per spec.md §4.6.
func normalizeAngle(a float64) float64 {
	for a <= -180 {
		a += 360
	}
	for a > 180 {
		a -= 360
	}
	return a
}
