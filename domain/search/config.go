package search

import (
	"fmt"
	"math"

	"github.com/soocke/pyrmatch/domain/score"
)

// Config holds the search-time knobs of spec.md §6's MatchConfig table
// (the compile-time knobs live in template.CompileConfig).
type Config struct {
	Metric              score.Metric
	RotationEnabled     bool
	Parallel            bool
	BeamWidth           int
	PerAngleTopK        int
	NMSRadius           int
	ROIRadius           int
	AngleHalfRangeSteps int
	MinVarI             float64
	MinScore            float64
	TopK                int
}

// DefaultConfig returns spec.md §6's documented MatchConfig defaults.
func DefaultConfig() Config {
	return Config{
		Metric:              score.ZNCC,
		RotationEnabled:     false,
		Parallel:            false,
		BeamWidth:           6,
		PerAngleTopK:        3,
		NMSRadius:           4,
		ROIRadius:           6,
		AngleHalfRangeSteps: 1,
		MinVarI:             1e-8,
		MinScore:            math.Inf(-1),
		TopK:                1,
	}
}

// Validate reports an InvalidConfig-shaped error for out-of-range fields.
func (c Config) Validate() error {
	if c.BeamWidth < 1 {
		return fmt.Errorf("search: beam_width must be >= 1, got %d", c.BeamWidth)
	}
	if c.PerAngleTopK < 1 {
		return fmt.Errorf("search: per_angle_topk must be >= 1, got %d", c.PerAngleTopK)
	}
	if c.NMSRadius < 0 {
		return fmt.Errorf("search: nms_radius must be >= 0, got %d", c.NMSRadius)
	}
	if c.ROIRadius < 1 {
		return fmt.Errorf("search: roi_radius must be >= 1, got %d", c.ROIRadius)
	}
	if c.AngleHalfRangeSteps < 0 {
		return fmt.Errorf("search: angle_half_range_steps must be >= 0, got %d", c.AngleHalfRangeSteps)
	}
	if c.MinVarI < 0 {
		return fmt.Errorf("search: min_var_i must be >= 0, got %g", c.MinVarI)
	}
	if c.TopK < 1 {
		return fmt.Errorf("search: top_k must be >= 1, got %d", c.TopK)
	}
	return nil
}
