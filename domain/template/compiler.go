package template

import (
	"fmt"

	"github.com/soocke/pyrmatch/domain/pixel"
)

// CompileConfig configures how a raw template raster is turned into a
// CompiledTemplate. RotationEnabled decides whether the angle ladder built
// at compile time contains more than the {0} entry; a Matcher later decides,
// via its own MatchConfig, whether to actually search the non-zero entries,
// so the same CompiledTemplate can serve both rotation-enabled and
// rotation-disabled matches as long as it was compiled with rotation on.
type CompileConfig struct {
	MaxLevels          int
	CoarseStepDeg      float64
	MinStepDeg         float64
	FillValue          byte
	PrecomputeCoarsest bool
	RotationEnabled    bool
	MinVarT            float64
}

// DefaultCompileConfig returns the documented defaults (spec.md §6).
func DefaultCompileConfig() CompileConfig {
	return CompileConfig{
		MaxLevels:          4,
		CoarseStepDeg:      30.0,
		MinStepDeg:         7.5,
		FillValue:          0,
		PrecomputeCoarsest: true,
		RotationEnabled:    false,
		MinVarT:            1e-8,
	}
}

// Validate reports an InvalidConfig-shaped error for out-of-range fields.
func (c CompileConfig) Validate() error {
	if c.MaxLevels < 1 {
		return fmt.Errorf("template: max_levels must be >= 1, got %d", c.MaxLevels)
	}
	if c.CoarseStepDeg <= 0 {
		return fmt.Errorf("template: coarse_step_deg must be > 0, got %g", c.CoarseStepDeg)
	}
	if c.MinStepDeg <= 0 || c.MinStepDeg > c.CoarseStepDeg {
		return fmt.Errorf("template: min_step_deg must be in (0, coarse_step_deg], got %g", c.MinStepDeg)
	}
	if c.MinVarT < 0 {
		return fmt.Errorf("template: min_var_t must be >= 0, got %g", c.MinVarT)
	}
	return nil
}

const minPyramidSide = 4

// CompiledTemplate owns the template pyramid, the angle ladder, and a lazy
// (or eager, when PrecomputeCoarsest) per-(level, angle) rotation cache.
// It is read-only after Compile returns; a Matcher borrows it for the
// duration of its calls and never mutates it beyond the rotation cache's
// internal bookkeeping.
type CompiledTemplate struct {
	Pyramid *pixel.Pyramid
	Ladder  *AngleLadder
	Config  CompileConfig

	cache *rotationCache
}

// Compile builds a CompiledTemplate from a raw template raster. It fails
// with an error when either dimension is zero or the template is
// degenerate (a single unique value, making ZNCC's variance undefined).
func Compile(raw *pixel.GrayImage, cfg CompileConfig) (*CompiledTemplate, error) {
	if raw.Width == 0 || raw.Height == 0 {
		return nil, fmt.Errorf("template: zero-sized template %dx%d", raw.Width, raw.Height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if isConstant(raw) {
		return nil, fmt.Errorf("template: degenerate (constant-intensity) template, ZNCC variance is zero")
	}

	pyr := pixel.BuildPyramid(raw, cfg.MaxLevels, minPyramidSide)
	ladder := BuildAngleLadder(cfg.CoarseStepDeg, cfg.MinStepDeg, cfg.RotationEnabled)

	ct := &CompiledTemplate{
		Pyramid: pyr,
		Ladder:  ladder,
		Config:  cfg,
		cache:   newRotationCache(pyr.NumLevels() * (len(ladder.Degrees) + 1)),
	}

	if cfg.PrecomputeCoarsest {
		top := pyr.NumLevels() - 1
		for _, a := range ladder.Degrees {
			ct.Rotated(top, a)
		}
	} else {
		// Without the coarsest-level precompute, the identity entry is
		// materialized verbatim for every level instead; it is the common case
		// (rotation disabled, or the angle-0 candidate of a rotation-enabled
		// search).
		for lvl := 0; lvl < pyr.NumLevels(); lvl++ {
			ct.Rotated(lvl, 0)
		}
	}

	return ct, nil
}

// Rotated returns (building and caching if necessary) the RotatedTemplate
// for the given level and angle. The angle is quantized to the ladder's
// finest step before lookup so near-duplicate rotations collapse to one
// cache entry, per spec.md §4.2.
func (ct *CompiledTemplate) Rotated(level int, angleDeg float64) *RotatedTemplate {
	q := ct.Ladder.Quantize(angleDeg)
	return ct.cache.getOrBuild(level, q, func() *RotatedTemplate {
		lvl := ct.Pyramid.Level(level)
		return BuildRotatedTemplate(lvl, level, q, ct.Config.FillValue, ct.Config.MinVarT)
	})
}

func isConstant(img *pixel.GrayImage) bool {
	if len(img.Pix) == 0 {
		return true
	}
	first := img.At(0, 0)
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for _, v := range row {
			if v != first {
				return false
			}
		}
	}
	return true
}
