package match

import (
	"github.com/soocke/pyrmatch/domain/score"
	"github.com/soocke/pyrmatch/domain/search"
)

// Config is spec.md §6's MatchConfig. MinVarT is not read by the Matcher:
// the rotated-template denominator is precomputed at compile time, so the
// template-side floor in effect is always the template.CompileConfig.MinVarT
// the template was compiled with, whatever this field holds.
type Config struct {
	Metric              string
	RotationEnabled     bool
	Parallel            bool
	MaxImageLevels      int
	BeamWidth           int
	PerAngleTopK        int
	NMSRadius           int
	ROIRadius           int
	AngleHalfRangeSteps int
	MinVarI             float64
	MinVarT             float64
	MinScore            float64
	TopK                int
}

// DefaultConfig returns spec.md §6's documented defaults.
func DefaultConfig() Config {
	sd := search.DefaultConfig()
	return Config{
		Metric:              "zncc",
		RotationEnabled:     false,
		Parallel:            false,
		MaxImageLevels:      4,
		BeamWidth:           sd.BeamWidth,
		PerAngleTopK:        sd.PerAngleTopK,
		NMSRadius:           sd.NMSRadius,
		ROIRadius:           sd.ROIRadius,
		AngleHalfRangeSteps: sd.AngleHalfRangeSteps,
		MinVarI:             sd.MinVarI,
		MinVarT:             1e-8,
		MinScore:            sd.MinScore,
		TopK:                1,
	}
}

// Validate reports an *Error with Kind InvalidConfig for any field out of
// its legal range, without constructing a Matcher.
func (c Config) Validate() error {
	_, err := c.toSearchConfig()
	if err != nil {
		return err
	}
	return nil
}

// toSearchConfig validates and lowers a Config into the internal
// search.Config, failing with InvalidConfig on anything out of range
// (spec.md §6 "fails synchronously at construction").
func (c Config) toSearchConfig() (search.Config, *Error) {
	metric, err := score.ParseMetric(c.Metric)
	if err != nil {
		return search.Config{}, newError(InvalidConfig, "%v", err)
	}
	if c.MaxImageLevels < 1 {
		return search.Config{}, newError(InvalidConfig, "max_image_levels must be >= 1, got %d", c.MaxImageLevels)
	}
	sc := search.Config{
		Metric:              metric,
		RotationEnabled:     c.RotationEnabled,
		Parallel:            c.Parallel,
		BeamWidth:           c.BeamWidth,
		PerAngleTopK:        c.PerAngleTopK,
		NMSRadius:           c.NMSRadius,
		ROIRadius:           c.ROIRadius,
		AngleHalfRangeSteps: c.AngleHalfRangeSteps,
		MinVarI:             c.MinVarI,
		MinScore:            c.MinScore,
		TopK:                c.TopK,
	}
	if verr := sc.Validate(); verr != nil {
		return search.Config{}, newError(InvalidConfig, "%v", verr)
	}
	return sc, nil
}
