// Package config loads pyrmatch's two-part configuration (the template
// compiler's CompileConfig and the matcher's MatchConfig) from YAML,
// generalizing the teacher's config.Config/DefaultConfig/Validate trio
// to the pyramid/rotation engine's wider knob set.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/soocke/pyrmatch/domain/match"
	"github.com/soocke/pyrmatch/domain/template"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the resolved, typed configuration: debug logging plus the
// two domain configs matching spec.md §6's CompileConfig/MatchConfig
// split.
type Config struct {
	Debug   bool
	Compile template.CompileConfig
	Match   match.Config
}

// fileConfig is the YAML wire shape. It stays separate from the domain
// config types so neither template nor match needs to carry yaml tags.
type fileConfig struct {
	Debug   bool `yaml:"debug"`
	Compile struct {
		MaxLevels          int     `yaml:"max_levels"`
		CoarseStepDeg      float64 `yaml:"coarse_step_deg"`
		MinStepDeg         float64 `yaml:"min_step_deg"`
		FillValue          int     `yaml:"fill_value"`
		PrecomputeCoarsest bool    `yaml:"precompute_coarsest"`
		RotationEnabled    bool    `yaml:"rotation_enabled"`
		MinVarT            float64 `yaml:"min_var_t"`
	} `yaml:"compile"`
	Match struct {
		Metric              string  `yaml:"metric"`
		Rotation            string  `yaml:"rotation"`
		Parallel            bool    `yaml:"parallel"`
		MaxImageLevels      int     `yaml:"max_image_levels"`
		BeamWidth           int     `yaml:"beam_width"`
		PerAngleTopK        int     `yaml:"per_angle_topk"`
		NMSRadius           int     `yaml:"nms_radius"`
		ROIRadius           int     `yaml:"roi_radius"`
		AngleHalfRangeSteps int     `yaml:"angle_half_range_steps"`
		MinVarI             float64 `yaml:"min_var_i"`
		MinVarT             float64 `yaml:"min_var_t"`
		MinScore            float64 `yaml:"min_score"`
		TopK                int     `yaml:"top_k"`
	} `yaml:"match"`
}

func (fc fileConfig) toConfig() Config {
	return Config{
		Debug: fc.Debug,
		Compile: template.CompileConfig{
			MaxLevels:          fc.Compile.MaxLevels,
			CoarseStepDeg:      fc.Compile.CoarseStepDeg,
			MinStepDeg:         fc.Compile.MinStepDeg,
			FillValue:          byte(fc.Compile.FillValue),
			PrecomputeCoarsest: fc.Compile.PrecomputeCoarsest,
			RotationEnabled:    fc.Compile.RotationEnabled,
			MinVarT:            fc.Compile.MinVarT,
		},
		Match: match.Config{
			Metric:              fc.Match.Metric,
			RotationEnabled:     fc.Match.Rotation == "enabled",
			Parallel:            fc.Match.Parallel,
			MaxImageLevels:      fc.Match.MaxImageLevels,
			BeamWidth:           fc.Match.BeamWidth,
			PerAngleTopK:        fc.Match.PerAngleTopK,
			NMSRadius:           fc.Match.NMSRadius,
			ROIRadius:           fc.Match.ROIRadius,
			AngleHalfRangeSteps: fc.Match.AngleHalfRangeSteps,
			MinVarI:             fc.Match.MinVarI,
			MinVarT:             fc.Match.MinVarT,
			MinScore:            fc.Match.MinScore,
			TopK:                fc.Match.TopK,
		},
	}
}

// Default returns the compiled-in defaults (defaults.yaml), the same
// values spec.md §6 documents for CompileConfig and MatchConfig.
func Default() Config {
	var fc fileConfig
	if err := yaml.Unmarshal(defaultsYAML, &fc); err != nil {
		panic(fmt.Sprintf("config: embedded defaults.yaml is invalid: %v", err))
	}
	return fc.toConfig()
}

// DefaultPath returns the XDG-compliant config file path
// ($XDG_CONFIG_HOME/pyrmatch/config.yaml), creating the containing
// directory if necessary.
func DefaultPath() (string, error) {
	return xdg.ConfigFile("pyrmatch/config.yaml")
}

// Load reads and parses the YAML file at path. On any read error it
// falls back to Default() rather than failing, matching the teacher's
// "load, fall back to defaults on error" pattern; a parse error in an
// existing file is still reported, since that means the user's file is
// broken, not absent.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fc.toConfig(), nil
}

// Validate checks both halves of cfg, returning the first error found.
func (c Config) Validate() error {
	if err := c.Compile.Validate(); err != nil {
		return err
	}
	return c.Match.Validate()
}
