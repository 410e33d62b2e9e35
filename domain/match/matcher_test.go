package match

import (
	"math"
	"testing"

	"github.com/soocke/pyrmatch/domain/pixel"
	"github.com/soocke/pyrmatch/domain/template"
	"github.com/soocke/pyrmatch/synth"
)

func randomImage(w, h int, seed uint32) *pixel.GrayImage {
	return synth.RandomTemplate(w, h, seed)
}

func embed(base, tpl *pixel.GrayImage, x, y int) {
	synth.Embed(base, tpl, x, y)
}

func TestMatcherFindsEmbeddedTemplate(t *testing.T) {
	tpl := randomImage(32, 32, 3)
	ct, err := template.Compile(tpl, template.DefaultCompileConfig())
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}

	img := pixel.NewGrayImage(128, 128)
	embed(img, tpl, 40, 60)

	m := NewMatcher(ct, nil)
	results, stats, err := m.Match(img, DefaultConfig())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected a result")
	}
	r := results[0]
	if math.Abs(r.X-40) > 1.5 || math.Abs(r.Y-60) > 1.5 {
		t.Fatalf("got (%v, %v), want near (40, 60)", r.X, r.Y)
	}
	if r.Score < 0.95 {
		t.Fatalf("score = %v, want >= 0.95", r.Score)
	}
	if stats.LevelsSearched < 1 {
		t.Fatalf("expected at least one level searched")
	}
}

func TestMatcherRejectsInvalidConfig(t *testing.T) {
	tpl := randomImage(16, 16, 4)
	ct, err := template.Compile(tpl, template.DefaultCompileConfig())
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}
	m := NewMatcher(ct, nil)
	img := pixel.NewGrayImage(64, 64)

	cfg := DefaultConfig()
	cfg.BeamWidth = 0
	_, _, err = m.Match(img, cfg)
	if err == nil {
		t.Fatalf("expected error for zero beam_width")
	}
	merr, ok := err.(*Error)
	if !ok || merr.Kind != InvalidConfig {
		t.Fatalf("err = %v, want *Error with Kind InvalidConfig", err)
	}
}

func TestMatcherRejectsImageSmallerThanTemplate(t *testing.T) {
	tpl := randomImage(32, 32, 5)
	ct, err := template.Compile(tpl, template.DefaultCompileConfig())
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}
	m := NewMatcher(ct, nil)
	img := pixel.NewGrayImage(16, 16)

	_, _, err = m.Match(img, DefaultConfig())
	merr, ok := err.(*Error)
	if !ok || merr.Kind != InvalidImage {
		t.Fatalf("err = %v, want *Error with Kind InvalidImage", err)
	}
}

func TestMatcherReturnsNoMatchOnUnrelatedNoise(t *testing.T) {
	tpl := randomImage(32, 32, 6)
	ct, err := template.Compile(tpl, template.DefaultCompileConfig())
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}
	m := NewMatcher(ct, nil)
	img := randomImage(128, 128, 99)

	cfg := DefaultConfig()
	cfg.MinScore = 0.99
	_, _, err = m.Match(img, cfg)
	merr, ok := err.(*Error)
	if !ok || merr.Kind != NoMatch {
		t.Fatalf("err = %v, want *Error with Kind NoMatch", err)
	}
}
