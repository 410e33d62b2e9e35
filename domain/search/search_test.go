package search

import (
	"math"
	"testing"

	"github.com/soocke/pyrmatch/domain/pixel"
	"github.com/soocke/pyrmatch/domain/preprocess"
	"github.com/soocke/pyrmatch/domain/score"
	"github.com/soocke/pyrmatch/domain/template"
	"github.com/soocke/pyrmatch/synth"
)

func randomTemplate(w, h int, seed uint32) *pixel.GrayImage {
	return synth.RandomTemplate(w, h, seed)
}

func embed(base *pixel.GrayImage, tpl *pixel.GrayImage, x, y int) {
	synth.Embed(base, tpl, x, y)
}

func compileBoth(t *testing.T, img *pixel.GrayImage, tpl *pixel.GrayImage, rotationEnabled bool) (*template.CompiledTemplate, *preprocess.CompiledImage) {
	t.Helper()
	tcfg := template.DefaultCompileConfig()
	tcfg.RotationEnabled = rotationEnabled
	ct, err := template.Compile(tpl, tcfg)
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}
	ci, err := preprocess.Compile(img, tcfg.MaxLevels, ct.Pyramid.NumLevels(), false)
	if err != nil {
		t.Fatalf("preprocess.Compile: %v", err)
	}
	return ct, ci
}

// Scenario 1 of spec.md §8: a 128x128 zero image with a random 32x32
// template embedded at (40, 60), rotation disabled.
func TestSearchFindsEmbeddedTemplate(t *testing.T) {
	img := pixel.NewGrayImage(128, 128)
	tpl := randomTemplate(32, 32, 7)
	embed(img, tpl, 40, 60)

	ct, ci := compileBoth(t, img, tpl, false)
	cfg := DefaultConfig()
	results, _, err := Search(ct, ci, cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected at least one result")
	}
	r := results[0]
	if math.Abs(r.X-40) > 1.5 || math.Abs(r.Y-60) > 1.5 {
		t.Fatalf("got (%v, %v), want near (40, 60)", r.X, r.Y)
	}
	if r.Score < 0.95 {
		t.Fatalf("score = %v, want >= 0.95", r.Score)
	}
}

// Scenario 2: two embeddings, top-2 requested.
func TestSearchTopKFindsBothEmbeddings(t *testing.T) {
	img := pixel.NewGrayImage(128, 128)
	tpl := randomTemplate(24, 24, 11)
	embed(img, tpl, 20, 20)
	embed(img, tpl, 80, 80)

	ct, ci := compileBoth(t, img, tpl, false)
	cfg := DefaultConfig()
	cfg.TopK = 2
	cfg.BeamWidth = 12
	cfg.PerAngleTopK = 8
	results, _, err := Search(ct, ci, cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Score < 0.9 {
			t.Fatalf("score = %v, want >= 0.9", r.Score)
		}
		near20 := math.Abs(r.X-20) <= 1 && math.Abs(r.Y-20) <= 1
		near80 := math.Abs(r.X-80) <= 1 && math.Abs(r.Y-80) <= 1
		if !near20 && !near80 {
			t.Fatalf("result (%v, %v) not near either embedding", r.X, r.Y)
		}
	}
}

// Scenario 4: no embedding, background noise only.
func TestSearchOnNoiseScoresLow(t *testing.T) {
	img := randomTemplate(128, 128, 21)
	tpl := randomTemplate(32, 32, 22)

	ct, ci := compileBoth(t, img, tpl, false)
	cfg := DefaultConfig()
	results, _, err := Search(ct, ci, cfg)
	if err == ErrNoMatch {
		return
	}
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].Score >= 0.8 {
		t.Fatalf("score = %v on unrelated noise, want < 0.8", results[0].Score)
	}
}

// Scenario 5: illumination invariance under ZNCC (gain 1.25, bias +14).
func TestSearchIlluminationInvariance(t *testing.T) {
	img := pixel.NewGrayImage(96, 96)
	tpl := randomTemplate(24, 24, 33)
	lit := synth.ApplyGainBias(tpl, 1.25, 14)
	embed(img, lit, 30, 40)

	ct, ci := compileBoth(t, img, tpl, false)
	cfg := DefaultConfig()
	results, _, err := Search(ct, ci, cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	r := results[0]
	if math.Abs(r.X-30) > 3 || math.Abs(r.Y-40) > 3 {
		t.Fatalf("got (%v, %v), want near (30, 40)", r.X, r.Y)
	}
	if r.Score < 0.9 {
		t.Fatalf("score = %v, want >= 0.9", r.Score)
	}
}

func TestSearchSSDIdentityIsBestAtZero(t *testing.T) {
	img := pixel.NewGrayImage(96, 96)
	tpl := randomTemplate(20, 20, 44)
	embed(img, tpl, 50, 10)

	ct, ci := compileBoth(t, img, tpl, false)
	cfg := DefaultConfig()
	cfg.Metric = score.SSD
	results, _, err := Search(ct, ci, cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	r := results[0]
	if r.Score > 0 {
		t.Fatalf("SSD score = %v, want <= 0", r.Score)
	}
	if math.Abs(r.X-50) > 1.5 || math.Abs(r.Y-10) > 1.5 {
		t.Fatalf("got (%v, %v), want near (50, 10)", r.X, r.Y)
	}
}

func TestSearchReturnsNoMatchWhenTemplateLargerThanImage(t *testing.T) {
	img := pixel.NewGrayImage(16, 16)
	tpl := randomTemplate(32, 32, 55)

	tcfg := template.DefaultCompileConfig()
	ct, err := template.Compile(tpl, tcfg)
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}
	ci, err := preprocess.Compile(img, tcfg.MaxLevels, ct.Pyramid.NumLevels(), false)
	if err != nil {
		t.Fatalf("preprocess.Compile: %v", err)
	}
	_, _, err = Search(ct, ci, DefaultConfig())
	if err != ErrNoMatch {
		t.Fatalf("Search = %v, want ErrNoMatch", err)
	}
}

// Scenario 3: a template rotated by a known ladder angle must be found
// with its angle recovered within min_step_deg.
func TestSearchRecoversRotationAngle(t *testing.T) {
	img := pixel.NewGrayImage(96, 96)
	tpl := randomTemplate(24, 24, 77)
	const wantAngle = 30.0
	rotated, _ := pixel.RotateBilinear(tpl, wantAngle, 0)
	embed(img, rotated, 32, 32)

	ct, ci := compileBoth(t, img, tpl, true)
	cfg := DefaultConfig()
	cfg.RotationEnabled = true
	cfg.BeamWidth = 12
	cfg.PerAngleTopK = 6
	results, _, err := Search(ct, ci, cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	r := results[0]
	if math.Abs(r.X-32) > 4 || math.Abs(r.Y-32) > 4 {
		t.Fatalf("got (%v, %v), want within 4px of (32, 32)", r.X, r.Y)
	}
	if math.Abs(r.AngleDeg-wantAngle) > ct.Config.MinStepDeg {
		t.Fatalf("angle = %v, want within min_step_deg of %v", r.AngleDeg, wantAngle)
	}
}

func TestSearchDeterministicAcrossParallelModes(t *testing.T) {
	img := pixel.NewGrayImage(96, 96)
	tpl := randomTemplate(24, 24, 66)
	embed(img, tpl, 33, 47)

	tcfg := template.DefaultCompileConfig()
	ctSeq, err := template.Compile(tpl, tcfg)
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}
	ciSeq, err := preprocess.Compile(img, tcfg.MaxLevels, ctSeq.Pyramid.NumLevels(), false)
	if err != nil {
		t.Fatalf("preprocess.Compile: %v", err)
	}
	cfgSeq := DefaultConfig()
	seqResults, _, err := Search(ctSeq, ciSeq, cfgSeq)
	if err != nil {
		t.Fatalf("Search sequential: %v", err)
	}

	ctPar, err := template.Compile(tpl, tcfg)
	if err != nil {
		t.Fatalf("template.Compile: %v", err)
	}
	ciPar, err := preprocess.Compile(img, tcfg.MaxLevels, ctPar.Pyramid.NumLevels(), true)
	if err != nil {
		t.Fatalf("preprocess.Compile: %v", err)
	}
	cfgPar := DefaultConfig()
	cfgPar.Parallel = true
	parResults, _, err := Search(ctPar, ciPar, cfgPar)
	if err != nil {
		t.Fatalf("Search parallel: %v", err)
	}

	if len(seqResults) != len(parResults) {
		t.Fatalf("result count differs: %d vs %d", len(seqResults), len(parResults))
	}
	for i := range seqResults {
		if seqResults[i] != parResults[i] {
			t.Fatalf("result %d differs: %+v vs %+v", i, seqResults[i], parResults[i])
		}
	}
}
