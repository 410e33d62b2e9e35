package preprocess

import (
	"math"
	"testing"

	"github.com/soocke/pyrmatch/domain/pixel"
)

func randomImage(w, h int, seed uint32) *pixel.GrayImage {
	img := pixel.NewGrayImage(w, h)
	x := seed
	for i := range img.Pix {
		x = x*1664525 + 1013904223
		img.Pix[i] = byte((x >> 24) & 0xff)
	}
	return img
}

func TestIntegralImagesMatchBruteForce(t *testing.T) {
	img := randomImage(37, 29, 11)
	ii := buildIntegralImages(img)

	windows := [][4]int{{0, 0, 5, 5}, {10, 10, 8, 6}, {30, 20, 7, 9}, {0, 0, 37, 29}}
	for _, w := range windows {
		x, y, ww, hh := w[0], w[1], w[2], w[3]
		var wantSum, wantSumSq int64
		for yy := y; yy < y+hh; yy++ {
			for xx := x; xx < x+ww; xx++ {
				v := int64(img.At(xx, yy))
				wantSum += v
				wantSumSq += v * v
			}
		}
		if got := ii.WindowSum(x, y, ww, hh); got != wantSum {
			t.Errorf("WindowSum%v = %d, want %d", w, got, wantSum)
		}
		if got := ii.WindowSumSq(x, y, ww, hh); got != wantSumSq {
			t.Errorf("WindowSumSq%v = %d, want %d", w, got, wantSumSq)
		}
	}
}

func TestCompileMeanAndVariance(t *testing.T) {
	img := randomImage(16, 16, 5)
	ci, err := Compile(img, 3, 3, false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	mean, variance := ci.MeanAndVariance(0, 0, 0, 16, 16)
	var sum, sumSq float64
	for _, v := range img.Pix {
		sum += float64(v)
		sumSq += float64(v) * float64(v)
	}
	n := float64(len(img.Pix))
	wantMean := sum / n
	wantVar := sumSq/n - wantMean*wantMean
	if math.Abs(mean-wantMean) > 1e-6 || math.Abs(variance-wantVar) > 1e-6 {
		t.Fatalf("mean/var = %v/%v, want %v/%v", mean, variance, wantMean, wantVar)
	}
}

func TestCompileLevelsAlignWithTemplateLevels(t *testing.T) {
	img := randomImage(256, 256, 9)
	ci, err := Compile(img, 4, 2, false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ci.Pyramid.NumLevels() != 2 {
		t.Fatalf("NumLevels() = %d, want 2 (capped by templateLevels)", ci.Pyramid.NumLevels())
	}
}

func TestCompileRejectsZeroSizedImage(t *testing.T) {
	_, err := Compile(&pixel.GrayImage{}, 4, 4, false)
	if err == nil {
		t.Fatalf("expected error for zero-sized image")
	}
}

func TestCompileParallelMatchesSequential(t *testing.T) {
	img := randomImage(65, 40, 21)
	seq, err := Compile(img, 4, 4, false)
	if err != nil {
		t.Fatalf("Compile sequential: %v", err)
	}
	par, err := Compile(img, 4, 4, true)
	if err != nil {
		t.Fatalf("Compile parallel: %v", err)
	}
	if seq.Pyramid.NumLevels() != par.Pyramid.NumLevels() {
		t.Fatalf("level count differs between sequential and parallel compile")
	}
	for lvl := 0; lvl < seq.Pyramid.NumLevels(); lvl++ {
		a, b := seq.Pyramid.Level(lvl), par.Pyramid.Level(lvl)
		for i := range a.Pix {
			if a.Pix[i] != b.Pix[i] {
				t.Fatalf("level %d pixel %d differs: %d vs %d", lvl, i, a.Pix[i], b.Pix[i])
			}
		}
	}
}
