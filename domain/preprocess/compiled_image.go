package preprocess

import (
	"fmt"

	"github.com/soocke/pyrmatch/domain/parallel"
	"github.com/soocke/pyrmatch/domain/pixel"
)

// CompiledImage is the image pyramid plus per-level integral images for one
// query image. It is created fresh per matching call and never shared
// across calls.
type CompiledImage struct {
	Pyramid   *pixel.Pyramid
	Integrals []*IntegralImages // parallel to Pyramid.Levels
}

const minPyramidSide = 4

// Compile builds the image pyramid to the lesser of maxImageLevels and
// templateLevels (the two pyramids must align level-for-level for any level
// searched in common), then builds integral images for every level.
func Compile(raw *pixel.GrayImage, maxImageLevels, templateLevels int, parallelEnabled bool) (*CompiledImage, error) {
	if raw.Width == 0 || raw.Height == 0 {
		return nil, fmt.Errorf("preprocess: zero-sized image %dx%d", raw.Width, raw.Height)
	}
	levels := maxImageLevels
	if templateLevels < levels {
		levels = templateLevels
	}
	if levels < 1 {
		levels = 1
	}
	pyr := pixel.BuildPyramidParallel(raw, levels, minPyramidSide, parallelEnabled)

	integrals := make([]*IntegralImages, pyr.NumLevels())
	parallel.For(pyr.NumLevels(), parallelEnabled, func(i int) {
		integrals[i] = buildIntegralImages(pyr.Level(i))
	})

	return &CompiledImage{Pyramid: pyr, Integrals: integrals}, nil
}

// Mean returns the mean raw pixel value over the window at the given level.
func (ci *CompiledImage) Mean(level, x, y, w, h int) float64 {
	n := float64(w * h)
	return float64(ci.Integrals[level].WindowSum(x, y, w, h)) / n
}

// MeanAndVariance returns mean and variance (E[X^2]-E[X]^2) of the window.
func (ci *CompiledImage) MeanAndVariance(level, x, y, w, h int) (mean, variance float64) {
	n := float64(w * h)
	sum := float64(ci.Integrals[level].WindowSum(x, y, w, h))
	sumSq := float64(ci.Integrals[level].WindowSumSq(x, y, w, h))
	mean = sum / n
	variance = sumSq/n - mean*mean
	return mean, variance
}
