// Package synth is spec.md §1's synthetic case generator, built in the
// teacher's app/bite_detector_test.go synthFrame/applyRegion idiom but
// producing pixel.GrayImage instead of image.RGBA frames. It is reused
// by every package's tests that need a background plus an embedded (and
// optionally rotated, gained/biased, or occluded) template.
package synth

import (
	"github.com/soocke/pyrmatch/domain/pixel"
)

// BaseImage allocates a width x height image filled with a uniform
// luminance, mirroring synthFrame's base-fill step.
func BaseImage(width, height int, base byte) *pixel.GrayImage {
	img := pixel.NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = base
	}
	return img
}

// ApplyRegion sets the rectangle [x0, x1) x [y0, y1) to lum, clamped to
// img's bounds, mirroring applyRegion.
func ApplyRegion(img *pixel.GrayImage, x0, y0, x1, y1 int, lum byte) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > img.Width {
		x1 = img.Width
	}
	if y1 > img.Height {
		y1 = img.Height
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, lum)
		}
	}
}

// RandomTemplate generates a deterministic pseudo-random width x height
// template with samples in [50, 200), using a linear congruential
// generator seeded by seed so tests are reproducible without depending
// on math/rand's global state.
func RandomTemplate(width, height int, seed uint32) *pixel.GrayImage {
	img := pixel.NewGrayImage(width, height)
	x := seed
	for i := range img.Pix {
		x = x*1664525 + 1013904223
		img.Pix[i] = byte(50 + (x>>24)%150)
	}
	return img
}

// NoiseImage is RandomTemplate under a different name for callers that
// want unrelated background noise rather than a candidate template; the
// two are generated identically, only the seed should differ.
func NoiseImage(width, height int, seed uint32) *pixel.GrayImage {
	return RandomTemplate(width, height, seed)
}

// Embed copies tpl into base at (x, y).
func Embed(base, tpl *pixel.GrayImage, x, y int) {
	for ty := 0; ty < tpl.Height; ty++ {
		for tx := 0; tx < tpl.Width; tx++ {
			base.Set(x+tx, y+ty, tpl.At(tx, ty))
		}
	}
}

// EmbedRotated rotates tpl by angleDeg (filling outside the mask with
// fill) and embeds the result into base at (x, y), for rotation-enabled
// round-trip tests.
func EmbedRotated(base, tpl *pixel.GrayImage, x, y int, angleDeg float64, fill byte) {
	rotated, _ := pixel.RotateBilinear(tpl, angleDeg, fill)
	Embed(base, rotated, x, y)
}

// ApplyGainBias scales every sample by gain and adds bias, clamping to
// [0, 255], for illumination-invariance test cases (spec.md §8 scenario
// 5).
func ApplyGainBias(img *pixel.GrayImage, gain, bias float64) *pixel.GrayImage {
	out := pixel.NewGrayImage(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := float64(img.At(x, y))*gain + bias
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			out.Set(x, y, byte(v+0.5))
		}
	}
	return out
}

// ApplyOcclusion zeroes out the top fraction (0, 1] of tpl's rows with
// bg, simulating partial occlusion of an embedded template (spec.md §8
// scenario 6).
func ApplyOcclusion(tpl *pixel.GrayImage, fraction float64, bg byte) *pixel.GrayImage {
	out := tpl.Clone()
	rows := int(fraction * float64(out.Height))
	ApplyRegion(out, 0, 0, out.Width, rows, bg)
	return out
}
