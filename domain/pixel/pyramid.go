package pixel

import "github.com/soocke/pyrmatch/domain/parallel"

// binomialTap is the fixed 5-tap binomial Gaussian [1,4,6,4,1]/16 used for
// both blurring and pre-decimation smoothing.
var binomialTap = [5]int{1, 4, 6, 4, 1}

const binomialNorm = 16

func clampCoord(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Blur applies the 5-tap binomial Gaussian separably with edge clamping and
// returns a new image of the same dimensions.
func Blur(src *GrayImage) *GrayImage { return blur(src, false) }

// blur implements Blur, parallelizing the two row-independent passes over
// goroutines when parallelEnabled is set (spec.md §5: pyramid construction
// parallelizes over rows).
func blur(src *GrayImage, parallelEnabled bool) *GrayImage {
	out := NewGrayImage(src.Width, src.Height)
	blurInto(src, out, parallelEnabled)
	return out
}

// blurInto writes the blurred result into dstImg, which must already be
// sized src.Width x src.Height. The horizontal pass lands in a scratch
// buffer drawn from defaultPool rather than a fresh allocation, since it
// never outlives this call (spec.md §5 "scratch-buffer pooling").
func blurInto(src, dstImg *GrayImage, parallelEnabled bool) {
	tmp, tmpMask := defaultPool.Acquire(src.Width, src.Height)
	defer defaultPool.Release(src.Width, src.Height, tmp, tmpMask)

	parallel.For(src.Height, parallelEnabled, func(y int) {
		row := src.Row(y)
		out := tmp.Row(y)
		for x := 0; x < src.Width; x++ {
			var acc int
			for k := -2; k <= 2; k++ {
				sx := clampCoord(x+k, 0, src.Width-1)
				acc += int(row[sx]) * binomialTap[k+2]
			}
			out[x] = byte((acc + binomialNorm/2) / binomialNorm)
		}
	})

	parallel.For(src.Height, parallelEnabled, func(y int) {
		dst := dstImg.Row(y)
		for x := 0; x < src.Width; x++ {
			var acc int
			for k := -2; k <= 2; k++ {
				sy := clampCoord(y+k, 0, src.Height-1)
				acc += int(tmp.At(x, sy)) * binomialTap[k+2]
			}
			dst[x] = byte((acc + binomialNorm/2) / binomialNorm)
		}
	})
}

// Downsample2x blurs with the 5-tap binomial kernel then decimates by 2,
// keeping every other sample starting at offset 0. Output dimensions are
// ceil(W/2) x ceil(H/2).
func Downsample2x(src *GrayImage) *GrayImage { return downsample2x(src, false) }

func downsample2x(src *GrayImage, parallelEnabled bool) *GrayImage {
	blurred, blurredMask := defaultPool.Acquire(src.Width, src.Height)
	defer defaultPool.Release(src.Width, src.Height, blurred, blurredMask)
	blurInto(src, blurred, parallelEnabled)

	w := (src.Width + 1) / 2
	h := (src.Height + 1) / 2
	out := NewGrayImage(w, h)
	parallel.For(h, parallelEnabled, func(y int) {
		sy := y * 2
		dst := out.Row(y)
		for x := 0; x < w; x++ {
			dst[x] = blurred.At(x*2, sy)
		}
	})
	return out
}

// Pyramid is an ordered sequence of GrayImages, index 0 the finest level.
type Pyramid struct {
	Levels []*GrayImage
}

// BuildPyramid constructs a pyramid from base, stopping early once the next
// level would be smaller than minSide on either axis, or once maxLevels
// (including the finest) is reached.
func BuildPyramid(base *GrayImage, maxLevels, minSide int) *Pyramid {
	return BuildPyramidParallel(base, maxLevels, minSide, false)
}

// BuildPyramidParallel is BuildPyramid with each level's blur/decimate pass
// parallelized over rows when parallelEnabled is set. Levels themselves are
// still built serially (each depends on the previous one).
func BuildPyramidParallel(base *GrayImage, maxLevels, minSide int, parallelEnabled bool) *Pyramid {
	if maxLevels < 1 {
		maxLevels = 1
	}
	if minSide < 1 {
		minSide = 1
	}
	p := &Pyramid{Levels: []*GrayImage{base}}
	cur := base
	for len(p.Levels) < maxLevels {
		nextW := (cur.Width + 1) / 2
		nextH := (cur.Height + 1) / 2
		if nextW < minSide || nextH < minSide {
			break
		}
		cur = downsample2x(cur, parallelEnabled)
		p.Levels = append(p.Levels, cur)
	}
	return p
}

// NumLevels returns the number of levels in the pyramid.
func (p *Pyramid) NumLevels() int { return len(p.Levels) }

// Level returns the image at the given pyramid level.
func (p *Pyramid) Level(i int) *GrayImage { return p.Levels[i] }
