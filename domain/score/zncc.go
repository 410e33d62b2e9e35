package score

import (
	"math"

	"github.com/soocke/pyrmatch/domain/preprocess"
	"github.com/soocke/pyrmatch/domain/template"
)

// NegInf is the sentinel ZNCC returns when a denominator floors to zero or
// the computation is otherwise degenerate; such candidates are discarded by
// the search engine rather than raised as errors (spec.md §7).
const NegInf = math.Inf(-1)

// ZNCCScore computes zero-mean normalized cross-correlation between the
// rotated template rt and the w x h window at (x, y) of image level lvl of
// ci. Score is in [-1, 1], higher is better.
func ZNCCScore(ci *preprocess.CompiledImage, level, x, y int, rt *template.RotatedTemplate, minVarI float64) float64 {
	n := float64(rt.Count)
	if n <= 0 {
		return NegInf
	}

	img := ci.Pyramid.Level(level)
	w, h := rt.Image.Width, rt.Image.Height

	var muI, varI, sumTI float64

	if rt.Mask.Full() {
		muI, varI = ci.MeanAndVariance(level, x, y, w, h)
		for ty := 0; ty < h; ty++ {
			trow := rt.Image.Row(ty)
			irow := img.Row(y + ty)[x : x+w]
			for tx := 0; tx < w; tx++ {
				sumTI += float64(trow[tx]) * float64(irow[tx])
			}
		}
	} else {
		var sumI, sumISq float64
		for ty := 0; ty < h; ty++ {
			for tx := 0; tx < w; tx++ {
				if !rt.Mask.At(tx, ty) {
					continue
				}
				iv := float64(img.At(x+tx, y+ty))
				tv := float64(rt.Image.At(tx, ty))
				sumI += iv
				sumISq += iv * iv
				sumTI += tv * iv
			}
		}
		muI = sumI / n
		varI = sumISq/n - muI*muI
	}

	// rt.Denom == sqrt(max(varT, minVarT) * n) was floored at compile time;
	// sqrt(varIFloored*n) supplies the matching image-side factor, so their
	// product is sqrt(max(varT,minVarT) * max(varI,minVarI) * n^2).
	varIFloored := math.Max(varI, minVarI)
	numer := sumTI - n*rt.Mean*muI
	denom := rt.Denom * math.Sqrt(varIFloored*n)

	if denom <= 0 || math.IsNaN(denom) {
		return NegInf
	}
	s := numer / denom
	if math.IsNaN(s) {
		return NegInf
	}
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return s
}
