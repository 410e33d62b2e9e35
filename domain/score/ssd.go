package score

import (
	"github.com/soocke/pyrmatch/domain/preprocess"
	"github.com/soocke/pyrmatch/domain/template"
)

// SSDScore computes the negated sum of squared differences so that, like
// ZNCC, higher is better. No normalization and no variance floor apply.
func SSDScore(ci *preprocess.CompiledImage, level, x, y int, rt *template.RotatedTemplate) float64 {
	img := ci.Pyramid.Level(level)
	w, h := rt.Image.Width, rt.Image.Height

	var sum float64
	for ty := 0; ty < h; ty++ {
		trow := rt.Image.Row(ty)
		irow := img.Row(y + ty)
		for tx := 0; tx < w; tx++ {
			if !rt.Mask.At(tx, ty) {
				continue
			}
			d := float64(trow[tx]) - float64(irow[x+tx])
			sum += d * d
		}
	}
	return -sum
}

// Score dispatches on metric once per window, keeping the inner pixel loop
// shape identical across both kernels (spec.md §9).
func Score(ci *preprocess.CompiledImage, level, x, y int, rt *template.RotatedTemplate, metric Metric, minVarI float64) float64 {
	switch metric {
	case SSD:
		return SSDScore(ci, level, x, y, rt)
	default:
		return ZNCCScore(ci, level, x, y, rt, minVarI)
	}
}
