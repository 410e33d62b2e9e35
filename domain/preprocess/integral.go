// Package preprocess builds the image pyramid and per-level integral images
// a query image needs so window mean/variance are O(1) during the beam
// search.
package preprocess

import "github.com/soocke/pyrmatch/domain/pixel"

// IntegralImages holds summed-area tables over raw and squared pixel values
// for one pyramid level, with an extra leading row/column of zeros so any
// axis-aligned window sum is four lookups.
type IntegralImages struct {
	Width, Height int // logical image dimensions (tables are (W+1)x(H+1))
	Sum           []int64
	SumSq         []int64
}

func buildIntegralImages(img *pixel.GrayImage) *IntegralImages {
	w, h := img.Width, img.Height
	stride := w + 1
	ii := &IntegralImages{
		Width:  w,
		Height: h,
		Sum:    make([]int64, stride*(h+1)),
		SumSq:  make([]int64, stride*(h+1)),
	}
	for y := 0; y < h; y++ {
		row := img.Row(y)
		for x := 0; x < w; x++ {
			v := int64(row[x])
			ii.Sum[(y+1)*stride+(x+1)] = v + ii.Sum[(y+1)*stride+x] + ii.Sum[y*stride+(x+1)] - ii.Sum[y*stride+x]
			ii.SumSq[(y+1)*stride+(x+1)] = v*v + ii.SumSq[(y+1)*stride+x] + ii.SumSq[y*stride+(x+1)] - ii.SumSq[y*stride+x]
		}
	}
	return ii
}

// WindowSum returns Σ over [x, x+w) x [y, y+h) of the raw pixel integral.
func (ii *IntegralImages) WindowSum(x, y, w, h int) int64 {
	return windowQuery(ii.Sum, ii.Width+1, x, y, w, h)
}

// WindowSumSq returns Σ over [x, x+w) x [y, y+h) of the squared pixel integral.
func (ii *IntegralImages) WindowSumSq(x, y, w, h int) int64 {
	return windowQuery(ii.SumSq, ii.Width+1, x, y, w, h)
}

func windowQuery(table []int64, stride, x, y, w, h int) int64 {
	x1, y1 := x+w, y+h
	return table[y1*stride+x1] - table[y*stride+x1] - table[y1*stride+x] + table[y*stride+x]
}
