package pixel

import "math"

// RoundAwayFromZero rounds v to the nearest integer, ties away from zero
// (matches math.Round's documented behavior, named here because the
// rounding convention is an explicit invariant of bilinear rotation).
func RoundAwayFromZero(v float64) float64 { return math.Round(v) }

// RotateBilinear produces a rotated copy of src at the given angle (degrees,
// clockwise positive) around the image center, using bilinear interpolation.
// Pixels whose back-projected source coordinate lies on or outside
// [0, W-1] x [0, H-1] are set to fill and marked invalid in the returned
// mask; all other pixels are interpolated and marked valid. Output
// dimensions match src.
func RotateBilinear(src *GrayImage, angleDeg float64, fill byte) (*GrayImage, *Mask) {
	out := NewGrayImage(src.Width, src.Height)
	mask := NewMask(src.Width, src.Height)
	if angleDeg == 0 {
		for y := 0; y < src.Height; y++ {
			copy(out.Row(y), src.Row(y))
		}
		for i := range mask.Bits {
			mask.Bits[i] = 1
		}
		return out, mask
	}

	cx := float64(src.Width-1) / 2
	cy := float64(src.Height-1) / 2
	theta := -angleDeg * math.Pi / 180
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	maxX := float64(src.Width - 1)
	maxY := float64(src.Height - 1)

	for y := 0; y < src.Height; y++ {
		dy := float64(y) - cy
		dstRow := out.Row(y)
		for x := 0; x < src.Width; x++ {
			dx := float64(x) - cx
			sx := cx + dx*cosT - dy*sinT
			sy := cy + dx*sinT + dy*cosT
			if sx <= 0 || sy <= 0 || sx >= maxX || sy >= maxY {
				dstRow[x] = fill
				continue
			}
			x0 := int(math.Floor(sx))
			y0 := int(math.Floor(sy))
			x1, y1 := x0+1, y0+1
			fx := sx - float64(x0)
			fy := sy - float64(y0)

			v00 := float64(src.At(x0, y0))
			v10 := float64(src.At(x1, y0))
			v01 := float64(src.At(x0, y1))
			v11 := float64(src.At(x1, y1))

			top := v00*(1-fx) + v10*fx
			bottom := v01*(1-fx) + v11*fx
			v := top*(1-fy) + bottom*fy

			dstRow[x] = byte(clampCoord(int(RoundAwayFromZero(v)), 0, 255))
			mask.Set(x, y, true)
		}
	}
	return out, mask
}
