package template

import (
	"math"

	"github.com/soocke/pyrmatch/domain/pixel"
)

// RotatedTemplate is a rotated bilinear copy of a template level at a given
// angle, its validity mask, and the scalar statistics scoring needs.
type RotatedTemplate struct {
	Level    int
	AngleDeg float64
	Image    *pixel.GrayImage
	Mask     *pixel.Mask

	Count  int
	Sum    float64
	SumSq  float64
	Mean   float64
	Var    float64
	Denom  float64
}

// BuildRotatedTemplate rotates level by angleDeg (identity copy at 0) and
// computes the scalar statistics ZNCC needs, flooring variance by minVarT.
func BuildRotatedTemplate(level *pixel.GrayImage, levelIdx int, angleDeg float64, fillValue byte, minVarT float64) *RotatedTemplate {
	img, mask := pixel.RotateBilinear(level, angleDeg, fillValue)

	var sum, sumSq float64
	count := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if !mask.At(x, y) {
				continue
			}
			v := float64(img.At(x, y))
			sum += v
			sumSq += v * v
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	n := float64(count)
	mean := sum / n
	variance := sumSq/n - mean*mean
	flooredVar := math.Max(variance, minVarT)
	denom := math.Sqrt(flooredVar * n)

	return &RotatedTemplate{
		Level:    levelIdx,
		AngleDeg: angleDeg,
		Image:    img,
		Mask:     mask,
		Count:    count,
		Sum:      sum,
		SumSq:    sumSq,
		Mean:     mean,
		Var:      variance,
		Denom:    denom,
	}
}
