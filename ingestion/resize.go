package ingestion

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/soocke/pyrmatch/domain/pixel"
)

// ResizeTo optionally pre-resizes an ingested raster before it reaches
// the core's own pyramid construction, e.g. to cap the finest level's
// resolution for a very large capture. Uses approximate bilinear
// scaling (golang.org/x/image/draw), not the core's own pyramid filter,
// since this runs once at ingestion and is not part of THE CORE's
// numerics.
func ResizeTo(src *pixel.GrayImage, width, height int) *pixel.GrayImage {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	srcImg := &image.Gray{
		Pix:    src.Pix,
		Stride: src.Stride,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
	dstImg := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Over, nil)

	out := pixel.NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		copy(out.Row(y), dstImg.Pix[y*dstImg.Stride:y*dstImg.Stride+width])
	}
	return out
}
