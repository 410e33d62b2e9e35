package debug

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/pyrmatch/domain/match"
	"github.com/soocke/pyrmatch/domain/pixel"
)

// RenderOverlay draws the template's outline and a crosshair over each
// match result on top of img, at img's own resolution (no rescale),
// following the teacher's ui/images.ScaleToFit/EncodePNG
// split between "build an image.Image" and "encode it" responsibilities.
func RenderOverlay(img *pixel.GrayImage, tmplSize image.Point, results []match.Result) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := img.At(x, y)
			dst.Set(x, y, color.Gray{Y: v})
		}
	}

	for i, r := range results {
		// r.X, r.Y is the matched window's top-left; box and crosshair are
		// drawn around the window's center.
		x0, y0 := int(r.X+0.5), int(r.Y+0.5)
		cx, cy := x0+tmplSize.X/2, y0+tmplSize.Y/2
		drawBox(dst, cx, cy, tmplSize.X, tmplSize.Y, color.RGBA{R: 255, A: 255})
		drawCrosshair(dst, cx, cy, color.RGBA{G: 255, A: 255})
		label := fmt.Sprintf("#%d score=%.3f angle=%.1f", i, r.Score, r.AngleDeg)
		drawLabel(dst, x0, y0-4, label)
	}
	return dst
}

// EncodePNG encodes img as uncompressed PNG bytes, mirroring the
// teacher's images.EncodePNG (no compression, fresh buffer per call).
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var b bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	_ = enc.Encode(&b, img)
	return b.Bytes()
}

func drawBox(dst draw.Image, cx, cy, w, h int, c color.Color) {
	x0, y0 := cx-w/2, cy-h/2
	x1, y1 := x0+w, y0+h
	for x := x0; x <= x1; x++ {
		dst.Set(x, y0, c)
		dst.Set(x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		dst.Set(x0, y, c)
		dst.Set(x1, y, c)
	}
}

func drawCrosshair(dst draw.Image, cx, cy int, c color.Color) {
	const radius = 5
	for d := -radius; d <= radius; d++ {
		dst.Set(cx+d, cy, c)
		dst.Set(cx, cy+d, c)
	}
}

func drawLabel(dst draw.Image, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 0, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
