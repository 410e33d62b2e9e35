// Package ingestion is one of spec.md §1's external collaborators: it
// turns PNG files, decoded images, and raw numeric arrays into the
// row-major 8-bit GrayImage the core consumes, enforcing that boundary
// so nothing upstream of the core ever has to think about color models.
package ingestion

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"

	"github.com/soocke/pyrmatch/domain/pixel"
)

// LoadPNGFile decodes path (PNG, or anything image.Decode recognizes via
// imaging's registered formats) and converts it to grayscale.
func LoadPNGFile(path string) (*pixel.GrayImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingestion: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ingestion: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image to grayscale using imaging's
// perceptual-luminance grayscale conversion (color images are a
// non-goal for the core; this is where the conversion happens, once,
// at the boundary).
func FromImage(img image.Image) *pixel.GrayImage {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := pixel.NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gr := color.GrayModel.Convert(gray.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			out.Set(x, y, gr.Y)
		}
	}
	return out
}
