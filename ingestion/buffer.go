package ingestion

import (
	"fmt"

	"github.com/soocke/pyrmatch/domain/pixel"
)

// FromRowMajorBytes is the numeric array ingestion boundary spec.md §6
// names: it enforces that buf is exactly width*height row-major 8-bit
// samples (stride == width) before handing the data to the core.
func FromRowMajorBytes(width, height int, buf []byte) (*pixel.GrayImage, error) {
	if len(buf) != width*height {
		return nil, fmt.Errorf("ingestion: buffer length %d does not match %dx%d", len(buf), width, height)
	}
	return pixel.NewGrayImageFromBuffer(width, height, width, buf)
}

// FromRowMajorFloat64 converts a row-major float64 array (e.g. from a
// numeric/scientific caller) to an 8-bit GrayImage by rounding and
// clamping each sample to [0, 255].
func FromRowMajorFloat64(width, height int, buf []float64) (*pixel.GrayImage, error) {
	if len(buf) != width*height {
		return nil, fmt.Errorf("ingestion: buffer length %d does not match %dx%d", len(buf), width, height)
	}
	bytes := make([]byte, len(buf))
	for i, v := range buf {
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		bytes[i] = byte(v + 0.5)
	}
	return pixel.NewGrayImageFromBuffer(width, height, width, bytes)
}
