package pixel

import "testing"

func flatImage(w, h int, v byte) *GrayImage {
	img := NewGrayImage(w, h)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestDownsample2xDimensions(t *testing.T) {
	cases := [][2]int{{32, 32}, {33, 17}, {7, 9}, {1, 1}}
	for _, c := range cases {
		src := flatImage(c[0], c[1], 100)
		out := Downsample2x(src)
		wantW, wantH := (c[0]+1)/2, (c[1]+1)/2
		if out.Width != wantW || out.Height != wantH {
			t.Errorf("downsample(%dx%d) = %dx%d, want %dx%d", c[0], c[1], out.Width, out.Height, wantW, wantH)
		}
	}
}

func TestDownsample2xPreservesFlatValue(t *testing.T) {
	src := flatImage(64, 64, 77)
	out := Downsample2x(src)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			if out.At(x, y) != 77 {
				t.Fatalf("at (%d,%d) = %d, want 77", x, y, out.At(x, y))
			}
		}
	}
}

func TestBuildPyramidStopsAtMinSide(t *testing.T) {
	src := flatImage(20, 20, 1)
	p := BuildPyramid(src, 10, 4)
	last := p.Level(p.NumLevels() - 1)
	if last.Width < 4 && last.Width*2 >= 4 {
		// acceptable boundary case, nothing to assert strictly
	}
	for i := 1; i < p.NumLevels(); i++ {
		lvl := p.Level(i)
		if lvl.Width < 4 || lvl.Height < 4 {
			t.Fatalf("level %d has dimension below minSide: %dx%d", i, lvl.Width, lvl.Height)
		}
	}
}

func TestBuildPyramidRespectsMaxLevels(t *testing.T) {
	src := flatImage(4096, 4096, 1)
	p := BuildPyramid(src, 4, 4)
	if p.NumLevels() != 4 {
		t.Fatalf("NumLevels() = %d, want 4", p.NumLevels())
	}
}

func TestRotateBilinearIdentityAtZero(t *testing.T) {
	src := NewGrayImage(5, 5)
	for i := range src.Pix {
		src.Pix[i] = byte(i * 7)
	}
	out, mask := RotateBilinear(src, 0, 0)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if out.At(x, y) != src.At(x, y) {
				t.Fatalf("identity rotation changed pixel (%d,%d)", x, y)
			}
			if !mask.At(x, y) {
				t.Fatalf("identity rotation marked (%d,%d) invalid", x, y)
			}
		}
	}
}

func TestRotateBilinear180KeepsValidPixels(t *testing.T) {
	src := flatImage(9, 9, 200)
	_, mask := RotateBilinear(src, 180, 0)
	if mask.Count() == 0 {
		t.Fatalf("expected some valid pixels after a 180 degree rotation of a square image")
	}
}

func TestRotateBilinearOutOfBoundsFilled(t *testing.T) {
	src := flatImage(8, 8, 10)
	out, mask := RotateBilinear(src, 45, 250)
	foundFill := false
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if !mask.At(x, y) {
				foundFill = true
				if out.At(x, y) != 250 {
					t.Fatalf("invalid pixel (%d,%d) = %d, want fill 250", x, y, out.At(x, y))
				}
			}
		}
	}
	if !foundFill {
		t.Fatalf("expected at least one out-of-bounds pixel after a 45 degree rotation of a square")
	}
}

func TestMaskCount(t *testing.T) {
	m := NewMask(4, 4)
	m.Set(0, 0, true)
	m.Set(1, 1, true)
	if got := m.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
	if m.Full() {
		t.Fatalf("Full() = true, want false")
	}
}

func TestBufferPoolReuse(t *testing.T) {
	var pool BufferPool
	img, mask := pool.Acquire(10, 10)
	img.Set(0, 0, 5)
	pool.Release(10, 10, img, mask)
	img2, _ := pool.Acquire(10, 10)
	if img2.Width != 10 || img2.Height != 10 {
		t.Fatalf("Acquire returned wrong size after release")
	}
}
