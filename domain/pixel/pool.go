package pixel

import "sync"

// BufferPool hands out reusable (GrayImage, Mask) scratch pairs sized for a
// given level, mirroring the teacher's frame_pool.go sync.Pool idiom but
// keyed by dimensions so sequential single-threaded scans and parallel
// per-worker scans can both reuse allocations instead of allocating a fresh
// scratch buffer per call.
type BufferPool struct {
	pools sync.Map // map[[2]int]*sync.Pool
}

// defaultPool backs the transient intermediate buffers blurInto and
// downsample2x allocate on every pyramid level: the horizontal-pass scratch
// in blurInto and the pre-decimation blur in downsample2x never outlive the
// call that creates them, and a CompiledImage is rebuilt at the same
// resolution on every Matcher.Match call against a fixed-size source (e.g.
// the CLI watch loop's repeated same-resolution captures), so pooling these
// avoids reallocating the same sizes on every call.
var defaultPool = &BufferPool{}

type scratch struct {
	img  *GrayImage
	mask *Mask
}

func (p *BufferPool) poolFor(w, h int) *sync.Pool {
	key := [2]int{w, h}
	if v, ok := p.pools.Load(key); ok {
		return v.(*sync.Pool)
	}
	np := &sync.Pool{New: func() any {
		return &scratch{img: NewGrayImage(w, h), mask: NewMask(w, h)}
	}}
	actual, _ := p.pools.LoadOrStore(key, np)
	return actual.(*sync.Pool)
}

// Acquire returns a (GrayImage, Mask) pair at least as large as w x h. The
// caller must call Release when done.
func (p *BufferPool) Acquire(w, h int) (*GrayImage, *Mask) {
	s := p.poolFor(w, h).Get().(*scratch)
	return s.img, s.mask
}

// Release returns the pair to the pool for reuse.
func (p *BufferPool) Release(w, h int, img *GrayImage, mask *Mask) {
	p.poolFor(w, h).Put(&scratch{img: img, mask: mask})
}
