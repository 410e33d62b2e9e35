package template

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// rotationKey identifies a cached rotation by level and quantized angle.
type rotationKey struct {
	level int
	angle float64
}

// rotationCache bounds the lazily-materialized per-(level, angle)
// RotatedTemplate set. golang-lru's Cache is already safe for concurrent
// use; the per-key sync.Once below (tracked in a mutex-guarded in-flight
// map) implements the double-checked load
// spec.md §9 calls for, so two workers racing on a cache miss for the same
// key build the rotation only once instead of twice.
type rotationCache struct {
	cache *lru.Cache[rotationKey, *RotatedTemplate]

	buildMu sync.Mutex
	inFlight map[rotationKey]*sync.Once
}

func newRotationCache(size int) *rotationCache {
	if size < 1 {
		size = 1
	}
	c, _ := lru.New[rotationKey, *RotatedTemplate](size)
	return &rotationCache{cache: c, inFlight: make(map[rotationKey]*sync.Once)}
}

// getOrBuild returns the cached RotatedTemplate for (level, angle), building
// it with build() on first access. Concurrent callers for the same key block
// on the same build rather than duplicating work.
func (c *rotationCache) getOrBuild(level int, angle float64, build func() *RotatedTemplate) *RotatedTemplate {
	key := rotationKey{level: level, angle: angle}
	if rt, ok := c.cache.Get(key); ok {
		return rt
	}

	c.buildMu.Lock()
	once, ok := c.inFlight[key]
	if !ok {
		once = &sync.Once{}
		c.inFlight[key] = once
	}
	c.buildMu.Unlock()

	once.Do(func() {
		if _, ok := c.cache.Get(key); ok {
			return
		}
		c.cache.Add(key, build())
	})

	c.buildMu.Lock()
	delete(c.inFlight, key)
	c.buildMu.Unlock()

	if rt, ok := c.cache.Get(key); ok {
		return rt
	}

	// Another key's concurrent insertion evicted ours between once.Do
	// finishing and this Get: the cache is sized for the ladder's angle
	// count, but finer S1 quantization can reach more distinct keys than
	// slots. Rebuilding directly (rather than re-racing the inFlight map)
	// keeps this call correct at the cost of redundant work in that rare
	// window.
	return build()
}
