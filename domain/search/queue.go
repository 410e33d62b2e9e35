package search

import "golang.org/x/exp/slices"

// boundedQueue is a fixed-capacity sorted buffer ordered by Less,
// maintained by insertion rather than a heap: spec.md §9 notes this is
// preferable to a heap for the beam widths this engine runs at (<=~16).
type boundedQueue struct {
	capacity int
	items    []Candidate
}

func newBoundedQueue(capacity int) *boundedQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &boundedQueue{capacity: capacity, items: make([]Candidate, 0, capacity)}
}

// offer inserts c in sorted position if it ranks within the top
// `capacity` candidates seen so far, discarding the worst entry if the
// queue is already full.
func (q *boundedQueue) offer(c Candidate) {
	i := 0
	for i < len(q.items) && Less(q.items[i], c) {
		i++
	}
	if i >= q.capacity {
		return
	}
	q.items = append(q.items, Candidate{})
	copy(q.items[i+1:], q.items[i:len(q.items)-1])
	q.items[i] = c
	if len(q.items) > q.capacity {
		q.items = q.items[:q.capacity]
	}
}

func (q *boundedQueue) all() []Candidate {
	return q.items
}

// mergeTopK deterministically unions several candidate groups (one per
// angle, or one per parallel worker) and keeps the best k overall: a
// stable sort by the full tie-break followed by a truncate, so the
// result never depends on group order or thread count (spec.md §5
// "Ordering guarantees").
func mergeTopK(groups [][]Candidate, k int) []Candidate {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	all := make([]Candidate, 0, n)
	for _, g := range groups {
		all = append(all, g...)
	}
	slices.SortStableFunc(all, func(a, b Candidate) int {
		switch {
		case Less(a, b):
			return -1
		case Less(b, a):
			return 1
		default:
			return 0
		}
	})
	if k >= 0 && len(all) > k {
		all = all[:k]
	}
	return all
}
