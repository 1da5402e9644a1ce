package measure

import "github.com/coreseekdev/liana/pkg/slice"

// Bytes is the trivial measure: the aggregate is simply the item count of
// the subtree, and the position unit is the same count. It is the measure
// to reach for when the rope's "position" should just mean "index into the
// underlying byte buffer" (spec.md §4.3, "Bytes measure").
type Bytes struct{}

var _ Measure[byte, int, int] = Bytes{}

// Identity returns 0.
func (Bytes) Identity() int { return 0 }

// Join returns left+right.
func (Bytes) Join(left, right int) int { return left + right }

// Accumulate returns s.Len().
func (Bytes) Accumulate(s slice.Slice[byte]) int { return s.Len() }

// UnitOf returns m unchanged: the byte-count unit is the measure itself.
func (Bytes) UnitOf(m int) int { return m }

// Index returns target clamped to s.Len().
func (Bytes) Index(s slice.Slice[byte], target int) int {
	if target < 0 {
		return 0
	}
	if target > s.Len() {
		return s.Len()
	}
	return target
}
