// Package rope implements a generic, persistent rope data structure over
// any item type, parameterized by a measure (package measure) that tells
// the rope what "position" means for that item type — raw item count,
// UTF-8 code points, grapheme clusters, or lines.
//
// A Rope is a tree of leaves and branches, each caching the measure of its
// own subtree, so locating a position or splitting at one costs O(depth)
// rather than a linear scan. Unlike the mutation-oriented rope this
// package started from, every Rope value here is immutable: Concat,
// Balance, Substr, SplitBefore, and SplitAfter all return new Ropes and
// never touch an existing one's nodes.
//
// # When to Use Rope vs a plain slice
//
// Use Rope when:
//   - Working with large sequences (documents, logs, buffers)
//   - Building content incrementally via repeated Concat
//   - Needing frequent Substr/Split without copying the whole sequence
//   - Needing position lookups in a unit other than raw item count
//     (code points, grapheme clusters, lines)
//
// Use slice.Slice directly when:
//   - The sequence is small or read mostly start-to-end
//   - Position-unit translation isn't needed
//
// # Performance Characteristics
//
// Len/Weight/Measure are O(1) (cached at construction). Concat is O(1).
// Substr, SplitBefore, and SplitAfter are O(depth) plus the cost of the
// leaf split they perform. Balance rebuilds the tree from every leaf, so
// its cost grows with the leaf count, plus the copying done when it
// coalesces small leaves. Cursor operations (Advance, Retreat, RawIndex)
// are O(depth).
package rope

import (
	"github.com/coreseekdev/liana/pkg/measure"
	"github.com/coreseekdev/liana/pkg/slice"
)

// Rope is an immutable sequence of T, measured by the Measure bound at
// construction. The zero value is not usable; construct one with Empty,
// FromSlice, FromBuffer, or FromSequence.
type Rope[T any, M any, U Unit] struct {
	root *node[T, M]
	m    measure.Measure[T, M, U]
}

// Empty returns a zero-length rope bound to m.
func Empty[T any, M any, U Unit](m measure.Measure[T, M, U]) Rope[T, M, U] {
	return Rope[T, M, U]{root: emptyNode(m), m: m}
}

// FromSlice builds a rope from s, splitting into multiple leaves if s is
// at or beyond MaxLeaf items.
func FromSlice[T any, M any, U Unit](s slice.Slice[T], m measure.Measure[T, M, U]) Rope[T, M, U] {
	return Rope[T, M, U]{root: newLeaf(s, m), m: m}
}

// FromBuffer builds a rope directly over buf, which the rope takes
// ownership of — callers must not mutate buf afterward.
func FromBuffer[T any, M any, U Unit](buf []T, m measure.Measure[T, M, U]) Rope[T, M, U] {
	return FromSlice(slice.FromBuffer(buf), m)
}

// FromSequence builds a rope from a copy of seq, leaving the caller free
// to reuse or mutate seq afterward.
func FromSequence[T any, M any, U Unit](seq []T, m measure.Measure[T, M, U]) Rope[T, M, U] {
	buf := make([]T, len(seq))
	copy(buf, seq)
	return FromBuffer(buf, m)
}

// Len returns the total raw item count of the rope.
func (r Rope[T, M, U]) Len() int { return r.root.size }

// Weight returns the total number of leaves in the rope.
func (r Rope[T, M, U]) Weight() int { return r.root.weight }

// Measure returns the rope's root aggregate measure.
func (r Rope[T, M, U]) Measure() M { return r.root.agg }

// EachChunk visits the rope's leaves left to right, without copying their
// contents; visit must not retain a leaf's slice past the call if the
// caller later mutates a buffer it was built from via FromBuffer.
func (r Rope[T, M, U]) EachChunk(visit func(slice.Slice[T])) {
	eachChunk(r.root, visit)
}

// Concat returns a new rope holding r's items followed by other's. Does
// not rebalance; call Balance afterward if many small concatenations have
// accumulated.
func (r Rope[T, M, U]) Concat(other Rope[T, M, U]) Rope[T, M, U] {
	return Rope[T, M, U]{root: concatNode(r.root, other.root, r.m), m: r.m}
}

// Begin returns a cursor at the rope's first measure-unit.
func (r Rope[T, M, U]) Begin() Cursor[T, M, U] { return Begin(r.root, r.m) }

// End returns a cursor one past the rope's last measure-unit.
func (r Rope[T, M, U]) End() Cursor[T, M, U] { return End(r.root, r.m) }
