package rope

import "github.com/coreseekdev/liana/pkg/measure"

// frame is one level of a cursor's root-to-leaf path: the node at that
// level, and the measure-unit target the cursor is seeking within it.
type frame[T any, M any, U Unit] struct {
	n      *node[T, M]
	target U
}

// Cursor locates a position within a rope in measure-units (not raw
// items), and answers raw byte/item offset, dereference, and ordering
// queries in O(depth). Every operation returns a new Cursor rather than
// mutating the receiver, the same persistent style as Rope itself — the
// source this package was ported from mutates its iterator's frame stack
// in place, but that doesn't fit a library where every other type is a
// plain immutable value.
type Cursor[T any, M any, U Unit] struct {
	m      measure.Measure[T, M, U]
	frames []frame[T, M, U]
}

// Begin returns a cursor at measure-unit 0 of root.
func Begin[T any, M any, U Unit](root *node[T, M], m measure.Measure[T, M, U]) Cursor[T, M, U] {
	c := Cursor[T, M, U]{m: m, frames: []frame[T, M, U]{{n: root, target: 0}}}
	return c.pushToLeaf()
}

// End returns a cursor one measure-unit past root's last unit, the
// canonical terminal position for half-open forward iteration.
func End[T any, M any, U Unit](root *node[T, M], m measure.Measure[T, M, U]) Cursor[T, M, U] {
	c := Cursor[T, M, U]{m: m, frames: []frame[T, M, U]{{n: root, target: m.UnitOf(root.agg)}}}
	return c.pushToLeaf()
}

func cloneFrames[T any, M any, U Unit](frames []frame[T, M, U]) []frame[T, M, U] {
	out := make([]frame[T, M, U], len(frames))
	copy(out, frames)
	return out
}

// pushToLeaf descends from the current top frame to the leaf containing
// its target, pushing one frame per branch taken.
//
// Descending into a branch's left child keeps the target unchanged: the
// left subtree's own unit count (lcap) is a valid target range for it.
// Descending right needs the target re-expressed in the right subtree's
// own unit space. Most measures satisfy ccap == lcap+rcap (a branch's
// total is exactly the sum of its children's), in which case the
// adjustment below is just "subtract lcap". But a boundary-straddling
// measure (UTF8, Grapheme) can complete one extra unit exactly at the
// join point that belongs to neither child's own local count — ccap can
// be lcap+rcap+1. That extra unit has no valid position inside the right
// subtree's own local numbering, so any target that would land on or
// inside it is clamped to the right subtree's own position 0 rather than
// going negative. This replaces the source formula's unclamped
// subtraction, which underflows exactly at that boundary case — the
// adjustment the surrounding spec explicitly flags as needing a
// from-scratch rederivation rather than a direct port.
func (c Cursor[T, M, U]) pushToLeaf() Cursor[T, M, U] {
	frames := cloneFrames(c.frames)
	for {
		top := frames[len(frames)-1]
		if top.n.isLeaf() {
			break
		}
		lcap := c.m.UnitOf(top.n.left.agg)
		if top.target < lcap {
			frames = append(frames, frame[T, M, U]{n: top.n.left, target: top.target})
			continue
		}
		ccap := c.m.UnitOf(top.n.agg)
		rcap := c.m.UnitOf(top.n.right.agg)
		extra := ccap - lcap - rcap
		nt := top.target - lcap - extra
		if nt < 0 {
			nt = 0
		}
		frames = append(frames, frame[T, M, U]{n: top.n.right, target: nt})
	}
	return Cursor[T, M, U]{m: c.m, frames: frames}
}

// RawIndex returns the raw item offset (not measure-unit offset) the
// cursor currently points at.
func (c Cursor[T, M, U]) RawIndex() int {
	idx := 0
	for i := 0; i < len(c.frames)-1; i++ {
		if c.frames[i+1].n == c.frames[i].n.right {
			idx += c.frames[i].n.left.size
		}
	}
	last := c.frames[len(c.frames)-1]
	if li := c.m.Index(last.n.leaf, last.target); li > 0 {
		idx += li
	}
	return idx
}

// Deref returns the item the cursor currently points at.
func (c Cursor[T, M, U]) Deref() T {
	last := c.frames[len(c.frames)-1]
	return last.n.leaf.At(c.m.Index(last.n.leaf, last.target))
}

// Advance moves the cursor forward n measure-units, saturating at end().
func (c Cursor[T, M, U]) Advance(n U) Cursor[T, M, U] {
	if n == 0 {
		return c
	}
	c = c.pushToLeaf()
	frames := cloneFrames(c.frames)

	for {
		top := frames[len(frames)-1]
		capacity := c.m.UnitOf(top.n.agg)
		if top.target+n < capacity {
			break
		}
		if len(frames) == 1 {
			break
		}
		frames = frames[:len(frames)-1]
	}

	if len(frames) == 1 {
		top := frames[0]
		capacity := c.m.UnitOf(top.n.agg)
		if top.target+n >= capacity {
			n = capacity - top.target
		}
	}
	for i := range frames {
		frames[i].target += n
	}
	return Cursor[T, M, U]{m: c.m, frames: frames}.pushToLeaf()
}

// Retreat moves the cursor backward n measure-units, saturating at begin().
func (c Cursor[T, M, U]) Retreat(n U) Cursor[T, M, U] {
	if n == 0 {
		return c
	}
	c = c.pushToLeaf()
	frames := cloneFrames(c.frames)

	for {
		top := frames[len(frames)-1]
		if top.target >= n {
			break
		}
		if len(frames) == 1 {
			break
		}
		frames = frames[:len(frames)-1]
	}

	if len(frames) == 1 && frames[0].target < n {
		n = frames[0].target
	}
	for i := range frames {
		frames[i].target -= n
	}
	return Cursor[T, M, U]{m: c.m, frames: frames}.pushToLeaf()
}

func (c Cursor[T, M, U]) sameRoot(other Cursor[T, M, U]) bool {
	return c.frames[0].n == other.frames[0].n
}

// Compare orders two cursors anchored at the same root by their root-frame
// target, which tracks the cursor's absolute measure-unit position.
func (c Cursor[T, M, U]) Compare(other Cursor[T, M, U]) int {
	if !c.sameRoot(other) {
		panic(errCrossRoot("Cursor.Compare"))
	}
	a, b := c.frames[0].target, other.frames[0].target
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Sub returns the difference, in measure-units, between two cursors
// anchored at the same root.
func (c Cursor[T, M, U]) Sub(other Cursor[T, M, U]) U {
	if !c.sameRoot(other) {
		panic(errCrossRoot("Cursor.Sub"))
	}
	return c.frames[0].target - other.frames[0].target
}
