package rope

import "github.com/coreseekdev/liana/pkg/measure"

// splitBefore walks the cursor's root-to-leaf frame path (spec.md §4.6),
// reassembling the content strictly before its target into left and the
// rest into right. On a branch frame descending into the left child, the
// branch's right subtree is entirely past the split point, so it is
// prepended to whatever has already been accumulated into right. On a
// branch frame descending into the right child, the branch's left subtree
// is entirely before the split point, so it is appended to left. The leaf
// frame splits its slice at the target's raw index.
func splitBefore[T any, M any, U Unit](c Cursor[T, M, U]) (Rope[T, M, U], Rope[T, M, U]) {
	m := c.m
	var left, right *node[T, M]

	for i := 0; i < len(c.frames); i++ {
		f := c.frames[i]
		if f.n.isLeaf() {
			idx := m.Index(f.n.leaf, f.target)
			prefix, suffix := f.n.leaf.SplitAt(idx)
			left = appendChunk(left, newLeaf(prefix, m), m)
			right = prependChunk(newLeaf(suffix, m), right, m)
			break
		}
		next := c.frames[i+1].n
		if next == f.n.left {
			right = prependChunk(f.n.right, right, m)
		} else {
			left = appendChunk(left, f.n.left, m)
		}
	}

	if left == nil {
		left = emptyNode(m)
	}
	if right == nil {
		right = emptyNode(m)
	}
	return Rope[T, M, U]{root: left, m: m}, Rope[T, M, U]{root: right, m: m}
}

func appendChunk[T any, M any, U Unit](acc, n *node[T, M], m measure.Measure[T, M, U]) *node[T, M] {
	if acc == nil {
		return n
	}
	return concatNode(acc, n, m)
}

func prependChunk[T any, M any, U Unit](n, acc *node[T, M], m measure.Measure[T, M, U]) *node[T, M] {
	if acc == nil {
		return n
	}
	return concatNode(n, acc, m)
}

// SplitBefore splits r into (content before c, content from c onward). c
// must be a cursor obtained from r (or derived from one via Advance /
// Retreat) — a cursor from a different rope is a contract violation.
func (r Rope[T, M, U]) SplitBefore(c Cursor[T, M, U]) (Rope[T, M, U], Rope[T, M, U]) {
	if c.frames[0].n != r.root {
		panic(errCrossRoot("Rope.SplitBefore"))
	}
	return splitBefore(c)
}

// SplitAfter splits r into (content up to and including c, content after
// c). Equivalent to SplitBefore(c advanced by one unit).
func (r Rope[T, M, U]) SplitAfter(c Cursor[T, M, U]) (Rope[T, M, U], Rope[T, M, U]) {
	if c.frames[0].n != r.root {
		panic(errCrossRoot("Rope.SplitAfter"))
	}
	return splitBefore(c.Advance(1))
}

// Substr returns the subrange [begin, end) of r. begin and end must both
// be cursors obtained from r, with begin not after end.
//
// Implemented via two SplitBefore calls rather than the single
// diverging-cursor-descent constructor this package's algorithms were
// otherwise ported from: spec.md's own substring law states
// substr(r,i,j) == split_before(split_before(r,j).0, i).1, so building
// Substr directly from that law is both simpler and self-evidently
// correct, at the cost of one extra O(log n) pass plus rebuilding a
// cursor for i against the intermediate left piece (i's absolute
// measure-unit position is unchanged by that first split, since
// everything before j — including everything before i — survives into
// the left piece untouched).
func (r Rope[T, M, U]) Substr(begin, end Cursor[T, M, U]) Rope[T, M, U] {
	if begin.frames[0].n != r.root || end.frames[0].n != r.root {
		panic(errCrossRoot("Rope.Substr"))
	}
	if begin.Compare(end) > 0 {
		panic(&RopeError{Type: "InvalidRange", Message: "Substr: begin after end"})
	}
	iUnits := begin.frames[0].target

	left, _ := r.SplitBefore(end)
	innerBegin := left.Begin().Advance(iUnits)
	_, mid := left.SplitBefore(innerBegin)
	return mid
}
