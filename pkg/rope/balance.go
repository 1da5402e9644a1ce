package rope

import (
	"github.com/coreseekdev/liana/pkg/measure"
	"github.com/coreseekdev/liana/pkg/slice"
)

// Balance operations maintain the tree's depth bound by rebuilding it with
// Fibonacci (Boehm-Atkinson-Plass) rebalancing: leaves are collected left
// to right, optionally coalesced when small, then placed into Fibonacci
// weight-class slots and folded back into a tree whose depth is O(log
// weight) (spec.md §4.5, §4.8).
//
// Balance returns r unchanged if it is already a single leaf.
func (r Rope[T, M, U]) Balance() Rope[T, M, U] {
	if r.root.isLeaf() {
		return r
	}

	leaves := collectLeaves(r.root, nil)
	if len(leaves) == 0 {
		return Rope[T, M, U]{root: emptyNode(r.m), m: r.m}
	}

	if r.root.size/len(leaves) < MaxLeaf/2 {
		leaves = coalesceLeaves(leaves, r.m)
	}

	blist := make([]*node[T, M], fibIndex(len(leaves))+1)
	for _, leaf := range leaves {
		insert := leaf
		for {
			t := fibIndex(insert.weight)

			var lighter *node[T, M]
			for idx := 0; idx <= t; idx++ {
				if blist[idx] == nil {
					continue
				}
				if lighter != nil {
					lighter = newBranch(blist[idx], lighter, r.m)
				} else {
					lighter = blist[idx]
				}
				blist[idx] = nil
			}

			if lighter == nil {
				blist[t] = insert
				break
			}
			insert = newBranch(lighter, insert, r.m)
		}
	}

	var balanced *node[T, M]
	for idx := 0; idx < len(blist); idx++ {
		if blist[idx] == nil {
			continue
		}
		if balanced != nil {
			balanced = newBranch(blist[idx], balanced, r.m)
		} else {
			balanced = blist[idx]
		}
	}
	if balanced == nil {
		balanced = emptyNode(r.m)
	}
	return Rope[T, M, U]{root: balanced, m: r.m}
}

// coalesceLeaves merges consecutive small leaves into groups just under
// MaxLeaf, reducing the number of Fibonacci slots Balance has to place —
// useful after many small Concats have left the tree fragmented into
// leaves far smaller than MaxLeaf.
//
// This replaces the source's equivalent pass, whose running-size
// accumulator is seeded with the first leaf's size *before* the loop also
// adds that same leaf's size on its first iteration — double-counting it
// and making the first coalesced group's flush trigger sooner than its
// true byte total warrants. Tracking the running size from zero and
// adding each leaf exactly once when it is appended to the pending group
// avoids that.
func coalesceLeaves[T any, M any, U Unit](leaves []*node[T, M], m measure.Measure[T, M, U]) []*node[T, M] {
	var out []*node[T, M]
	var group []*node[T, M]
	groupSize := 0

	flush := func() {
		switch len(group) {
		case 0:
			return
		case 1:
			out = append(out, group[0])
		default:
			parts := make([]slice.Slice[T], len(group))
			for i, g := range group {
				parts[i] = g.leaf
			}
			out = append(out, newLeaf(slice.Concat(parts), m))
		}
		group = nil
		groupSize = 0
	}

	for _, leaf := range leaves {
		if groupSize+leaf.size >= MaxLeaf {
			flush()
		}
		group = append(group, leaf)
		groupSize += leaf.size
	}
	flush()
	return out
}
