package rope

import (
	"github.com/coreseekdev/liana/pkg/measure"
	"github.com/coreseekdev/liana/pkg/slice"
)

// Unit constrains a Measure's position-unit type to something Cursor can do
// arithmetic on. Every measure in package measure instantiates U as plain
// int; the constraint is declared here, rather than tightened on
// measure.Measure itself, so that interface stays usable for any unit type
// a caller's own Accumulate/Index choose to report, while package rope
// (which actually needs to add and compare positions) only has to work
// with the ones that support it.
type Unit interface {
	~int
}

// MaxLeaf bounds how many items a single leaf may hold. A slice at or past
// this size is split at its midpoint at construction time, recursively,
// until every leaf holds fewer than MaxLeaf items (spec.md §3/§6). 1024 matches the teacher
// repository's own DefaultMaxLeafSize.
const MaxLeaf = 1024

type nodeKind uint8

const (
	nodeLeaf nodeKind = iota
	nodeBranch
)

// node is a persistent rope node: either a leaf holding one slice, or a
// branch holding two children. size, weight, and agg are fixed at
// construction and never mutated afterward — every transformation builds
// new nodes rather than editing existing ones.
type node[T any, M any] struct {
	kind  nodeKind
	leaf  slice.Slice[T]
	left  *node[T, M]
	right *node[T, M]
	size  int // item count across this subtree
	weight int // leaf count across this subtree
	agg   M
}

func (n *node[T, M]) isLeaf() bool { return n.kind == nodeLeaf }

func emptyNode[T, M, U any](m measure.Measure[T, M, U]) *node[T, M] {
	return &node[T, M]{kind: nodeLeaf, leaf: slice.Empty[T](), size: 0, weight: 1, agg: m.Identity()}
}

// newLeaf wraps s in a leaf node, splitting at the midpoint into a branch
// of two recursively built halves when s is at or beyond MaxLeaf.
func newLeaf[T, M, U any](s slice.Slice[T], m measure.Measure[T, M, U]) *node[T, M] {
	if s.Len() >= MaxLeaf {
		l, r := s.SplitAt(s.Len() / 2)
		return newBranch(newLeaf(l, m), newLeaf(r, m), m)
	}
	return &node[T, M]{kind: nodeLeaf, leaf: s, size: s.Len(), weight: 1, agg: m.Accumulate(s)}
}

func newBranch[T, M, U any](left, right *node[T, M], m measure.Measure[T, M, U]) *node[T, M] {
	return &node[T, M]{
		kind:   nodeBranch,
		left:   left,
		right:  right,
		size:   left.size + right.size,
		weight: left.weight + right.weight,
		agg:    m.Join(left.agg, right.agg),
	}
}

// concatNode joins left and right into one subtree. An empty side is
// dropped rather than wrapped in a branch, which keeps repeated Concat
// calls (as Builder performs) from accumulating empty-leaf chaff; this is
// purely an implementation choice — concat's only documented law is
// observational equality with whichever side is non-empty.
func concatNode[T, M, U any](left, right *node[T, M], m measure.Measure[T, M, U]) *node[T, M] {
	if left.size == 0 {
		return right
	}
	if right.size == 0 {
		return left
	}
	return newBranch(left, right, m)
}

func collectLeaves[T, M any](n *node[T, M], out []*node[T, M]) []*node[T, M] {
	if n.isLeaf() {
		if n.size > 0 {
			out = append(out, n)
		}
		return out
	}
	out = collectLeaves(n.left, out)
	out = collectLeaves(n.right, out)
	return out
}

func eachChunk[T, M any](n *node[T, M], visit func(slice.Slice[T])) {
	if n.isLeaf() {
		if n.size > 0 {
			visit(n.leaf)
		}
		return
	}
	eachChunk(n.left, visit)
	eachChunk(n.right, visit)
}
