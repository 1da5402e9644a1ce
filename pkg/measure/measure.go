// Package measure defines the monoidal measure protocol that parameterizes
// package rope, plus four reference implementations: byte count, UTF-8
// code-point count, line count, and grapheme-cluster count.
//
// A measure is what lets a rope answer "where is position N" without
// scanning every item: every node caches the join of its children's
// measures, so walking from the root to a leaf costs O(depth), not O(size).
package measure

import "github.com/coreseekdev/liana/pkg/slice"

// Measure binds an aggregate type M and a position-unit type U to an item
// type T. It supplies both halves of what spec.md calls the "measure
// binding" (Identity/Join/Accumulate) and the "iterator binding"
// (UnitOf/Index) — the source's `index` and `locate` callbacks are the same
// operation under two names, so they are collapsed into the single Index
// method here.
//
// Implementations must satisfy three laws:
//
//   - Associativity: Join(Join(a, b), c) == Join(a, Join(b, c)). This is
//     what a rope actually relies on: an interior node's cached measure is
//     Join(leftChild, rightChild), computed once and never by replaying a
//     per-item fold, so Join must behave correctly when combining two
//     already-accumulated adjacent subtree measures of any size.
//   - Identity: Join(Identity(), a) == Join(a, Identity()) == a.
//   - Bulk consistency: Accumulate(s) equals the left fold of Join over
//     the one-item measures of each item in s, starting from Identity().
//     For measures whose items are themselves meaningful units (Bytes,
//     Line) this holds by direct per-item folding. For measures whose
//     items (single bytes) are not meaningful on their own — UTF8 and
//     Grapheme, where a single byte is usually a fragment of a code point
//     or cluster — Accumulate instead decodes the whole slice in one
//     pass, and satisfies this law by construction rather than by
//     literally folding; what callers actually depend on is Join's
//     associativity across leaf-sized chunks, which this package's tests
//     verify directly.
//
// Index must be monotone non-decreasing in target, and must saturate to
// s.Len() once target exceeds the slice's unit count. A Measure that
// violates these laws produces silently wrong rope results — there is no
// runtime check for it, by design (spec.md §7).
type Measure[T any, M any, U any] interface {
	// Identity returns the monoid identity for Join.
	Identity() M

	// Join associatively combines two adjacent measures, left then right.
	Join(left, right M) M

	// Accumulate folds Join over the items of s in order. Implementations
	// may compute this directly rather than calling Join per item, as long
	// as the result matches the fold.
	Accumulate(s slice.Slice[T]) M

	// UnitOf projects a position-scalar out of an aggregate measure, e.g.
	// the code-point count carried by a UTF8 measure.
	UnitOf(m M) U

	// Index returns the item index within s at which unit-position target
	// is reached. Returns s.Len() if target exceeds s's unit count.
	Index(s slice.Slice[T], target U) int
}
