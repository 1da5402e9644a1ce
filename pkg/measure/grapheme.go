package measure

import (
	"github.com/clipperhouse/uax29/graphemes"

	"github.com/coreseekdev/liana/pkg/slice"
)

// graphemeCarryCap bounds how many bytes of boundary-straddling context the
// Grapheme measure keeps on each edge. It must be generous enough to hold
// the longest grapheme cluster a join is expected to see (combining marks,
// flag sequences, most ZWJ emoji sequences); a cluster longer than this
// that happens to straddle exactly one subtree boundary will be
// undercounted by one. This is a pragmatic bound, not a correctness
// guarantee — unlike the UTF8 measure's 4-byte cap, which is exact because
// a UTF-8 code point is never longer than 4 bytes.
const graphemeCarryCap = 32

// GraphemeAgg mirrors UTF8Agg's shape (pre/count/post) but at the
// granularity of user-perceived characters rather than code points: count
// is the number of grapheme clusters already confirmed complete, and
// pre/post hold the first and last candidate cluster's bytes whenever that
// candidate might still merge with a neighboring subtree.
//
// Unlike UTF8Agg's pre/post (which are disjoint byte ranges that together
// reconstruct a leaf's unresolved tail), a leaf that segments to exactly
// one ambiguous cluster candidate sets pre and post to the *same* bytes —
// it genuinely does not know yet whether that candidate will end up
// attaching to something on its left or its right. single records that
// case, so Join and UnitOf don't double-count or double-clear it.
type GraphemeAgg struct {
	empty  bool
	pre    []byte
	count  int
	post   []byte
	single bool
}

// Grapheme counts user-perceived characters (grapheme clusters), using
// github.com/clipperhouse/uax29/graphemes for the actual Unicode
// segmentation — the same dependency and boundary-carry shape the teacher
// repository uses for its own grapheme-aware editing operations, adapted
// here into a join-friendly measure usable by rope's generic cursor.
type Grapheme struct{}

var _ Measure[byte, GraphemeAgg, int] = Grapheme{}

func capCarry(b []byte) []byte {
	if len(b) > graphemeCarryCap {
		b = b[:graphemeCarryCap]
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Identity returns the empty aggregate.
func (Grapheme) Identity() GraphemeAgg { return GraphemeAgg{empty: true} }

func leafGraphemeAgg(b []byte) GraphemeAgg {
	if len(b) == 0 {
		return GraphemeAgg{empty: true}
	}
	segs := graphemes.SegmentAllString(string(b))
	if len(segs) <= 1 {
		// A single ambiguous candidate: it might attach to whatever comes
		// before it, to whatever comes after it, or stand alone. Without
		// neighboring context we cannot tell which, so it is carried on
		// both edges until a join resolves it one way or the other.
		carry := capCarry(b)
		return GraphemeAgg{pre: carry, post: carry, single: true}
	}
	return GraphemeAgg{
		pre:   capCarry([]byte(segs[0])),
		count: len(segs) - 2,
		post:  capCarry([]byte(segs[len(segs)-1])),
	}
}

// Accumulate segments s with the Unicode grapheme-cluster algorithm and
// reports the clusters strictly contained within it, carrying the
// boundary-ambiguous first/last clusters in pre/post exactly as Join does.
func (Grapheme) Accumulate(s slice.Slice[byte]) GraphemeAgg {
	return leafGraphemeAgg(s.Raw())
}

// Join combines two adjacent grapheme measures by segmenting the boundary
// formed by left.post++right.pre. A single resulting segment means the two
// candidates fuse into one cluster (count+1, both candidates consumed);
// two or more means they stay separate, so each candidate that was still
// pending is now confirmed complete on its own (count+1 per side).
//
// left.single (equivalently right.single) means left.pre and left.post are
// the same bytes: whatever this join decides about left.post also settles
// left.pre, so left.pre must not also propagate forward as still-pending —
// it is dropped rather than carried, the same way the matching count
// increment already accounts for it.
func (Grapheme) Join(left, right GraphemeAgg) GraphemeAgg {
	if left.empty {
		return right
	}
	if right.empty {
		return left
	}

	boundary := append(append([]byte{}, left.post...), right.pre...)
	count := left.count + right.count

	switch {
	case len(boundary) == 0:
		// nothing pending on either edge
	case len(graphemes.SegmentAllString(string(boundary))) <= 1:
		count++
	default:
		if len(left.post) > 0 {
			count++
		}
		if len(right.pre) > 0 {
			count++
		}
	}

	var pre, post []byte
	if !left.single {
		pre = left.pre
	}
	if !right.single {
		post = right.post
	}
	return GraphemeAgg{count: count, pre: pre, post: post}
}

// UnitOf returns the grapheme-cluster count carried by m. Any remaining
// pre/post candidate is counted as complete: UnitOf is always called on an
// aggregate with nothing left to join against (the whole rope, or the
// whole slice under test), so a still-pending candidate has no more
// neighboring context coming and is therefore as resolved as it will ever
// be. single guards against counting the same candidate twice when pre and
// post are the same bytes.
func (Grapheme) UnitOf(m GraphemeAgg) int {
	n := m.count
	if m.single {
		if len(m.pre) > 0 {
			n++
		}
		return n
	}
	if len(m.pre) > 0 {
		n++
	}
	if len(m.post) > 0 {
		n++
	}
	return n
}

// Index returns the byte index within s at which the target-th grapheme
// cluster begins, saturating to s.Len() once target exceeds the cluster
// count.
func (Grapheme) Index(s slice.Slice[byte], target int) int {
	raw := s.Raw()
	if target <= 0 {
		return 0
	}
	segs := graphemes.SegmentAllString(string(raw))
	pos := 0
	for i, seg := range segs {
		if i == target {
			return pos
		}
		pos += len(seg)
	}
	return len(raw)
}
