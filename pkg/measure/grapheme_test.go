package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreseekdev/liana/pkg/slice"
)

func TestGraphemeASCII(t *testing.T) {
	var g Grapheme
	s := slice.FromBuffer([]byte("hello"))
	assert.Equal(t, 5, g.UnitOf(g.Accumulate(s)))
}

func TestGraphemeJoinWithIdentity(t *testing.T) {
	var g Grapheme
	s := slice.FromBuffer([]byte("hello"))
	a := g.Accumulate(s)
	assert.Equal(t, a, g.Join(g.Identity(), a))
	assert.Equal(t, a, g.Join(a, g.Identity()))
}

func TestGraphemeCombiningMarkIsOneCluster(t *testing.T) {
	var g Grapheme
	// Latin small letter e (U+0065) followed by a combining acute accent
	// (U+0301): one grapheme cluster spanning two code points.
	raw := []byte("é")
	s := slice.FromBuffer(raw)
	assert.Equal(t, 1, g.UnitOf(g.Accumulate(s)))
}

func TestGraphemeJoinAcrossClusterBoundary(t *testing.T) {
	var g Grapheme
	// Split the base letter from its combining accent: joining the two
	// halves must recognize the completed cluster.
	raw := []byte("éx")
	left := slice.FromBuffer(raw[:1])  // base letter alone
	right := slice.FromBuffer(raw[1:]) // combining accent + "x"

	joined := g.Join(g.Accumulate(left), g.Accumulate(right))
	assert.Equal(t, 2, g.UnitOf(joined))
	// Direct whole-slice accumulation resolves the boundary immediately
	// rather than carrying it as a still-pending candidate, so the two
	// aggregates' internal shapes legitimately differ; what must agree is
	// the cluster count each reports.
	assert.Equal(t, g.UnitOf(g.Accumulate(slice.FromBuffer(raw))), g.UnitOf(joined))
}

func TestGraphemeIndex(t *testing.T) {
	var g Grapheme
	s := slice.FromBuffer([]byte("hello"))
	assert.Equal(t, 0, g.Index(s, 0))
	assert.Equal(t, 2, g.Index(s, 2))
	assert.Equal(t, 5, g.Index(s, 100))
}

func TestGraphemeEmptyInput(t *testing.T) {
	var g Grapheme
	s := slice.Empty[byte]()
	assert.Equal(t, 0, g.UnitOf(g.Accumulate(s)))
}

func TestGraphemeJoinOfUnrelatedSingleLetterLeaves(t *testing.T) {
	var g Grapheme
	// Two plain letters in separate leaves, with nothing between them that
	// would ever merge them: each resolves to its own complete cluster as
	// soon as the join sees they don't fuse.
	left := slice.FromBuffer([]byte("x"))
	right := slice.FromBuffer([]byte("y"))
	joined := g.Join(g.Accumulate(left), g.Accumulate(right))
	assert.Equal(t, 2, g.UnitOf(joined))
}

func TestGraphemeJoinChainedSingleRuneLeaves(t *testing.T) {
	var g Grapheme
	// The base letter and its combining accent each land in their own
	// leaf (one code point per leaf, the measure's assumed granularity):
	// the pending candidate must survive the join and resolve to one
	// cluster only once both runes have actually been seen together.
	raw := []byte("é")
	base := slice.FromBuffer(raw[:1])
	accent := slice.FromBuffer(raw[1:])
	joined := g.Join(g.Accumulate(base), g.Accumulate(accent))
	assert.Equal(t, 1, g.UnitOf(joined))
}
