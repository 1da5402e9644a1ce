package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreseekdev/liana/pkg/slice"
)

func TestLineJoinWithIdentity(t *testing.T) {
	var l Line
	s := slice.FromBuffer([]byte("a\nbb\nccc"))
	a := l.Accumulate(s)
	assert.Equal(t, a, l.Join(l.Identity(), a))
	assert.Equal(t, a, l.Join(a, l.Identity()))
}

func TestLineUnitOfScenario(t *testing.T) {
	var l Line
	// spec.md S6: "a\nbb\nccc" has unit_of == 3 (two complete lines plus
	// one unterminated trailing line).
	s := slice.FromBuffer([]byte("a\nbb\nccc"))
	assert.Equal(t, 3, l.UnitOf(l.Accumulate(s)))
}

func TestLineIndexScenario(t *testing.T) {
	var l Line
	// spec.md S6: the byte offset of line 2 ("ccc") is 5.
	s := slice.FromBuffer([]byte("a\nbb\nccc"))
	assert.Equal(t, 5, l.Index(s, 2))
}

func TestLineIndexZeroIsZero(t *testing.T) {
	var l Line
	s := slice.FromBuffer([]byte("a\nbb\nccc"))
	assert.Equal(t, 0, l.Index(s, 0))
}

func TestLineTerminatedContentHasNoTrailingPartial(t *testing.T) {
	var l Line
	s := slice.FromBuffer([]byte("a\nb\n"))
	assert.Equal(t, 2, l.UnitOf(l.Accumulate(s)))
}

func TestLineJoinAssociative(t *testing.T) {
	var l Line
	raw := []byte("one\ntwo\nthree")
	a := l.Accumulate(slice.FromBuffer(raw[:4]))
	b := l.Accumulate(slice.FromBuffer(raw[4:8]))
	c := l.Accumulate(slice.FromBuffer(raw[8:]))

	left := l.Join(l.Join(a, b), c)
	right := l.Join(a, l.Join(b, c))
	assert.Equal(t, left, right)
	assert.Equal(t, l.Accumulate(slice.FromBuffer(raw)), left)
}

func TestLineEmptyInput(t *testing.T) {
	var l Line
	s := slice.Empty[byte]()
	assert.Equal(t, 0, l.UnitOf(l.Accumulate(s)))
}
