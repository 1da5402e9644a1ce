package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmpty(t *testing.T) {
	s := Empty[byte]()
	assert.Equal(t, 0, s.Len())
}

func TestFromBuffer(t *testing.T) {
	s := FromBuffer([]byte("hello"))
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, byte('h'), s.At(0))
	assert.Equal(t, byte('o'), s.At(4))
}

func TestSub(t *testing.T) {
	s := FromBuffer([]byte("hello world"))
	sub := s.Sub(6, 5)
	assert.Equal(t, 5, sub.Len())
	assert.Equal(t, "world", string(sub.Raw()))
}

func TestSubSharesBuffer(t *testing.T) {
	buf := []byte("hello world")
	s := FromBuffer(buf)
	sub := s.Sub(0, 5)
	subOfSub := sub.Sub(1, 3)
	assert.Equal(t, "ell", string(subOfSub.Raw()))
	assert.Same(t, &buf[1], &subOfSub.Raw()[0])
}

func TestSubOutOfRangePanics(t *testing.T) {
	s := FromBuffer([]byte("hi"))
	assert.Panics(t, func() { s.Sub(1, 5) })
	assert.Panics(t, func() { s.Sub(-1, 1) })
}

func TestSplitAt(t *testing.T) {
	s := FromBuffer([]byte("hello"))
	left, right := s.SplitAt(2)
	assert.Equal(t, "he", string(left.Raw()))
	assert.Equal(t, "llo", string(right.Raw()))
}

func TestConcat(t *testing.T) {
	a := FromBuffer([]byte("foo"))
	b := FromBuffer([]byte("bar"))
	c := FromBuffer([]byte("baz"))
	joined := Concat([]Slice[byte]{a, b, c})
	assert.Equal(t, "foobarbaz", string(joined.Raw()))
}

func TestConcatEmpty(t *testing.T) {
	joined := Concat[byte](nil)
	assert.Equal(t, 0, joined.Len())
}

func TestConcatDoesNotMutateInputs(t *testing.T) {
	a := FromBuffer([]byte("foo"))
	b := FromBuffer([]byte("bar"))
	_ = Concat([]Slice[byte]{a, b})
	assert.Equal(t, "foo", string(a.Raw()))
	assert.Equal(t, "bar", string(b.Raw()))
}

func TestForEach(t *testing.T) {
	s := FromBuffer([]byte("abc"))
	var got []byte
	s.ForEach(func(b byte) { got = append(got, b) })
	assert.Equal(t, []byte("abc"), got)
}

func TestAtOutOfRangePanics(t *testing.T) {
	s := FromBuffer([]byte("a"))
	assert.Panics(t, func() { s.At(1) })
	assert.Panics(t, func() { s.At(-1) })
}
