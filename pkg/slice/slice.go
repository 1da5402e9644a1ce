// Package slice implements a shared, read-only view over a contiguous
// buffer of items.
//
// A Slice never copies its backing buffer on construction from an existing
// slice: Sub shares the same buffer, the way Go's own slice expression
// s[a:b] shares a backing array. The only place a Slice allocates a fresh
// buffer is Concat, which is the one operation that actually needs new
// storage (joining several leaves' worth of items into one run).
//
// Slice is the leaf-level building block for package rope: every leaf node
// holds exactly one Slice, and every interior node is built by joining the
// measures of its children's Slices.
package slice

// Slice is a shared, immutable view over a run of items of type T.
//
// Multiple Slices may share the same backing buffer; none of them can
// observe or cause a mutation through it. Zero value is the empty slice
// (Len() == 0).
type Slice[T any] struct {
	buf        []T
	start, end int
}

// Empty returns a zero-length slice.
func Empty[T any]() Slice[T] {
	return Slice[T]{}
}

// FromBuffer returns a slice covering the whole of buf.
//
// buf is retained, not copied; callers must not mutate it afterward.
func FromBuffer[T any](buf []T) Slice[T] {
	return Slice[T]{buf: buf, start: 0, end: len(buf)}
}

// Len returns the number of items in the slice.
func (s Slice[T]) Len() int {
	return s.end - s.start
}

// At returns the item at index i, relative to the start of the slice.
//
// Panics if i is out of range — an out-of-range index is a contract
// violation, not a recoverable error.
func (s Slice[T]) At(i int) T {
	if i < 0 || i >= s.Len() {
		panic("slice: index out of range")
	}
	return s.buf[s.start+i]
}

// Sub returns the subslice [offset, offset+length), sharing the same
// backing buffer as s.
//
// Panics if the requested range falls outside s.
func (s Slice[T]) Sub(offset, length int) Slice[T] {
	if offset < 0 || length < 0 || offset+length > s.Len() {
		panic("slice: sub range out of bounds")
	}
	return Slice[T]{buf: s.buf, start: s.start + offset, end: s.start + offset + length}
}

// SplitAt splits s into two slices at index i: [0, i) and [i, Len()).
func (s Slice[T]) SplitAt(i int) (Slice[T], Slice[T]) {
	return s.Sub(0, i), s.Sub(i, s.Len()-i)
}

// Concat builds a fresh buffer holding the concatenation of parts, in
// order, and returns a slice covering it.
//
// This is the one Slice operation with cost linear in the sum of the
// input sizes — every other operation here except ForEach is O(1).
func Concat[T any](parts []Slice[T]) Slice[T] {
	total := 0
	for _, p := range parts {
		total += p.Len()
	}
	if total == 0 {
		return Empty[T]()
	}
	buf := make([]T, 0, total)
	for _, p := range parts {
		buf = append(buf, p.buf[p.start:p.end]...)
	}
	return FromBuffer(buf)
}

// ForEach calls f with each item in the slice, in order.
func (s Slice[T]) ForEach(f func(T)) {
	for i := s.start; i < s.end; i++ {
		f(s.buf[i])
	}
}

// Raw returns the slice's items as a plain Go slice. The returned slice
// shares storage with s and must not be mutated.
func (s Slice[T]) Raw() []T {
	return s.buf[s.start:s.end]
}
