package rope

import (
	"github.com/coreseekdev/liana/pkg/measure"
	"github.com/coreseekdev/liana/pkg/slice"
)

// Builder provides an efficient way to build a Rope through repeated
// Append calls. It optimizes batches by merging consecutive appends into
// one contiguous buffer and deferring tree construction until Build (or
// an AppendSlice) actually needs the accumulated content — the same
// batching idiom this package's builder started from, adapted to a rope
// with no positional Insert/Delete: there is nothing left to batch here
// but sequential appends.
type Builder[T any, M any, U Unit] struct {
	m       measure.Measure[T, M, U]
	rope    Rope[T, M, U]
	pending []T
}

// NewBuilder returns an empty Builder bound to m.
func NewBuilder[T any, M any, U Unit](m measure.Measure[T, M, U]) *Builder[T, M, U] {
	return &Builder[T, M, U]{m: m, rope: Empty(m)}
}

// Append queues items to be included at the end of the built rope.
func (b *Builder[T, M, U]) Append(items []T) *Builder[T, M, U] {
	b.pending = append(b.pending, items...)
	return b
}

// AppendSlice flushes any pending Append calls and concatenates s onto the
// rope being built, without copying s's contents into the pending buffer.
func (b *Builder[T, M, U]) AppendSlice(s slice.Slice[T]) *Builder[T, M, U] {
	b.flush()
	b.rope = b.rope.Concat(FromSlice(s, b.m))
	return b
}

func (b *Builder[T, M, U]) flush() {
	if len(b.pending) == 0 {
		return
	}
	b.rope = b.rope.Concat(FromBuffer(b.pending, b.m))
	b.pending = nil
}

// Build returns the rope constructed so far. The builder remains usable
// afterward; further Append calls add on top of what has already been
// built.
func (b *Builder[T, M, U]) Build() Rope[T, M, U] {
	b.flush()
	return b.rope
}

// Len reports the item count of the rope Build would currently return.
func (b *Builder[T, M, U]) Len() int {
	return b.rope.Len() + len(b.pending)
}

// Reset discards everything accumulated so far.
func (b *Builder[T, M, U]) Reset() {
	b.rope = Empty(b.m)
	b.pending = nil
}
