package measure

import "github.com/coreseekdev/liana/pkg/slice"

// run holds up to 4 bytes of a UTF-8 sequence that straddles a subtree
// boundary — either the tail of a sequence that started earlier (pre) or
// the head of one that continues later (post).
type run struct {
	bytes [4]byte
	n     int
}

func newRun(b []byte) run {
	if len(b) > 4 {
		b = b[:4]
	}
	var r run
	r.n = copy(r.bytes[:], b)
	return r
}

func (r run) Bytes() []byte { return r.bytes[:r.n] }

// UTF8Agg is the aggregate carried by the UTF8 measure: a count of
// complete code points, plus up to 4 carry bytes on each edge for a code
// point that straddles this subtree's boundary (spec.md §4.3).
//
// pre is fixed once, when the leaf holding it is first measured: it is
// content that can only ever be completed by something to this subtree's
// own left, so no join to the right can affect it. post is the opposite —
// it grows across successive right-ward joins until a join supplies
// enough bytes to complete it, at which point it resets to whatever
// trails the newly completed code point.
type UTF8Agg struct {
	empty bool // true only for Identity(): the measure of zero items
	pre   run
	count int
	post  run
}

// UTF8 counts complete UTF-8 code points, correctly handling runes that
// straddle leaf boundaries via the pre/post carry bytes in UTF8Agg.
type UTF8 struct{}

var _ Measure[byte, UTF8Agg, int] = UTF8{}

// Identity returns the empty aggregate: 0 code points, no carry bytes.
func (UTF8) Identity() UTF8Agg { return UTF8Agg{empty: true} }

// leadingOnes counts the number of leading 1-bits in b: 0 for ASCII, 1 for
// a UTF-8 continuation byte, 2/3/4 for the lead byte of a 2/3/4-byte
// sequence.
func leadingOnes(b byte) int {
	n := 0
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) == 0 {
			break
		}
		n++
	}
	return n
}

// findLead scans b for the first UTF-8 lead byte (leadingOnes >= 2) and
// returns its index and the sequence length it claims. Returns (-1, 0) if
// no lead byte is present.
func findLead(b []byte) (int, int) {
	for i, c := range b {
		if k := leadingOnes(c); k >= 2 {
			return i, k
		}
	}
	return -1, 0
}

// perByteUTF8 returns the one-byte measure of a single byte, matching the
// convention leafUTF8Agg would assign a one-byte slice: a complete code
// point for ASCII; a lone continuation byte goes to pre (it has no lead
// byte of its own within this "slice", so it can only be resolved by
// something to the left); a lone lead byte goes to post (it needs
// trailing bytes that aren't here yet, so it can only be resolved by
// something to the right).
func perByteUTF8(c byte) UTF8Agg {
	if c&0x80 == 0 {
		return UTF8Agg{count: 1}
	}
	if leadingOnes(c) == 1 {
		return UTF8Agg{pre: newRun([]byte{c})}
	}
	return UTF8Agg{post: newRun([]byte{c})}
}

// Join combines two adjacent code-point measures. It concatenates
// left.post with right's pending prefix into a boundary buffer and looks
// for a lead byte there whose claimed sequence length fits entirely
// within that buffer: finding one means a code point straddling the
// boundary has just completed, so count gains one. A lead byte whose
// sequence runs past the end of the boundary, or no lead byte at all,
// means nothing completes yet; the pending bytes carry forward into post
// for a later join to resolve. pre always propagates from left unchanged
// — a join to the right can only ever resolve content that depends on
// bytes to the right, which is exactly what post tracks.
//
// When right has no complete code points of its own, all of its content
// (both right.pre and right.post — it may have distinct leading and
// trailing pending runs with nothing resolved between them) is still
// pending and must be folded into the boundary, not just right.pre; using
// right.pre alone would silently drop right.post's bytes whenever
// right.pre fully resolves against left.post.
func (UTF8) Join(left, right UTF8Agg) UTF8Agg {
	if left.empty {
		return right
	}
	if right.empty {
		return left
	}

	rightPending := right.pre.Bytes()
	if right.count == 0 {
		rightPending = append(append([]byte{}, right.pre.Bytes()...), right.post.Bytes()...)
	}
	boundary := append(append([]byte{}, left.post.Bytes()...), rightPending...)
	i, k := findLead(boundary)

	if i < 0 || i+k > len(boundary) {
		post := right.post
		if right.count == 0 {
			if i < 0 {
				post = newRun(boundary)
			} else {
				post = newRun(boundary[i:])
			}
		}
		return UTF8Agg{count: left.count + right.count, pre: left.pre, post: post}
	}

	result := UTF8Agg{count: left.count + right.count + 1, pre: left.pre}
	if right.count == 0 {
		result.post = newRun(boundary[i+k:])
	} else {
		result.post = right.post
	}
	return result
}

// leafUTF8Agg decodes raw directly: count is the number of complete code
// points strictly inside it, pre is a leading run of continuation bytes
// with no lead byte of their own (present only if raw starts mid
// sequence), and post is a trailing lead-started sequence that does not
// have enough following bytes within raw to complete (present only if raw
// ends mid sequence).
func leafUTF8Agg(raw []byte) UTF8Agg {
	if len(raw) == 0 {
		return UTF8Agg{empty: true}
	}

	i := 0
	for i < len(raw) && leadingOnes(raw[i]) == 1 {
		i++
	}
	pre := newRun(raw[:i])

	count := 0
	for i < len(raw) {
		c := raw[i]
		if c&0x80 == 0 {
			count++
			i++
			continue
		}
		k := leadingOnes(c)
		if k < 2 || i+k > len(raw) {
			break
		}
		count++
		i += k
	}

	return UTF8Agg{pre: pre, count: count, post: newRun(raw[i:])}
}

// Accumulate decodes s directly rather than folding Join over individual
// bytes: a single byte is rarely a meaningful unit of UTF-8 content, so
// leaf measurement works on the whole slice at once, the way it is
// actually used when a rope leaf is built.
func (UTF8) Accumulate(s slice.Slice[byte]) UTF8Agg {
	return leafUTF8Agg(s.Raw())
}

// UnitOf returns the complete code-point count carried by m.
func (UTF8) UnitOf(m UTF8Agg) int { return m.count }

// Index returns the byte index within s at which the target-th code
// point (0-indexed) begins, by replaying join-based accumulation byte by
// byte. Saturates to s.Len() once target exceeds s's code-point count.
func (u UTF8) Index(s slice.Slice[byte], target int) int {
	if target <= 0 {
		return 0
	}
	raw := s.Raw()
	acc := u.Identity()
	for i, c := range raw {
		acc = u.Join(acc, perByteUTF8(c))
		if acc.count >= target {
			return i + 1
		}
	}
	return len(raw)
}
