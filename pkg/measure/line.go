package measure

import "github.com/coreseekdev/liana/pkg/slice"

// LineAgg counts newline bytes (0x0A) plus whether the measured run's
// trailing edge sits mid-line (trailingPartial) — i.e. the run's last byte
// is not a newline, so there is one more "line" than count suggests. empty
// marks the identity value so Join can short-circuit correctly; without
// it, a join against Identity() cannot tell whether the identity's own
// trailingPartial should win or the other operand's should.
type LineAgg struct {
	empty           bool
	count           int
	trailingPartial bool
}

// Line counts newline-terminated lines. The measure unit is "line number":
// UnitOf reports one past the last complete line whenever the measured
// content does not end in a newline, matching how editors number an
// unterminated final line.
//
// The source (original_source/src/utf8.cc, LineMeasure::Join) computes
// the combined partial-line flag as `left.lpartial`, inherited from the
// left operand only. That fails the monoid identity law — Join(Identity(),
// a) must equal a, but under that rule it always returns Identity()'s own
// flag instead of a's. The join below instead takes the trailing flag from
// whichever operand represents content that actually comes last, which is
// the only rule consistent with Identity() being a two-sided identity and
// with associativity across three-way joins.
type Line struct{}

var _ Measure[byte, LineAgg, int] = Line{}

// Identity returns the identity aggregate for zero items.
func (Line) Identity() LineAgg { return LineAgg{empty: true} }

// Join combines two adjacent line measures.
func (Line) Join(left, right LineAgg) LineAgg {
	if left.empty {
		return right
	}
	if right.empty {
		return left
	}
	return LineAgg{count: left.count + right.count, trailingPartial: right.trailingPartial}
}

func perByteLine(c byte) LineAgg {
	if c == '\n' {
		return LineAgg{count: 1}
	}
	return LineAgg{trailingPartial: true}
}

// Accumulate folds Join over each byte of s, in order.
func (l Line) Accumulate(s slice.Slice[byte]) LineAgg {
	acc := l.Identity()
	s.ForEach(func(b byte) {
		acc = l.Join(acc, perByteLine(b))
	})
	return acc
}

// UnitOf returns the line count, plus one if the measured content is
// non-empty and its last byte is not a newline.
func (Line) UnitOf(m LineAgg) int {
	if m.trailingPartial {
		return m.count + 1
	}
	return m.count
}

// Index returns the byte index immediately after the target-th newline;
// 0 if target is 0.
func (Line) Index(s slice.Slice[byte], target int) int {
	if target == 0 {
		return 0
	}
	raw := s.Raw()
	count := 0
	for i, c := range raw {
		if c == '\n' {
			count++
			if count == target {
				return i + 1
			}
		}
	}
	return len(raw)
}
