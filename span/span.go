// Package span holds the annotated text of a rich-text editor: a rune
// buffer plus a set of typed style spans over ranges of it.
package span

import "fmt"

// Kind identifies the formatting a span applies.
type Kind int

const (
	Bold Kind = iota
	Italic
	Underline
	RelativeSize
)

// Kinds lists every span kind in canonical order.
var Kinds = []Kind{Bold, Italic, Underline, RelativeSize}

func (k Kind) String() string {
	switch k {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case RelativeSize:
		return "size"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("bad span kind: %q", s)
}

// Boundary says how a span's end reacts to text inserted exactly at it.
// The start of a span is always exclusive.
type Boundary int

const (
	ExclusiveExclusive Boundary = iota
	ExclusiveInclusive          // end grows to absorb text typed at it
)

// Origin distinguishes underline applied by the user from underline the
// host toolkit paints near the cursor. It is meaningless for other kinds.
type Origin int

const (
	UserUnderline Origin = iota
	TransientUnderline
)

// DefaultRelativeSize is the multiplier of unsized text.
const DefaultRelativeSize = 1.0

// ID identifies a span within a Model. IDs are never reused.
type ID uint64

// Span is one formatting annotation over [Start, End).
type Span struct {
	ID       ID
	Kind     Kind
	Start    int
	End      int
	Size     float64 // RelativeSize only
	Boundary Boundary
	Origin   Origin // Underline only
}

// Len returns the number of runes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsTransient reports whether s is a toolkit-injected underline.
func (s Span) IsTransient() bool {
	return s.Kind == Underline && s.Origin == TransientUnderline
}

// Overlaps reports whether s intersects [start, end). Empty spans and
// empty queries match when they touch; otherwise the ranges must share
// at least one offset.
func (s Span) Overlaps(start, end int) bool {
	if s.Start > end || s.End < start {
		return false
	}
	if s.Start != s.End && start != end {
		return s.Start != end && s.End != start
	}
	return true
}

// Abuts reports whether s ends at start or begins at end without
// overlapping [start, end).
func (s Span) Abuts(start, end int) bool {
	return s.End == start || s.Start == end
}

// FullyCovers reports whether sp covers all of [start, end).
func FullyCovers(sp Span, start, end int) bool {
	return sp.Start <= start && sp.End >= end
}

// DefaultBoundary returns the boundary rule for spans the editor creates.
// User underline never absorbs trailing text.
func DefaultBoundary(k Kind) Boundary {
	if k == Underline {
		return ExclusiveExclusive
	}
	return ExclusiveInclusive
}

// Adjust returns sp as it will be after the runes in [start, end) are
// replaced by n runes. ok is false when a non-empty span collapses to
// nothing.
func Adjust(sp Span, start, end, n int) (Span, bool) {
	wasEmpty := sp.Start == sp.End
	del := end - start

	collapse := func(x int) int {
		switch {
		case x <= start:
			return x
		case x < end:
			return start
		}
		return x - del
	}
	s, e := collapse(sp.Start), collapse(sp.End)

	if n > 0 {
		empty := s == e
		inclusive := sp.Boundary == ExclusiveInclusive
		if s > start || (s == start && !(empty && inclusive)) {
			s += n
		}
		if e > start || (e == start && inclusive) {
			e += n
		}
		if e < s {
			e = s
		}
	}
	sp.Start, sp.End = s, e
	if sp.Start == sp.End && !wasEmpty {
		return sp, false
	}
	return sp, true
}
