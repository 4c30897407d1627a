package span

import (
	"slices"
	"unicode/utf8"
)

// Model is annotated text: a Text plus spans kept in insertion order.
// Queries return copies, so callers may mutate the model while walking
// a result.
type Model struct {
	text   *Text
	spans  []Span // ordered by ID
	nextID ID
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{text: NewText(""), nextID: 1}
}

// Len returns the text length in runes.
func (m *Model) Len() int {
	return m.text.Len()
}

// String returns the plain text.
func (m *Model) String() string {
	return m.text.String()
}

// Slice returns the text in [start, end).
func (m *Model) Slice(start, end int) (string, error) {
	return m.text.Slice(start, end)
}

// NumSpans returns the number of spans.
func (m *Model) NumSpans() int {
	return len(m.spans)
}

// Spans returns all spans in insertion order.
func (m *Model) Spans() []Span {
	return slices.Clone(m.spans)
}

// Get returns the span with the given ID.
func (m *Model) Get(id ID) (Span, bool) {
	if i := m.index(id); i >= 0 {
		return m.spans[i], true
	}
	return Span{}, false
}

func (m *Model) index(id ID) int {
	i, ok := slices.BinarySearchFunc(m.spans, id, func(s Span, id ID) int {
		switch {
		case s.ID < id:
			return -1
		case s.ID > id:
			return 1
		}
		return 0
	})
	if !ok {
		return -1
	}
	return i
}

// Overlapping returns the spans intersecting [start, end), restricted to
// kinds when any are given.
func (m *Model) Overlapping(start, end int, kinds ...Kind) []Span {
	var out []Span
	for _, s := range m.spans {
		if len(kinds) > 0 && !slices.Contains(kinds, s.Kind) {
			continue
		}
		if s.Overlaps(start, end) {
			out = append(out, s)
		}
	}
	return out
}

// Add inserts sp and returns its new ID. Any ID already set on sp is
// ignored.
func (m *Model) Add(sp Span) (ID, error) {
	if err := checkRange("add span", sp.Start, sp.End, m.Len()); err != nil {
		return 0, err
	}
	if sp.Kind == RelativeSize && sp.Size <= 0 {
		sp.Size = DefaultRelativeSize
	}
	sp.ID = m.nextID
	m.nextID++
	m.spans = append(m.spans, sp)
	return sp.ID, nil
}

// Remove deletes the span with the given ID. Removing an unknown span is
// not an error.
func (m *Model) Remove(id ID) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.spans = slices.Delete(m.spans, i, i+1)
	return true
}

// RemoveFunc deletes every span for which del returns true and reports
// how many were removed.
func (m *Model) RemoveFunc(del func(Span) bool) int {
	n := len(m.spans)
	m.spans = slices.DeleteFunc(m.spans, del)
	return n - len(m.spans)
}

// ClearSpans removes every span, leaving the text alone.
func (m *Model) ClearSpans() {
	m.spans = m.spans[:0]
}

// Reset replaces the text and spans. Spans receive fresh IDs in the
// order given.
func (m *Model) Reset(text string, spans []Span) error {
	n := utf8.RuneCountInString(text)
	for _, sp := range spans {
		if err := checkRange("reset", sp.Start, sp.End, n); err != nil {
			return err
		}
	}
	m.text.Reset(text)
	m.spans = m.spans[:0]
	for _, sp := range spans {
		if _, err := m.Add(sp); err != nil {
			return err
		}
	}
	return nil
}

// Replace substitutes s for the text in [start, end) and moves every
// span by its boundary rule. Spans that collapse are removed and
// returned.
func (m *Model) Replace(start, end int, s string) ([]Span, error) {
	if err := m.text.Replace(start, end, s); err != nil {
		return nil, err
	}
	n := utf8.RuneCountInString(s)
	var dropped []Span
	kept := m.spans[:0]
	for _, sp := range m.spans {
		adj, ok := Adjust(sp, start, end, n)
		if !ok {
			dropped = append(dropped, sp)
			continue
		}
		kept = append(kept, adj)
	}
	m.spans = kept
	return dropped, nil
}

// Insert inserts s at offset at.
func (m *Model) Insert(at int, s string) error {
	_, err := m.Replace(at, at, s)
	return err
}

// Delete removes the text in [start, end).
func (m *Model) Delete(start, end int) ([]Span, error) {
	return m.Replace(start, end, "")
}
