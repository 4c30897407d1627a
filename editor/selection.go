package editor

import "github.com/rjkroege/richedit/span"

// SelectionChanged records a new selection and sets the controls from
// the spans there. A cursor reflects the rune before it; a range
// reflects only spans covering all of it.
func (e *Editor) SelectionChanged(start, end int) {
	e.selStart, e.selEnd = start, end
	if e.quiet {
		e.quiet = false
		return
	}

	if start > end {
		start, end = end, start
	}
	n := e.model.Len()
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)

	var found []span.Span
	switch {
	case start == end && start > 0:
		found = e.model.Overlapping(start-1, start)
	case start != end:
		for _, s := range e.model.Overlapping(start, end) {
			if span.FullyCovers(s, start, end) {
				found = append(found, s)
			}
		}
	}

	var bold, italic, underline bool
	size := e.sizes.Default
	for _, s := range found {
		switch s.Kind {
		case span.Bold:
			bold = true
		case span.Italic:
			italic = true
		case span.Underline:
			underline = underline || !s.IsTransient()
		case span.RelativeSize:
			if i, ok := e.sizes.Index(s.Size); ok {
				size = i
			}
		}
	}
	e.controls.SetBold(bold)
	e.controls.SetItalic(italic)
	e.controls.SetUnderline(underline)
	e.controls.SetSizeIndex(size)
}
