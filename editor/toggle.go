package editor

import (
	"errors"
	"fmt"

	"github.com/rjkroege/richedit/span"
)

// ErrSizeIndex is returned for a size index outside the menu.
var ErrSizeIndex = errors.New("size index out of range")

// Toggle applies or removes kind over [start, end). If any span of kind
// overlaps the range, every such span is removed whole, even where it
// extends past the range. Otherwise one span covering exactly the range
// is added, carrying size when kind is RelativeSize.
//
// A reversed range is normalized and an empty one is ignored. The
// selection is set to (start, end) as given.
func (e *Editor) Toggle(kind span.Kind, start, end int, size float64) error {
	selStart, selEnd := start, end
	if start > end {
		start, end = end, start
	}
	if start == end {
		return nil
	}
	if start < 0 || end > e.model.Len() {
		return &span.InvalidRangeError{Op: "toggle", Start: start, End: end, Len: e.model.Len()}
	}

	var existing []span.Span
	for _, s := range e.model.Overlapping(start, end, kind) {
		if !s.IsTransient() {
			existing = append(existing, s)
		}
	}

	if len(existing) > 0 {
		for _, s := range existing {
			e.model.Remove(s.ID)
		}
	} else {
		sp := span.Span{Kind: kind, Start: start, End: end, Boundary: span.DefaultBoundary(kind)}
		if kind == span.RelativeSize {
			sp.Size = size
		}
		if _, err := e.model.Add(sp); err != nil {
			return err
		}
	}
	e.log.Debug("toggle", "kind", kind, "start", start, "end", end, "removed", len(existing))

	e.selStart, e.selEnd = selStart, selEnd
	return nil
}

// ToggleSelection toggles kind over the current selection. Sizes come
// from the size control.
func (e *Editor) ToggleSelection(kind span.Kind) error {
	return e.Toggle(kind, e.selStart, e.selEnd, e.sizes.Relative(e.controls.SizeIndex()))
}

// SelectSize picks entry i of the size menu and toggles that size over
// the selection, if there is one.
func (e *Editor) SelectSize(i int) error {
	if !e.sizes.Valid(i) {
		return fmt.Errorf("%w: %d of %d", ErrSizeIndex, i, e.sizes.Len())
	}
	e.controls.SetSizeIndex(i)
	return e.Toggle(span.RelativeSize, e.selStart, e.selEnd, e.sizes.Relative(i))
}
