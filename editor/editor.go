// Package editor implements the styling engine of a rich-text input:
// style toggling over a selection, span upkeep while text is typed or
// deleted, and mirroring of the spans at the cursor into toggle
// controls.
//
// An Editor is not safe for concurrent use. Hosts drive it from a single
// event loop.
package editor

import (
	"log/slog"
	"unicode/utf8"

	"github.com/rjkroege/richedit/span"
)

// Editor owns a span.Model and keeps a Controls in step with it.
type Editor struct {
	model    *span.Model
	controls Controls
	sizes    Sizes
	log      *slog.Logger

	selStart, selEnd int

	w watcher

	// quiet suppresses the next SelectionChanged, which would otherwise
	// overwrite controls set by a deletion or an empty-text reset.
	quiet bool
}

// New creates an editor over empty text.
func New(opts ...Option) *Editor {
	e := &Editor{
		model: span.NewModel(),
		sizes: DefaultSizes,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	if e.controls == nil {
		e.controls = &ControlState{Size: e.sizes.Default}
	}
	if !e.sizes.Valid(e.controls.SizeIndex()) {
		e.controls.SetSizeIndex(e.sizes.Default)
	}
	return e
}

// Model returns the underlying annotated text.
func (e *Editor) Model() *span.Model {
	return e.model
}

// Text returns the plain text.
func (e *Editor) Text() string {
	return e.model.String()
}

// Spans returns a snapshot of the spans in insertion order.
func (e *Editor) Spans() []span.Span {
	return e.model.Spans()
}

// Sizes returns the font-size menu.
func (e *Editor) Sizes() Sizes {
	return e.sizes
}

// Controls returns a snapshot of the toggle controls.
func (e *Editor) Controls() ControlState {
	return Snapshot(e.controls)
}

// Selection returns the current selection as last reported by the host
// or set by an edit. start may exceed end.
func (e *Editor) Selection() (start, end int) {
	return e.selStart, e.selEnd
}

// SetText replaces the text and drops all spans. The watcher does not
// run.
func (e *Editor) SetText(s string) error {
	if err := e.model.Reset(s, nil); err != nil {
		return err
	}
	e.w = watcher{}
	e.clampSelection()
	return nil
}

// Replace substitutes s for [start, end) the way a keystroke, paste or
// backspace would: the watcher brackets the change and the cursor ends
// after the inserted text.
func (e *Editor) Replace(start, end int, s string) error {
	if start > end || start < 0 || end > e.model.Len() {
		return &span.InvalidRangeError{Op: "replace", Start: start, End: end, Len: e.model.Len()}
	}
	n := utf8.RuneCountInString(s)
	e.BeforeChange(start, end-start, n)
	if _, err := e.model.Replace(start, end, s); err != nil {
		e.w = watcher{}
		return err
	}
	e.selStart, e.selEnd = start+n, start+n
	e.AfterChange()
	return nil
}

// SetComposingRegion marks [start, end) with a transient underline, as
// an input method does for the word being composed. Any previous region
// is cleared. An empty range only clears.
func (e *Editor) SetComposingRegion(start, end int) error {
	e.FinishComposing()
	if start > end {
		start, end = end, start
	}
	if start == end {
		return nil
	}
	_, err := e.model.Add(span.Span{
		Kind:   span.Underline,
		Start:  start,
		End:    end,
		Origin: span.TransientUnderline,
	})
	return err
}

// FinishComposing removes the transient underline.
func (e *Editor) FinishComposing() {
	e.model.RemoveFunc(span.Span.IsTransient)
}

// SaveState captures the toggles a host must restore after being
// recreated. Span data is not included.
func (e *Editor) SaveState() State {
	return State{
		Bold:      e.controls.Bold(),
		Italic:    e.controls.Italic(),
		Underline: e.controls.Underline(),
	}
}

// RestoreState sets the toggles from s.
func (e *Editor) RestoreState(s State) {
	e.controls.SetBold(s.Bold)
	e.controls.SetItalic(s.Italic)
	e.controls.SetUnderline(s.Underline)
}

func (e *Editor) clampSelection() {
	n := e.model.Len()
	e.selStart = min(max(e.selStart, 0), n)
	e.selEnd = min(max(e.selEnd, 0), n)
}

// resetControls turns every toggle off and selects the default size.
func (e *Editor) resetControls() {
	e.controls.SetBold(false)
	e.controls.SetItalic(false)
	e.controls.SetUnderline(false)
	e.controls.SetSizeIndex(e.sizes.Default)
}
