package editor

import (
	"strings"

	"github.com/rjkroege/richedit/span"
)

type phase int

const (
	phaseIdle phase = iota
	phasePreChange
)

type editOp int

const (
	opInsertion editOp = iota
	opDeletion
)

// watcher holds what BeforeChange learned about the pending edit.
type watcher struct {
	phase    phase
	op       editOp
	start    int
	inserted int // runes about to be inserted at start
}

// BeforeChange is called before replaced runes at start are replaced by
// inserted runes. For a net deletion it mirrors the doomed spans into
// the controls and drops the spans that the deletion empties.
func (e *Editor) BeforeChange(start, replaced, inserted int) {
	e.w = watcher{phase: phasePreChange, start: start, inserted: inserted}
	if inserted >= replaced {
		e.w.op = opInsertion
		e.log.Debug("before insertion", "start", start, "replaced", replaced, "inserted", inserted)
		return
	}
	e.w.op = opDeletion

	end := start + replaced
	var doomed []span.Span
	for _, s := range e.model.Overlapping(start, end) {
		if !s.IsTransient() {
			doomed = append(doomed, s)
		}
	}

	e.controls.SetBold(false)
	e.controls.SetItalic(false)
	e.controls.SetUnderline(false)
	for _, s := range doomed {
		if s.Kind == span.RelativeSize {
			if i, ok := e.sizes.Index(s.Size); ok {
				e.controls.SetSizeIndex(i)
			}
			continue
		}
		setOn(e.controls, s.Kind, true)
	}

	for _, s := range doomed {
		if _, ok := span.Adjust(s, start, end, inserted); ok {
			continue
		}
		e.model.Remove(s.ID)
		if s.Kind == span.RelativeSize {
			e.controls.SetSizeIndex(e.sizes.Default)
		} else {
			setOn(e.controls, s.Kind, false)
		}
		e.log.Debug("span emptied", "kind", s.Kind, "start", s.Start, "end", s.End)
	}
	e.log.Debug("before deletion", "start", start, "replaced", replaced, "inserted", inserted, "doomed", len(doomed))
}

// AfterChange is called once the text change announced by BeforeChange
// has been applied to the model. Typed text takes the styles whose
// controls are on; spans around it are split or merged to match.
func (e *Editor) AfterChange() {
	w := e.w
	e.w = watcher{}
	if w.phase != phasePreChange {
		e.log.Debug("after change without before change")
		return
	}

	if strings.TrimSpace(e.model.String()) == "" {
		e.model.ClearSpans()
		e.resetControls()
		e.quiet = true
		e.log.Debug("text empty, styles reset")
		return
	}

	if w.op == opDeletion {
		e.quiet = true
		return
	}

	p := w.start + w.inserted
	if w.inserted == 0 || p <= 0 || p > e.model.Len() {
		return
	}
	q := p - w.inserted

	for _, k := range []span.Kind{span.Bold, span.Italic, span.Underline} {
		e.restyle(k, isOn(e.controls, k), q, p)
	}
	e.resize(q, p)
}

// restyle makes the inserted run [q, p) carry kind exactly when on is
// set.
func (e *Editor) restyle(kind span.Kind, on bool, q, p int) {
	var over, touch []span.Span
	for _, s := range e.model.Spans() {
		if s.Kind != kind || s.IsTransient() {
			continue
		}
		switch {
		case s.Overlaps(q, p):
			over = append(over, s)
		case s.Abuts(q, p):
			touch = append(touch, s)
		}
	}

	if !on {
		for _, s := range over {
			e.clip(s, q, p)
		}
		return
	}
	if len(over) == 1 && len(touch) == 0 && span.FullyCovers(over[0], q, p) {
		return
	}
	e.merge(span.Span{Kind: kind, Boundary: span.DefaultBoundary(kind)}, q, p, append(over, touch...))
}

// resize gives the inserted run [q, p) the size selected in the
// controls. Unsized text is DefaultRelativeSize and needs no span.
func (e *Editor) resize(q, p int) {
	want := e.sizes.Relative(e.controls.SizeIndex())
	var same []span.Span
	for _, s := range e.model.Spans() {
		if s.Kind != span.RelativeSize {
			continue
		}
		switch {
		case s.Overlaps(q, p) && sameSize(s.Size, want):
			same = append(same, s)
		case s.Overlaps(q, p):
			e.clip(s, q, p)
		case s.Abuts(q, p) && sameSize(s.Size, want):
			same = append(same, s)
		}
	}

	if len(same) == 0 && sameSize(want, span.DefaultRelativeSize) {
		return
	}
	if len(same) == 1 && span.FullyCovers(same[0], q, p) {
		return
	}
	e.merge(span.Span{Kind: span.RelativeSize, Size: want, Boundary: span.DefaultBoundary(span.RelativeSize)}, q, p, same)
}

// clip removes [q, p) from s, keeping the parts before and after.
func (e *Editor) clip(s span.Span, q, p int) {
	e.model.Remove(s.ID)
	if s.Start < q {
		head := s
		head.End = q
		e.model.Add(head)
	}
	if s.End > p {
		tail := s
		tail.Start = p
		e.model.Add(tail)
	}
	e.log.Debug("span split", "kind", s.Kind, "start", s.Start, "end", s.End, "at", q, "to", p)
}

// merge replaces group with one span covering [q, p) and every member.
// The new span takes its boundary and size from the first member, or
// from tmpl when group is empty.
func (e *Editor) merge(tmpl span.Span, q, p int, group []span.Span) {
	sp := tmpl
	if len(group) > 0 {
		sp.Boundary = group[0].Boundary
		if tmpl.Kind == span.RelativeSize {
			sp.Size = group[0].Size
		}
	}
	sp.Start, sp.End = q, p
	for _, s := range group {
		sp.Start = min(sp.Start, s.Start)
		sp.End = max(sp.End, s.End)
		e.model.Remove(s.ID)
	}
	e.model.Add(sp)
	e.log.Debug("span merged", "kind", sp.Kind, "start", sp.Start, "end", sp.End, "members", len(group))
}
