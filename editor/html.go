package editor

import (
	"strings"

	"github.com/rjkroege/richedit/htmlcodec"
	"github.com/rjkroege/richedit/span"
)

// ExportHTML returns the text as HTML. Transient underline is removed
// from the model first so only user styling is saved. Size spans are not
// represented.
func (e *Editor) ExportHTML() string {
	if n := e.model.RemoveFunc(span.Span.IsTransient); n > 0 {
		e.log.Debug("sanitized transient underline", "count", n)
	}
	return htmlcodec.Encode(e.model.String(), e.model.Spans())
}

// ImportHTML replaces the text and spans with those decoded from s. The
// watcher does not run and the controls are left alone. Blank input is
// ignored.
func (e *Editor) ImportHTML(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	text, spans := htmlcodec.Decode(s)
	if err := e.model.Reset(text, spans); err != nil {
		return err
	}
	e.w = watcher{}
	e.clampSelection()
	e.log.Debug("imported html", "runes", e.model.Len(), "spans", len(spans))
	return nil
}
