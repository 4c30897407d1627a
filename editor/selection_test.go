package editor

import (
	"testing"

	"github.com/rjkroege/richedit/span"
)

func TestSelectionChanged(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")
	e.Toggle(span.Bold, 0, 4, 0)
	e.Toggle(span.Italic, 2, 6, 0)
	e.Toggle(span.RelativeSize, 6, 8, DefaultSizes.Relative(5))
	e.SetComposingRegion(0, 8)

	tests := []struct {
		name       string
		start, end int
		want       ControlState
	}{
		{"cursor at start", 0, 0, ControlState{Size: 1}},
		{"cursor in bold", 2, 2, ControlState{BoldOn: true, Size: 1}},
		{"cursor in bold italic", 3, 3, ControlState{BoldOn: true, ItalicOn: true, Size: 1}},
		{"cursor after bold", 5, 5, ControlState{ItalicOn: true, Size: 1}},
		{"cursor in size", 8, 8, ControlState{Size: 5}},
		{"range in bold only", 1, 3, ControlState{BoldOn: true, Size: 1}},
		{"range in both", 2, 4, ControlState{BoldOn: true, ItalicOn: true, Size: 1}},
		{"reversed range covered by nothing", 7, 3, ControlState{Size: 1}},
		{"range in size", 6, 8, ControlState{Size: 5}},
		{"past end", 20, 20, ControlState{Size: 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e.SelectionChanged(tc.start, tc.end)
			expectControls(t, tc.name, e, tc.want)
			if s, end := e.Selection(); s != tc.start || end != tc.end {
				t.Errorf("selection = (%d, %d), want (%d, %d)", s, end, tc.start, tc.end)
			}
		})
	}
}

func TestSelectionChangedUserUnderline(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")
	e.Toggle(span.Underline, 0, 4, 0)
	e.SelectionChanged(2, 2)
	expectControls(t, "underlined", e, ControlState{UnderlineOn: true, Size: 1})
}
