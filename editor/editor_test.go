package editor

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sanity-io/litter"

	"github.com/rjkroege/richedit/span"
)

var ignoreID = cmpopts.IgnoreFields(span.Span{}, "ID")

func newEditor(t *testing.T, text string, opts ...Option) (*Editor, *ControlState) {
	t.Helper()
	c := &ControlState{Size: DefaultSizes.Default}
	e := New(append([]Option{WithControls(c)}, opts...)...)
	if err := e.SetText(text); err != nil {
		t.Fatalf("SetText(%q): %v", text, err)
	}
	return e, c
}

// typeAt inserts s one rune at a time starting at at, reporting the
// cursor after each keystroke the way a host does.
func typeAt(t *testing.T, e *Editor, at int, s string) {
	t.Helper()
	for _, r := range s {
		if err := e.Replace(at, at, string(r)); err != nil {
			t.Fatalf("Replace(%d, %d, %q): %v", at, at, r, err)
		}
		at++
		e.SelectionChanged(at, at)
	}
}

func expectText(t *testing.T, label string, e *Editor, want string) {
	t.Helper()
	if got := e.Text(); got != want {
		t.Errorf("%s: text = %q, want %q", label, got, want)
	}
}

func expectDefs(t *testing.T, label string, e *Editor, want string) {
	t.Helper()
	if diff := cmp.Diff(want, span.FormatDefs(e.Spans())); diff != "" {
		t.Errorf("%s: spans mismatch (-want +got):\n%s\nspans: %s", label, diff, litter.Sdump(e.Spans()))
	}
}

func expectControls(t *testing.T, label string, e *Editor, want ControlState) {
	t.Helper()
	if diff := cmp.Diff(want, e.Controls()); diff != "" {
		t.Errorf("%s: controls mismatch (-want +got):\n%s", label, diff)
	}
}

func TestToggle(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")

	if err := e.Toggle(span.Bold, 0, 4, 0); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	expectDefs(t, "bold on", e, "0 4 bold inclusive\n")
	if s, end := e.Selection(); s != 0 || end != 4 {
		t.Errorf("selection = (%d, %d), want (0, 4)", s, end)
	}

	if err := e.Toggle(span.Bold, 4, 0, 0); err != nil {
		t.Fatalf("Toggle reversed: %v", err)
	}
	expectDefs(t, "bold off", e, "")
	if s, end := e.Selection(); s != 4 || end != 0 {
		t.Errorf("selection = (%d, %d), want (4, 0)", s, end)
	}

	e.Toggle(span.Underline, 0, 4, 0)
	expectDefs(t, "underline", e, "0 4 underline\n")
	e.Toggle(span.Underline, 0, 4, 0)

	e.Toggle(span.RelativeSize, 5, 7, 2)
	expectDefs(t, "size", e, "5 7 size 2 inclusive\n")
}

func TestToggleRemovesWholeSpans(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")
	e.Toggle(span.Bold, 0, 3, 0)
	e.Toggle(span.Bold, 5, 8, 0)
	e.Toggle(span.Italic, 0, 8, 0)

	e.Toggle(span.Bold, 2, 6, 0)
	expectDefs(t, "after toggle off", e, "0 8 italic inclusive\n")
}

func TestToggleNoop(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")
	if err := e.Toggle(span.Bold, 2, 2, 0); err != nil {
		t.Errorf("zero-width toggle: %v", err)
	}
	expectDefs(t, "zero width", e, "")

	err := e.Toggle(span.Bold, 0, 99, 0)
	var ire *span.InvalidRangeError
	if !errors.As(err, &ire) {
		t.Errorf("out of range toggle err = %v, want InvalidRangeError", err)
	}
	expectDefs(t, "out of range", e, "")
}

func TestToggleIgnoresTransient(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")
	e.SetComposingRegion(0, 4)
	e.Toggle(span.Underline, 0, 4, 0)
	expectDefs(t, "user underline added", e, "0 4 underline transient\n0 4 underline\n")

	e.Toggle(span.Underline, 0, 4, 0)
	expectDefs(t, "user underline removed", e, "0 4 underline transient\n")
}

func TestToggleSelection(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")
	e.SelectionChanged(5, 8)
	e.ToggleSelection(span.Italic)
	expectDefs(t, "italic", e, "5 8 italic inclusive\n")
}

func TestTypingWithControls(t *testing.T) {
	e, c := newEditor(t, "")
	c.SetBold(true)

	typeAt(t, e, 0, "ab")
	expectText(t, "bold typed", e, "ab")
	expectDefs(t, "bold typed", e, "0 2 bold inclusive\n")
	expectControls(t, "bold typed", e, ControlState{BoldOn: true, Size: 1})

	c.SetBold(false)
	typeAt(t, e, 2, "c")
	expectDefs(t, "plain after bold", e, "0 2 bold inclusive\n")
	expectControls(t, "plain after bold", e, ControlState{Size: 1})

	c.SetBold(true)
	typeAt(t, e, 3, "d")
	expectText(t, "bold again", e, "abcd")
	expectDefs(t, "bold again", e, "0 2 bold inclusive\n3 4 bold inclusive\n")

	c.SetBold(false)
	typeAt(t, e, 1, "X")
	expectText(t, "plain inside bold", e, "aXbcd")
	expectDefs(t, "plain inside bold", e, "4 5 bold inclusive\n0 1 bold inclusive\n2 3 bold inclusive\n")
}

func TestTypingMergesNeighbors(t *testing.T) {
	e, c := newEditor(t, "ab cd")
	e.Model().Add(span.Span{Kind: span.Bold, Start: 0, End: 2})
	e.Model().Add(span.Span{Kind: span.Bold, Start: 3, End: 5})
	c.SetBold(true)

	if err := e.Replace(2, 3, "X"); err != nil {
		t.Fatal(err)
	}
	expectText(t, "replaced", e, "abXcd")
	expectDefs(t, "merged", e, "0 5 bold\n")
}

func TestTypingUnderline(t *testing.T) {
	e, c := newEditor(t, "")
	c.SetUnderline(true)
	typeAt(t, e, 0, "ab")
	expectDefs(t, "underline typed", e, "0 2 underline\n")
}

func TestTypingIgnoresTransient(t *testing.T) {
	e, _ := newEditor(t, "ab")
	e.SetComposingRegion(0, 2)
	typeAt(t, e, 1, "X")
	expectDefs(t, "composing", e, "0 3 underline transient\n")
	expectControls(t, "composing", e, ControlState{Size: 1})
}

func TestDeletion(t *testing.T) {
	e, _ := newEditor(t, "Bold me!")
	e.Toggle(span.Bold, 0, 4, 0)
	e.SelectionChanged(4, 4)
	expectControls(t, "cursor after bold", e, ControlState{BoldOn: true, Size: 1})

	if err := e.Replace(3, 4, ""); err != nil {
		t.Fatal(err)
	}
	e.SelectionChanged(3, 3)
	expectText(t, "backspace", e, "Bol me!")
	expectDefs(t, "backspace", e, "0 3 bold inclusive\n")
	expectControls(t, "backspace", e, ControlState{BoldOn: true, Size: 1})

	e.Replace(0, 3, "")
	e.SelectionChanged(0, 0)
	expectText(t, "span emptied", e, " me!")
	expectDefs(t, "span emptied", e, "")
	expectControls(t, "span emptied", e, ControlState{Size: 1})
}

func TestDeletionSuppressesSelectionSync(t *testing.T) {
	e, _ := newEditor(t, "abc")
	e.Toggle(span.Italic, 0, 1, 0)
	e.Toggle(span.Bold, 1, 2, 0)

	e.Replace(1, 2, "")
	e.SelectionChanged(1, 1)
	expectDefs(t, "deleted", e, "0 1 italic inclusive\n")
	expectControls(t, "deleted", e, ControlState{Size: 1})

	e.SelectionChanged(1, 1)
	expectControls(t, "next selection", e, ControlState{ItalicOn: true, Size: 1})
}

func TestEmptyResets(t *testing.T) {
	for _, tc := range []struct {
		name string
		s    string
	}{
		{"delete all", ""},
		{"replace with blanks", "  \n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, c := newEditor(t, "ab")
			e.Toggle(span.Bold, 0, 2, 0)
			e.Toggle(span.Italic, 0, 1, 0)
			c.SetBold(true)
			c.SetUnderline(true)
			c.SetSizeIndex(5)

			if err := e.Replace(0, 2, tc.s); err != nil {
				t.Fatal(err)
			}
			expectText(t, tc.name, e, tc.s)
			expectDefs(t, tc.name, e, "")
			expectControls(t, tc.name, e, ControlState{Size: 1})
		})
	}
}

func TestSizeTyping(t *testing.T) {
	e, _ := newEditor(t, "")
	if err := e.SelectSize(4); err != nil {
		t.Fatalf("SelectSize: %v", err)
	}
	big := DefaultSizes.Relative(4)
	approx := cmpopts.EquateApprox(0, 1e-9)
	sized := func(start, end int) span.Span {
		return span.Span{Kind: span.RelativeSize, Start: start, End: end, Size: big, Boundary: span.ExclusiveInclusive}
	}

	typeAt(t, e, 0, "ab")
	if diff := cmp.Diff([]span.Span{sized(0, 2)}, e.Spans(), ignoreID, approx); diff != "" {
		t.Errorf("big typed (-want +got):\n%s", diff)
	}
	expectControls(t, "big typed", e, ControlState{Size: 4})

	e.SelectSize(1)
	typeAt(t, e, 2, "c")
	if diff := cmp.Diff([]span.Span{sized(0, 2)}, e.Spans(), ignoreID, approx); diff != "" {
		t.Errorf("default typed (-want +got):\n%s", diff)
	}
	expectControls(t, "default typed", e, ControlState{Size: 1})

	typeAt(t, e, 1, "X")
	expectText(t, "split", e, "aXbc")
	if diff := cmp.Diff([]span.Span{sized(0, 1), sized(2, 3)}, e.Spans(), ignoreID, approx); diff != "" {
		t.Errorf("split (-want +got):\n%s", diff)
	}
}

func TestSelectSize(t *testing.T) {
	e, _ := newEditor(t, "abc")
	for _, i := range []int{-1, 7, 99} {
		if err := e.SelectSize(i); !errors.Is(err, ErrSizeIndex) {
			t.Errorf("SelectSize(%d) = %v, want ErrSizeIndex", i, err)
		}
	}

	e.SelectionChanged(0, 3)
	if err := e.SelectSize(6); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]span.Span{{
		Kind: span.RelativeSize, Start: 0, End: 3, Size: 48.0 / 14, Boundary: span.ExclusiveInclusive,
	}}, e.Spans(), ignoreID, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("sized selection (-want +got):\n%s", diff)
	}
	expectControls(t, "sized selection", e, ControlState{Size: 6})

	e.SelectSize(6)
	expectDefs(t, "size toggled off", e, "")
}

func TestReplaceErrors(t *testing.T) {
	e, _ := newEditor(t, "abc")
	for _, r := range [][2]int{{2, 1}, {-1, 1}, {0, 4}} {
		err := e.Replace(r[0], r[1], "x")
		var ire *span.InvalidRangeError
		if !errors.As(err, &ire) {
			t.Errorf("Replace(%d, %d) err = %v, want InvalidRangeError", r[0], r[1], err)
		}
	}
	expectText(t, "after errors", e, "abc")

	// Unbracketed AfterChange does nothing.
	e.AfterChange()
	expectDefs(t, "stray AfterChange", e, "")
}

func TestComposingRegion(t *testing.T) {
	e, _ := newEditor(t, "abcd")
	e.SetComposingRegion(0, 2)
	e.SetComposingRegion(3, 1)
	expectDefs(t, "moved", e, "1 3 underline transient\n")

	e.SetComposingRegion(2, 2)
	expectDefs(t, "cleared", e, "")
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e, _ := newEditor(t, "Bold me!", WithLogger(l))
	e.Toggle(span.Bold, 0, 4, 0)
	if got := buf.String(); !strings.Contains(got, "msg=toggle") || !strings.Contains(got, "kind=bold") {
		t.Errorf("log output %q lacks toggle record", got)
	}
}
