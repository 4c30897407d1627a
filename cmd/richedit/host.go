package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"9fans.net/go/acme"
	"9fans.net/go/plan9/client"

	"github.com/rjkroege/richedit/editor"
	"github.com/rjkroege/richedit/span"
)

// host connects one edwood window to an editor.
type host struct {
	win  *acme.Win
	fsys *client.Fsys
	id   int
	ed   *editor.Editor
	ctl  *editor.ControlState
	out  string
	log  *slog.Logger
}

// eventLoop applies body edits and tag commands, redrawing the spans
// with debouncing. It exits when the window is closed (event channel
// closed).
func (h *host) eventLoop() {
	events := h.win.EventChan()
	var editTimer <-chan time.Time

	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			switch e.C2 {
			case 'I', 'D':
				if err := h.edit(e); err != nil {
					warn(err)
					h.resync()
				}
				editTimer = time.After(300 * time.Millisecond)
			case 'S':
				// Body selection changed.
				h.ed.SelectionChanged(e.Q0, e.Q1)
			case 'x', 'X':
				if !h.execute(e) {
					h.win.WriteEvent(e)
				}
			case 'l', 'L':
				h.win.WriteEvent(e)
			}
		case <-editTimer:
			editTimer = nil
			h.redraw()
		}
	}
}

// edit mirrors a body insert or delete into the editor.
func (h *host) edit(e *acme.Event) error {
	if e.C2 == 'D' {
		if err := h.ed.Replace(e.Q0, e.Q1, ""); err != nil {
			return err
		}
		h.ed.SelectionChanged(e.Q0, e.Q0)
		return nil
	}

	text := string(e.Text)
	if utf8.RuneCountInString(text) != e.Q1-e.Q0 {
		// Long insertions arrive without their text.
		body, err := h.win.ReadAll("body")
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		runes := []rune(string(body))
		if e.Q1 > len(runes) {
			return fmt.Errorf("insert #%d,#%d past end of body", e.Q0, e.Q1)
		}
		text = string(runes[e.Q0:e.Q1])
	}
	if err := h.ed.Replace(e.Q0, e.Q0, text); err != nil {
		return err
	}
	h.ed.SelectionChanged(e.Q1, e.Q1)
	return nil
}

// resync reloads the body after the editor and window disagree. Styling
// is lost.
func (h *host) resync() {
	body, err := h.win.ReadAll("body")
	if err != nil {
		warn(fmt.Errorf("read body: %w", err))
		return
	}
	h.ed.SetText(string(body))
	h.log.Debug("resynced body", "runes", utf8.RuneCount(body))
}

// command splits an executed tag command and its chorded argument.
func command(text, arg []byte) []string {
	return append(strings.Fields(string(text)), strings.Fields(string(arg))...)
}

// execute runs a richedit tag command. It returns false for commands
// that belong to edwood.
func (h *host) execute(e *acme.Event) bool {
	args := command(e.Text, e.Arg)
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "Bold":
		h.toggle(span.Bold)
	case "Italic":
		h.toggle(span.Italic)
	case "Underline":
		h.toggle(span.Underline)
	case "Size":
		if len(args) != 2 {
			warn(fmt.Errorf("usage: Size N"))
			break
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			warn(fmt.Errorf("bad size %q", args[1]))
			break
		}
		h.size(i)
	case "Html":
		h.export()
	case "Spans":
		fmt.Print(span.FormatDefs(h.ed.Spans()))
	default:
		return false
	}
	return true
}

// dot returns the window selection.
func (h *host) dot() (int, int, error) {
	// The first open of the addr file resets it, so open it before
	// setting it to dot.
	if _, _, err := h.win.ReadAddr(); err != nil {
		return 0, 0, fmt.Errorf("read addr: %w", err)
	}
	if err := h.win.Ctl("addr=dot"); err != nil {
		return 0, 0, fmt.Errorf("set addr: %w", err)
	}
	return h.win.ReadAddr()
}

// toggle applies kind to the selection, or flips its control for the
// text typed next when nothing is selected.
func (h *host) toggle(kind span.Kind) {
	q0, q1, err := h.dot()
	if err != nil {
		warn(err)
		return
	}
	if q0 == q1 {
		switch kind {
		case span.Bold:
			h.ctl.SetBold(!h.ctl.Bold())
		case span.Italic:
			h.ctl.SetItalic(!h.ctl.Italic())
		case span.Underline:
			h.ctl.SetUnderline(!h.ctl.Underline())
		}
		return
	}
	h.ed.SelectionChanged(q0, q1)
	if err := h.ed.ToggleSelection(kind); err != nil {
		warn(err)
		return
	}
	h.redraw()
}

func (h *host) size(i int) {
	q0, q1, err := h.dot()
	if err != nil {
		warn(err)
		return
	}
	h.ed.SelectionChanged(q0, q1)
	if err := h.ed.SelectSize(i); err != nil {
		warn(err)
	}
}

func (h *host) export() {
	html := h.ed.ExportHTML()
	// Export drops the composing region.
	h.redraw()
	if h.out == "" {
		os.Stdout.WriteString(html)
		return
	}
	if err := os.WriteFile(h.out, []byte(html), 0644); err != nil {
		warn(err)
	}
}

// redraw writes the current styling to the spans file.
func (h *host) redraw() {
	runs := styleRuns(h.ed.Model().Len(), h.ed.Spans())
	if len(runs) == 0 {
		return
	}
	if err := writeSpans(h.fsys, h.id, runs); err != nil {
		warn(err)
	}
}
