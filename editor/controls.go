package editor

import "github.com/rjkroege/richedit/span"

// Controls is the host's set of style toggles. The editor reads them to
// style typed text and writes them to mirror the spans at the cursor.
type Controls interface {
	Bold() bool
	SetBold(on bool)
	Italic() bool
	SetItalic(on bool)
	Underline() bool
	SetUnderline(on bool)
	SizeIndex() int
	SetSizeIndex(i int)
}

// ControlState is an in-memory Controls, and the snapshot type returned
// by Editor.Controls.
type ControlState struct {
	BoldOn      bool
	ItalicOn    bool
	UnderlineOn bool
	Size        int // index into the editor's Sizes
}

func (c *ControlState) Bold() bool           { return c.BoldOn }
func (c *ControlState) SetBold(on bool)      { c.BoldOn = on }
func (c *ControlState) Italic() bool         { return c.ItalicOn }
func (c *ControlState) SetItalic(on bool)    { c.ItalicOn = on }
func (c *ControlState) Underline() bool      { return c.UnderlineOn }
func (c *ControlState) SetUnderline(on bool) { c.UnderlineOn = on }
func (c *ControlState) SizeIndex() int       { return c.Size }
func (c *ControlState) SetSizeIndex(i int)   { c.Size = i }

// Snapshot copies the current values of c.
func Snapshot(c Controls) ControlState {
	return ControlState{
		BoldOn:      c.Bold(),
		ItalicOn:    c.Italic(),
		UnderlineOn: c.Underline(),
		Size:        c.SizeIndex(),
	}
}

// isOn reports the toggle for an on/off kind.
func isOn(c Controls, k span.Kind) bool {
	switch k {
	case span.Bold:
		return c.Bold()
	case span.Italic:
		return c.Italic()
	case span.Underline:
		return c.Underline()
	}
	return false
}

func setOn(c Controls, k span.Kind, on bool) {
	switch k {
	case span.Bold:
		c.SetBold(on)
	case span.Italic:
		c.SetItalic(on)
	case span.Underline:
		c.SetUnderline(on)
	}
}
