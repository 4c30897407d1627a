package htmlcodec

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/rjkroege/richedit/span"
)

// style is what an inline tag contributes.
type style struct {
	key  string // tags sharing a key share one span
	kind span.Kind
	size float64
}

var inline = map[atom.Atom]style{
	atom.B:      {"b", span.Bold, 0},
	atom.Strong: {"b", span.Bold, 0},
	atom.I:      {"i", span.Italic, 0},
	atom.Em:     {"i", span.Italic, 0},
	atom.Cite:   {"i", span.Italic, 0},
	atom.Dfn:    {"i", span.Italic, 0},
	atom.U:      {"u", span.Underline, 0},
	atom.Ins:    {"u", span.Underline, 0},
	atom.Big:    {"big", span.RelativeSize, 1.25},
	atom.Small:  {"small", span.RelativeSize, 0.8},
}

// Content of these elements is not text.
var skipped = map[atom.Atom]bool{
	atom.Head:   true,
	atom.Script: true,
	atom.Style:  true,
	atom.Title:  true,
}

type opening struct {
	style
	start int
	depth int
}

type decoder struct {
	buf   []rune
	open  []*opening
	spans []span.Span
	skip  int
}

// Decode parses s into plain text and spans. Parsing is best-effort:
// unknown tags are ignored and tags left open are closed at the end.
// Spans are listed in the order their tags close. Whitespace is
// collapsed as a browser would, the text is NFC-normalized and trailing
// whitespace is trimmed.
func Decode(s string) (string, []span.Span) {
	var d decoder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; keep what was recovered.
			return d.finish()
		case html.TextToken:
			if d.skip == 0 {
				d.text(string(z.Text()))
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			d.startTag(atom.Lookup(name))
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Br {
				d.buf = append(d.buf, '\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			d.endTag(atom.Lookup(name))
		}
	}
}

func (d *decoder) startTag(a atom.Atom) {
	switch {
	case skipped[a]:
		d.skip++
	case a == atom.Br:
		d.buf = append(d.buf, '\n')
	case a == atom.P || a == atom.Div:
		if n := len(d.buf); n > 0 && d.buf[n-1] != '\n' {
			d.buf = append(d.buf, '\n')
		}
	default:
		st, ok := inline[a]
		if !ok {
			return
		}
		if o := d.find(st.key); o != nil {
			o.depth++
			return
		}
		d.open = append(d.open, &opening{style: st, start: len(d.buf), depth: 1})
	}
}

func (d *decoder) endTag(a atom.Atom) {
	switch {
	case skipped[a]:
		if d.skip > 0 {
			d.skip--
		}
	case a == atom.P || a == atom.Div:
		d.buf = append(d.buf, '\n')
	default:
		st, ok := inline[a]
		if !ok {
			return
		}
		o := d.find(st.key)
		if o == nil {
			return
		}
		if o.depth--; o.depth == 0 {
			d.close(o)
		}
	}
}

func (d *decoder) find(key string) *opening {
	for _, o := range d.open {
		if o.key == key {
			return o
		}
	}
	return nil
}

func (d *decoder) close(o *opening) {
	for i, x := range d.open {
		if x == o {
			d.open = append(d.open[:i], d.open[i+1:]...)
			break
		}
	}
	if len(d.buf) > o.start {
		d.spans = append(d.spans, span.Span{
			Kind:  o.kind,
			Start: o.start,
			End:   len(d.buf),
			Size:  o.size,
		})
	}
}

func (d *decoder) text(s string) {
	for _, r := range norm.NFC.String(s) {
		switch {
		case r == '\u00a0':
			d.buf = append(d.buf, ' ')
		case unicode.IsSpace(r):
			n := len(d.buf)
			if n == 0 || d.buf[n-1] == '\n' || d.buf[n-1] == ' ' {
				continue
			}
			d.buf = append(d.buf, ' ')
		default:
			d.buf = append(d.buf, r)
		}
	}
}

func (d *decoder) finish() (string, []span.Span) {
	for len(d.open) > 0 {
		d.close(d.open[len(d.open)-1])
	}

	text := strings.TrimRightFunc(string(d.buf), unicode.IsSpace)
	n := utf8.RuneCountInString(text)
	spans := d.spans[:0]
	for _, s := range d.spans {
		s.End = min(s.End, n)
		if s.Start < s.End {
			spans = append(spans, s)
		}
	}
	if len(spans) == 0 {
		spans = nil
	}
	return text, spans
}
