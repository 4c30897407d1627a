// Package htmlcodec converts annotated text to and from the small HTML
// dialect understood by platform rich-text widgets: paragraphs with
// <b>, <i> and <u> runs.
package htmlcodec

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/rjkroege/richedit/span"
)

var tags = map[span.Kind]string{
	span.Bold:      "b",
	span.Italic:    "i",
	span.Underline: "u",
}

// Encode writes text as one <p> per line, with tags for the bold, italic
// and user underline spans. Where spans overlap, tags open in span
// insertion order. Size spans and transient underline are not written.
func Encode(text string, spans []span.Span) string {
	if text == "" {
		return ""
	}
	var styled []span.Span
	for _, s := range spans {
		if _, ok := tags[s.Kind]; ok && !s.IsTransient() && s.Start < s.End {
			styled = append(styled, s)
		}
	}
	slices.SortStableFunc(styled, func(a, b span.Span) int {
		return cmp.Compare(a.ID, b.ID)
	})

	runes := []rune(text)
	var b strings.Builder
	lineStart := 0
	for i := 0; i <= len(runes); i++ {
		if i == len(runes) || runes[i] == '\n' {
			writeLine(&b, runes, lineStart, i, styled)
			lineStart = i + 1
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, runes []rune, start, end int, spans []span.Span) {
	if start == end {
		b.WriteString("<br>\n")
		return
	}

	cuts := []int{start, end}
	for _, s := range spans {
		if s.Start > start && s.Start < end {
			cuts = append(cuts, s.Start)
		}
		if s.End > start && s.End < end {
			cuts = append(cuts, s.End)
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	b.WriteString(`<p dir="ltr">`)
	for i := 0; i+1 < len(cuts); i++ {
		a, c := cuts[i], cuts[i+1]
		var open []string
		for _, s := range spans {
			if s.Start <= a && s.End >= c {
				open = append(open, tags[s.Kind])
			}
		}
		for _, t := range open {
			b.WriteString("<" + t + ">")
		}
		writeEscaped(b, runes, a, c, start, end)
		for j := len(open) - 1; j >= 0; j-- {
			b.WriteString("</" + open[j] + ">")
		}
	}
	b.WriteString("</p>\n")
}

// writeEscaped writes runes[a:c] escaped for HTML. Spaces that a reader
// would collapse or strip become &nbsp;: those at either end of the line
// and those following another space.
func writeEscaped(b *strings.Builder, runes []rune, a, c, lineStart, lineEnd int) {
	var run strings.Builder
	flush := func() {
		b.WriteString(html.EscapeString(run.String()))
		run.Reset()
	}
	for i := a; i < c; i++ {
		r := runes[i]
		if r == ' ' && (i == lineStart || i == lineEnd-1 || runes[i-1] == ' ') {
			flush()
			b.WriteString("&nbsp;")
			continue
		}
		run.WriteRune(r)
	}
	flush()
}
