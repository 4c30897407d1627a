package main

import (
	"fmt"
	"slices"
	"strings"

	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"

	"github.com/rjkroege/richedit/span"
)

// Color scheme.
const (
	colorUnderline = "#0000cc" // blue; edwood draws no underline
	colorComposing = "#f0f4ff" // very light blue background
)

// Keep each chunk well under the typical 9P msize (8192+).
const maxChunk = 4000

// run is one line of edwood's spans file.
type run struct {
	offset int
	length int
	color  string
	bg     string // empty = default
	bold   bool
	italic bool
}

func (r run) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %s", r.offset, r.length, r.color)
	if r.bg != "" {
		b.WriteString(" " + r.bg)
	}
	if r.bold {
		b.WriteString(" bold")
	}
	if r.italic {
		b.WriteString(" italic")
	}
	return b.String()
}

func (r run) sameStyle(o run) bool {
	return r.color == o.color && r.bg == o.bg && r.bold == o.bold && r.italic == o.italic
}

// styleRuns flattens spans over n runes into contiguous runs covering
// the whole text, as the spans file requires. Size spans have no
// rendering and are ignored.
func styleRuns(n int, spans []span.Span) []run {
	if n == 0 {
		return nil
	}
	cuts := []int{0, n}
	for _, s := range spans {
		for _, x := range []int{s.Start, s.End} {
			if x > 0 && x < n {
				cuts = append(cuts, x)
			}
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var runs []run
	for i := 0; i+1 < len(cuts); i++ {
		a, c := cuts[i], cuts[i+1]
		r := run{offset: a, length: c - a, color: "-"}
		for _, s := range spans {
			if s.Start > a || s.End < c {
				continue
			}
			switch {
			case s.Kind == span.Bold:
				r.bold = true
			case s.Kind == span.Italic:
				r.italic = true
			case s.IsTransient():
				r.bg = colorComposing
			case s.Kind == span.Underline:
				r.color = colorUnderline
			}
		}
		if k := len(runs) - 1; k >= 0 && runs[k].sameStyle(r) {
			runs[k].length += r.length
			continue
		}
		runs = append(runs, r)
	}
	return runs
}

// chunkRuns groups run lines into writes of at most limit bytes. Each
// chunk holds complete lines so the server can parse it as a region
// update.
func chunkRuns(runs []run, limit int) []string {
	var chunks []string
	var buf strings.Builder
	for _, r := range runs {
		line := r.String() + "\n"
		if buf.Len()+len(line) > limit && buf.Len() > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		buf.WriteString(line)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}

// writeSpans writes runs to the window's spans file.
func writeSpans(fsys *client.Fsys, id int, runs []run) error {
	fid, err := fsys.Open(fmt.Sprintf("%d/spans", id), plan9.OWRITE)
	if err != nil {
		return fmt.Errorf("open spans: %w", err)
	}
	defer fid.Close()

	for _, chunk := range chunkRuns(runs, maxChunk) {
		if _, err := fid.Write([]byte(chunk)); err != nil {
			return fmt.Errorf("write spans: %w", err)
		}
	}
	return nil
}
