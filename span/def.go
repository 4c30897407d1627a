package span

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDefs writes spans in the span definition format, one per line:
//
//	start end kind [size] [inclusive] [transient]
func FormatDefs(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		fmt.Fprintf(&b, "%d %d %s", s.Start, s.End, s.Kind)
		if s.Kind == RelativeSize {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(s.Size, 'g', -1, 64))
		}
		if s.Boundary == ExclusiveInclusive {
			b.WriteString(" inclusive")
		}
		if s.IsTransient() {
			b.WriteString(" transient")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseDefs parses span definition lines. Blank lines are skipped.
// Spans starting past textLen are discarded, and spans running past it
// are clamped, so definitions written against a longer text still load.
func ParseDefs(data string, textLen int) ([]Span, error) {
	lines := strings.Split(data, "\n")
	spans := make([]Span, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("bad span format: need at least start end kind")
		}

		start, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("bad span start: %q", fields[0])
		}
		end, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bad span end: %q", fields[1])
		}
		if start < 0 || end < 0 {
			return nil, fmt.Errorf("negative span start or end")
		}
		if start > end {
			return nil, &InvalidRangeError{Op: "parse span", Start: start, End: end, Len: textLen}
		}

		kind, err := ParseKind(fields[2])
		if err != nil {
			return nil, err
		}
		sp := Span{Kind: kind, Start: start, End: end}

		flags := fields[3:]
		if kind == RelativeSize {
			if len(flags) == 0 {
				return nil, fmt.Errorf("bad span format: size needs a value")
			}
			sp.Size, err = strconv.ParseFloat(flags[0], 64)
			if err != nil || sp.Size <= 0 {
				return nil, fmt.Errorf("bad span size: %q", flags[0])
			}
			flags = flags[1:]
		}

		for _, flag := range flags {
			switch flag {
			case "inclusive":
				sp.Boundary = ExclusiveInclusive
			case "transient":
				if kind != Underline {
					return nil, fmt.Errorf("bad span flag: %q only applies to underline", flag)
				}
				sp.Origin = TransientUnderline
			default:
				return nil, fmt.Errorf("unknown span flag: %q", flag)
			}
		}

		if sp.Start > textLen {
			continue
		}
		sp.End = min(sp.End, textLen)
		spans = append(spans, sp)
	}
	return spans, nil
}
