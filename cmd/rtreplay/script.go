package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sanity-io/litter"

	"github.com/rjkroege/richedit/editor"
	"github.com/rjkroege/richedit/span"
)

// replayer drives an editor the way a host would.
type replayer struct {
	ed  *editor.Editor
	ctl *editor.ControlState
	out io.Writer
}

func newReplayer(out io.Writer, opts ...editor.Option) *replayer {
	ctl := &editor.ControlState{Size: editor.DefaultSizes.Default}
	opts = append([]editor.Option{editor.WithControls(ctl)}, opts...)
	return &replayer{ed: editor.New(opts...), ctl: ctl, out: out}
}

// run executes the script in r, stopping at the first failing command.
func (p *replayer) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := splitArgs(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if err := p.exec(args); err != nil {
			return fmt.Errorf("line %d: %s: %w", n, args[0], err)
		}
	}
	return sc.Err()
}

// splitArgs splits a line on blanks. Arguments starting with a quote
// are Go string literals.
func splitArgs(line string) ([]string, error) {
	var args []string
	for {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			return args, nil
		}
		if line[0] == '"' || line[0] == '`' {
			q, err := strconv.QuotedPrefix(line)
			if err != nil {
				return nil, fmt.Errorf("bad quoted string: %s", line)
			}
			s, err := strconv.Unquote(q)
			if err != nil {
				return nil, err
			}
			args = append(args, s)
			line = line[len(q):]
			continue
		}
		i := strings.IndexAny(line, " \t")
		if i < 0 {
			i = len(line)
		}
		args = append(args, line[:i])
		line = line[i:]
	}
}

func want(args []string, n int, usage string) error {
	if len(args) != n+1 {
		return fmt.Errorf("usage: %s %s", args[0], usage)
	}
	return nil
}

func offsets(args ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad offset %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func (p *replayer) exec(args []string) error {
	ed := p.ed
	switch args[0] {
	case "text":
		if err := want(args, 1, "S"); err != nil {
			return err
		}
		return ed.SetText(args[1])

	case "html":
		if err := want(args, 1, "S"); err != nil {
			return err
		}
		return ed.ImportHTML(args[1])

	case "insert":
		if err := want(args, 2, "AT S"); err != nil {
			return err
		}
		at, err := offsets(args[1])
		if err != nil {
			return err
		}
		return p.replace(at[0], at[0], args[2])

	case "delete":
		if err := want(args, 2, "START END"); err != nil {
			return err
		}
		r, err := offsets(args[1:]...)
		if err != nil {
			return err
		}
		return p.replace(r[0], r[1], "")

	case "replace":
		if err := want(args, 3, "START END S"); err != nil {
			return err
		}
		r, err := offsets(args[1:3]...)
		if err != nil {
			return err
		}
		return p.replace(r[0], r[1], args[3])

	case "select":
		if err := want(args, 2, "START END"); err != nil {
			return err
		}
		r, err := offsets(args[1:]...)
		if err != nil {
			return err
		}
		ed.SelectionChanged(r[0], r[1])

	case "toggle":
		if err := want(args, 1, "KIND"); err != nil {
			return err
		}
		k, err := span.ParseKind(args[1])
		if err != nil {
			return err
		}
		return p.toggle(k)

	case "size":
		if err := want(args, 1, "INDEX"); err != nil {
			return err
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad size index %q", args[1])
		}
		return ed.SelectSize(i)

	case "compose":
		if err := want(args, 2, "START END"); err != nil {
			return err
		}
		r, err := offsets(args[1:]...)
		if err != nil {
			return err
		}
		return ed.SetComposingRegion(r[0], r[1])

	case "finish":
		ed.FinishComposing()

	case "export":
		io.WriteString(p.out, ed.ExportHTML())

	case "show":
		fmt.Fprintf(p.out, "%q\n", ed.Text())

	case "spans":
		io.WriteString(p.out, span.FormatDefs(ed.Spans()))

	case "controls":
		c := ed.Controls()
		fmt.Fprintf(p.out, "bold=%t italic=%t underline=%t size=%d\n", c.BoldOn, c.ItalicOn, c.UnderlineOn, c.Size)

	case "state":
		b, err := json.Marshal(ed.SaveState())
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "%s\n", b)

	default:
		return fmt.Errorf("unknown command")
	}
	return nil
}

// replace edits like a keyboard: the cursor lands after the new text.
func (p *replayer) replace(start, end int, s string) error {
	if err := p.ed.Replace(start, end, s); err != nil {
		return err
	}
	at := start + utf8.RuneCountInString(s)
	p.ed.SelectionChanged(at, at)
	return nil
}

// toggle applies kind to the selection, or flips its control when the
// selection is empty.
func (p *replayer) toggle(k span.Kind) error {
	start, end := p.ed.Selection()
	if start != end {
		return p.ed.ToggleSelection(k)
	}
	switch k {
	case span.Bold:
		p.ctl.SetBold(!p.ctl.Bold())
	case span.Italic:
		p.ctl.SetItalic(!p.ctl.Italic())
	case span.Underline:
		p.ctl.SetUnderline(!p.ctl.Underline())
	}
	return nil
}

// snapshot is what -dump prints.
type snapshot struct {
	Text     string
	Spans    []span.Span
	Controls editor.ControlState
}

func (p *replayer) dump() {
	io.WriteString(p.out, litter.Sdump(snapshot{
		Text:     p.ed.Text(),
		Spans:    p.ed.Spans(),
		Controls: p.ed.Controls(),
	}))
	io.WriteString(p.out, "\n")
}
