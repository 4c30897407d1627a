// Richedit turns an edwood window into a rich-text editor.
//
// Usage: run "richedit" as a B2 command from the window's tag. The
// $winid environment variable (set automatically by edwood for B2
// commands) identifies the target window.
//
// Richedit mirrors every edit of the window body into a styling engine
// and writes the resulting bold and italic runs to the window's spans
// file, where edwood renders them. User underline is drawn in blue
// and the composing region with a light background. Text typed while a
// style is on takes that style.
//
// Tag commands:
//
//	Bold, Italic, Underline  toggle the style over the selection, or
//	                         for text typed next when nothing is selected
//	Size N                   select entry N of the size menu
//	Html                     write the text as HTML to the -o file or stdout
//	Spans                    print the span definitions
//
// Richedit exits when the window is closed.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"9fans.net/go/acme"
	"9fans.net/go/plan9/client"

	"github.com/rjkroege/richedit/editor"
	"github.com/rjkroege/richedit/internal/logs"
)

const version = "richedit v0.1.0"

var (
	verbose  = flag.Bool("v", false, "print version and verbose output")
	htmlFile = flag.String("html", "", "load the window from this HTML `file`")
	outFile  = flag.String("o", "", "write Html output to this `file` instead of stdout")
)

func main() {
	flag.Parse()
	if *verbose {
		fmt.Println(version)
	}
	log := logs.New(os.Stderr, "richedit", *verbose)

	id, err := getWinID()
	if err != nil {
		fatal(err)
	}

	win, err := acme.Open(id, nil)
	if err != nil {
		fatal(fmt.Errorf("open window: %w", err))
	}

	ctl := &editor.ControlState{Size: editor.DefaultSizes.Default}
	ed := editor.New(editor.WithControls(ctl), editor.WithLogger(log))

	if *htmlFile != "" {
		data, err := os.ReadFile(*htmlFile)
		if err != nil {
			fatal(err)
		}
		if err := ed.ImportHTML(string(data)); err != nil {
			fatal(fmt.Errorf("import %s: %w", *htmlFile, err))
		}
		// Written before the event file is open so the load is not
		// reported back as edits.
		if err := win.Addr(","); err != nil {
			fatal(err)
		}
		if _, err := win.Write("data", []byte(ed.Text())); err != nil {
			fatal(fmt.Errorf("write body: %w", err))
		}
	} else {
		body, err := win.ReadAll("body")
		if err != nil {
			fatal(fmt.Errorf("read body: %w", err))
		}
		if err := ed.SetText(string(body)); err != nil {
			fatal(err)
		}
	}

	// Force the event file open now (EventChan opens it lazily).
	// This sets filemenu=false in edwood. We then re-enable it
	// with "menu" so Undo/Redo/Put stay in the tag.
	win.OpenEvent()
	win.Ctl("menu")

	// 9P filesystem for spans writing (needs manual chunking
	// to stay within message size limits).
	fsys, err := client.MountService("acme")
	if err != nil {
		fatal(fmt.Errorf("mount acme: %w", err))
	}

	h := &host{win: win, fsys: fsys, id: id, ed: ed, ctl: ctl, out: *outFile, log: log}
	h.redraw()
	h.eventLoop()
}

func getWinID() (int, error) {
	s := os.Getenv("winid")
	if s == "" {
		return 0, fmt.Errorf("$winid not set")
	}
	return strconv.Atoi(s)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "richedit: %v\n", err)
	os.Exit(1)
}

func warn(err error) {
	fmt.Fprintf(os.Stderr, "richedit: %v\n", err)
}
