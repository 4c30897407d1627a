// Rtreplay replays a script of edits and style commands against the
// rich-text editor and prints what they produce.
//
// Usage: rtreplay [-dump] [-log] [script]
//
// The script is read from the named file, or stdin. Each line is one
// command; blank lines and lines starting with # are skipped. String
// arguments are Go string literals.
//
//	text S              replace all text, dropping styles
//	html S              import HTML
//	insert AT S         type S at AT
//	delete START END    delete [START, END)
//	replace START END S replace [START, END) with S
//	select START END    move the selection
//	toggle KIND         toggle bold, italic, underline or size over the
//	                    selection; flip the control when it is empty
//	size INDEX          pick a size menu entry
//	compose START END   mark the composing region
//	finish              end composing
//	export              print the HTML
//	show                print the text
//	spans               print the span definitions
//	controls            print the toggle controls
//	state               print the saved state
//
// Setting RICHEDIT_LOG has the same effect as -log.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rjkroege/richedit/editor"
	"github.com/rjkroege/richedit/internal/logs"
)

var (
	dumpFlag = flag.Bool("dump", false, "dump the final text, spans and controls")
	logFlag  = flag.Bool("log", false, "log span changes to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rtreplay [-dump] [-log] [script]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var in io.Reader = os.Stdin
	switch flag.NArg() {
	case 0:
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		in = f
	default:
		flag.Usage()
		os.Exit(2)
	}

	p := newReplayer(os.Stdout, editor.WithLogger(logs.New(os.Stderr, "rtreplay", *logFlag)))
	if err := p.run(in); err != nil {
		fatal(err)
	}
	if *dumpFlag {
		p.dump()
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "rtreplay: %v\n", err)
	os.Exit(1)
}
