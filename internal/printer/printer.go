// Package printer writes coloured CLI feedback. Colour follows the terminal
// and is turned off by NO_COLOR.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
)

// Printer writes feedback to an output and an error stream.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a Printer writing normal output to out and errors to errw.
func New(out, errw io.Writer) *Printer {
	return &Printer{out: out, err: errw}
}

// Success prints a message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprintln(p.out, msg)
}

// Info prints a message in the default colour.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Heading prints a section title.
func (p *Printer) Heading(format string, a ...any) {
	cyan.Fprintln(p.out, fmt.Sprintf(format, a...))
}

// Warning prints a message in yellow to the error stream.
func (p *Printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠") {
		msg = "⚠ " + msg
	}
	yellow.Fprintln(p.err, msg)
}

// Error prints title in red to the error stream followed by the
// explanation and any suggestions.
func (p *Printer) Error(title, explanation string, suggestions ...string) {
	red.Fprintln(p.err, title)
	if explanation != "" {
		fmt.Fprintln(p.err, explanation)
	}
	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(p.err, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(p.err, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(p.err, "  %d. %s\n", i+1, s)
		}
	}
}
