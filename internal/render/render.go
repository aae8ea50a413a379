// Package render formats session output: plain lines, colorized
// emphasis, and the large figlet banner used for round results.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// Printer writes formatted session output to a single sink.
//
// Color is optional: network sessions and tests run with color disabled
// so the sink receives plain text.
type Printer struct {
	w     io.Writer
	color bool
}

// New creates a Printer over w. Enable color only for TTY sinks.
func New(w io.Writer, enableColor bool) *Printer {
	return &Printer{w: w, color: enableColor}
}

// Writer returns the underlying sink.
func (p *Printer) Writer() io.Writer { return p.w }

// Log writes one plain output line.
func (p *Printer) Log(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Logf writes one formatted output line.
func (p *Printer) Logf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Emph writes one emphasized (bold colored) line.
func (p *Printer) Emph(msg string, c *color.Color) {
	if p.color {
		c.Fprintln(p.w, msg)
		return
	}
	fmt.Fprintln(p.w, msg)
}

// Big renders msg as large figlet text.
func (p *Printer) Big(msg string, c *color.Color) {
	big := figure.NewFigure(msg, "", true).String()
	// figure appends trailing blank rows; keep output tight.
	p.Emph(strings.TrimRight(big, "\n"), c)
}

// Errorf writes a user-visible error line. Command-level errors land
// here and the session continues.
func (p *Printer) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.color {
		fmt.Fprintf(p.w, "%s: %s\n", color.New(color.FgRed, color.Bold).Sprint("Error"), msg)
		return
	}
	fmt.Fprintf(p.w, "Error: %s\n", msg)
}

// Prompt writes a prompt without a trailing newline.
func (p *Printer) Prompt(text string) {
	if p.color {
		fmt.Fprint(p.w, color.New(color.FgBlue, color.Bold).Sprint(text))
		return
	}
	fmt.Fprint(p.w, text)
}

// Shared emphasis styles.
var (
	Green   = color.New(color.FgGreen, color.Bold)
	Red     = color.New(color.FgRed, color.Bold)
	Magenta = color.New(color.FgMagenta, color.Bold)
)
