package cmd

import (
	"fmt"
	"go/token"
	"io"

	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/infer"
	"github.com/mattn/go-isatty"
)

const (
	colourRed   = "\x1b[31m"
	colourBold  = "\x1b[1m"
	colourReset = "\x1b[0m"
)

type printer struct {
	out    io.Writer
	fset   *token.FileSet
	colour bool
}

func newPrinter(out io.Writer, fset *token.FileSet) *printer {
	return &printer{out: out, fset: fset, colour: isTerminal(out)}
}

// isTerminal is false for anything but a terminal file, so that
// output piped elsewhere or written to a buffer is never coloured
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) paint(colour, s string) string {
	if !p.colour {
		return s
	}
	return colour + s + colourReset
}

func (p *printer) errors(errs *ilerr.Errors) {
	for _, err := range errs.Errors() {
		_, _ = fmt.Fprintln(p.out, p.paint(colourRed, ilerr.FormatWithPosition(err, p.fset)))
	}
}

// unit prints the type of a checked unit, or its diagnostics
func (p *printer) unit(result infer.UnitResult) {
	if !result.OK() {
		p.errors(result.Errors)
		return
	}
	_, _ = fmt.Fprintf(p.out, "%s: %s\n", result.Unit.Name, p.paint(colourBold, result.Type.String()))
}
