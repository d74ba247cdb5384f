// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package report formats Kernel errors for a terminal: a "level:
// message" header with color.New(...).SprintFunc() coloring, minus any
// source-span rendering built from a parsed AST's line/column — a
// Kernel ErrorObject carries only a destination continuation, a
// message, and an irritants list, never a byte offset into the source
// it came from.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"code.hybscloud.com/kernel"
)

// Reporter writes colored Kernel error diagnostics to an output stream.
// NoColor mirrors the CLI's --no-color flag (see cmd/kernel): it forces
// fatih/color's SprintFunc output back to plain text without touching
// the package-global color.NoColor switch, so concurrent interpreters
// in the same process don't fight over it.
type Reporter struct {
	Out     io.Writer
	NoColor bool
}

// New builds a Reporter writing to out.
func New(out io.Writer, noColor bool) *Reporter {
	return &Reporter{Out: out, NoColor: noColor}
}

// destName returns the standard continuation name an error targets
// (e.g. "type-error-continuation"), or "error-continuation" if Dest
// isn't one of the named frames (the error was raised directly against
// a captured first-class continuation).
func destName(dest kernel.Cont) string {
	if nc, ok := dest.(*kernel.NamedCont); ok {
		return nc.Name
	}
	return "error-continuation"
}

// FormatError renders one ErrorObject as a single diagnostic: a colored
// "error[dest]: message" header followed by one indented line per
// irritant, each printed with Kernel's external representation.
func (r *Reporter) FormatError(err *kernel.ErrorObject) string {
	var b strings.Builder

	label := "error"
	if !r.NoColor {
		label = color.New(color.FgRed, color.Bold).Sprint("error")
	}
	code := destName(err.Dest)
	if !r.NoColor {
		code = color.New(color.Bold).Sprint(code)
	}
	fmt.Fprintf(&b, "%s[%s]: %s\n", label, code, err.Message)

	dim := func(s string) string { return s }
	if !r.NoColor {
		dim = color.New(color.Faint).SprintFunc()
	}
	irritants := err.Irritants
	for irritants != kernel.Null {
		p, ok := irritants.(*kernel.Pair)
		if !ok {
			break
		}
		fmt.Fprintf(&b, "  %s %s\n", dim("-->"), kernel.String(p.Car))
		irritants = p.Cdr
	}
	return b.String()
}

// Report writes the formatted error to Out.
func (r *Reporter) Report(err *kernel.ErrorObject) {
	fmt.Fprint(r.Out, r.FormatError(err))
}
