// Package diag renders the interpreter's two fatal error kinds —
// parse errors (with a source position and a caret under the offending
// byte) and runtime errors (properties of a reduced term, with no
// fixed source position) — in a caret-and-color style.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Position mirrors the parser's notion of location without coupling
// diag to any particular parser library.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// ParseError is a fatal error discovered while turning source text
// into a term (lexing, grammar, or identifier resolution).
type ParseError struct {
	Code     string
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at %s:%d:%d", e.Code, e.Message, e.Position.Filename, e.Position.Line, e.Position.Column)
}

// RuntimeError is a fatal error raised by the IO loop while driving
// reduction. It has no source position: it is a property of the
// reduced term at the moment the loop inspected it, not of any
// particular syntax.
type RuntimeError struct {
	Code    string
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Reporter formats errors against the original source for -- caret
// style, context line, source snippet -- CLI output on stderr.
type Reporter struct {
	source string
	lines  []string
}

// NewReporter builds a reporter over the full (possibly multi-file
// concatenated) source text used to parse the program.
func NewReporter(source string) *Reporter {
	return &Reporter{source: source, lines: strings.Split(source, "\n")}
}

// FormatParse renders a parse error with a file:line:column header, the
// offending source line, and a caret under the column.
func (r *Reporter) FormatParse(err *ParseError) string {
	var b strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	b.WriteString(fmt.Sprintf("%s[%s]: %s\n", red("error"), err.Code, err.Message))
	b.WriteString(fmt.Sprintf("  %s %s:%d:%d\n", dim("-->"), err.Position.Filename, err.Position.Line, err.Position.Column))

	line := err.Position.Line
	if line >= 1 && line <= len(r.lines) {
		content := r.lines[line-1]
		b.WriteString(fmt.Sprintf("  %s %s\n", dim("│"), content))
		col := err.Position.Column
		if col < 1 {
			col = 1
		}
		caret := strings.Repeat(" ", col-1) + red("^")
		b.WriteString(fmt.Sprintf("  %s %s\n", dim("│"), caret))
	}
	return bold(b.String())
}

// FormatRuntime renders a runtime error: no source position, just the
// code and message, colored like the parse-error header.
func (r *Reporter) FormatRuntime(err *RuntimeError) string {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	return fmt.Sprintf("%s[%s]: %s\n", red("runtime error"), err.Code, err.Message)
}
