package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"blc/internal/diag"
)

func TestFormatParseIncludesCodeLocationAndCaret(t *testing.T) {
	source := "\\x\nunbound"
	reporter := diag.NewReporter(source)

	err := &diag.ParseError{
		Code:    diag.ErrUnboundVariable,
		Message: `unbound variable "unbound"`,
		Position: diag.Position{
			Filename: "test.blc",
			Line:     2,
			Column:   1,
			Offset:   3,
		},
	}

	formatted := reporter.FormatParse(err)
	assert.Contains(t, formatted, diag.ErrUnboundVariable)
	assert.Contains(t, formatted, `unbound variable "unbound"`)
	assert.Contains(t, formatted, "test.blc:2:1")
	assert.Contains(t, formatted, "unbound")
	assert.Contains(t, formatted, "^")
}

func TestFormatParseOutOfRangeLineOmitsSnippet(t *testing.T) {
	reporter := diag.NewReporter("x")
	err := &diag.ParseError{
		Code:    diag.ErrExpectedTerm,
		Message: "expected a term",
		Position: diag.Position{
			Filename: "test.blc",
			Line:     99,
			Column:   1,
		},
	}
	formatted := reporter.FormatParse(err)
	assert.Contains(t, formatted, "test.blc:99:1")
	assert.False(t, strings.Contains(formatted, "│ x"))
}

func TestFormatRuntimeHasNoSourcePosition(t *testing.T) {
	reporter := diag.NewReporter("")
	err := &diag.RuntimeError{Code: diag.ErrAtTopLevel, Message: "err at top level"}
	formatted := reporter.FormatRuntime(err)
	assert.Contains(t, formatted, diag.ErrAtTopLevel)
	assert.Contains(t, formatted, "err at top level")
}

func TestParseErrorAndRuntimeErrorSatisfyError(t *testing.T) {
	var err error = &diag.ParseError{Code: diag.ErrExpectedVar, Message: "expected var", Position: diag.Position{Filename: "f", Line: 1, Column: 1}}
	assert.Contains(t, err.Error(), "expected var")

	err = &diag.RuntimeError{Code: diag.ErrWrongArity, Message: "$get expects 1 arguments"}
	assert.Contains(t, err.Error(), "$get expects 1 arguments")
}
