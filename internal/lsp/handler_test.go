package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnosticsForWellFormedProgramIsEmpty(t *testing.T) {
	ds := diagnosticsFor("test.blc", `\x x`)
	assert.Empty(t, ds)
}

func TestDiagnosticsForUnboundVariableReportsOneDiagnostic(t *testing.T) {
	ds := diagnosticsFor("test.blc", `y`)
	assert.Len(t, ds, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, *ds[0].Severity)
}

func TestDiagnosticsForSyntaxErrorReportsOneDiagnostic(t *testing.T) {
	ds := diagnosticsFor("test.blc", `\`)
	assert.Len(t, ds, 1)
}

func TestNewHandlerStartsWithNoOpenDocuments(t *testing.T) {
	h := NewHandler()
	assert.Empty(t, h.content)
}
