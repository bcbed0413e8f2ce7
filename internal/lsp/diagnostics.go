package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"blc/internal/diag"
)

// diagnosticFromParticiple converts a participle parse error into an
// LSP diagnostic. Participle errors carry a precise position but no
// token length, so the range is widened a few characters for visibility.
func diagnosticFromParticiple(err error) protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return protocol.Diagnostic{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("blc-parser"),
			Message:  err.Error(),
		}
	}

	pos := pe.Position()
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column - 1)),
			},
			End: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column + 5)),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("blc-parser"),
		Message:  pe.Message(),
	}
}

// diagnosticFromResolve converts a resolution error (unbound variable)
// into an LSP diagnostic. Resolution errors are always *diag.ParseError
// per internal/resolve's contract.
func diagnosticFromResolve(err error) protocol.Diagnostic {
	pe, ok := err.(*diag.ParseError)
	if !ok {
		return protocol.Diagnostic{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("blc-resolve"),
			Message:  err.Error(),
		}
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max0(pe.Position.Line - 1)),
				Character: uint32(max0(pe.Position.Column - 1)),
			},
			End: protocol.Position{
				Line:      uint32(max0(pe.Position.Line - 1)),
				Character: uint32(max0(pe.Position.Column + 5)),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("blc-resolve"),
		Message:  pe.Message,
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }
