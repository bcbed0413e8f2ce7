package eval

import (
	"fmt"
	"strings"

	"blc/internal/term"
)

// Norm reduces t to full normal form and renders it using the
// concrete syntax's prefix-polish notation: "." before an App's lhs
// (the function) then rhs (the argument), "\" before a Lam's variable
// then body, identifiers for variables (falling back to a synthetic
// name when a Var's Name is empty), and IO atoms by their sigil name.
// Used by the $dump IO atom and the `-dump` flag of cmd/blc.
func Norm(t *term.Node, epoch *Epoch) string {
	var b strings.Builder
	names := map[*term.Node]string{}
	writeNorm(&b, t, epoch, names)
	return b.String()
}

func writeNorm(b *strings.Builder, t *term.Node, epoch *Epoch, names map[*term.Node]string) {
	WHNF(t, epoch)
	switch t.Kind {
	case term.KApp:
		b.WriteByte('.')
		writeNorm(b, t.Lhs, epoch, names)
		writeNorm(b, t.Rhs, epoch, names)
	case term.KLam:
		b.WriteByte('\\')
		b.WriteString(varName(t.Lhs, names))
		b.WriteByte(' ')
		writeNorm(b, t.Rhs, epoch, names)
	case term.KVar:
		b.WriteString(varName(t, names))
		b.WriteByte(' ')
	case term.KIo:
		b.WriteString(t.Io.String())
		b.WriteByte(' ')
	}
}

func varName(v *term.Node, names map[*term.Node]string) string {
	if n, ok := names[v]; ok {
		return n
	}
	name := v.Name
	if name == "" {
		name = fmt.Sprintf("v%d", len(names))
	}
	names[v] = name
	return name
}
