package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blc/internal/syntax"
	"blc/internal/term"
)

func parse(t *testing.T, src string) *syntax.Program {
	t.Helper()
	prog, err := syntax.ParseSource("test", src)
	assert.NoError(t, err)
	return prog
}

func TestResolveSharesOneVarNodeAcrossAllOccurrences(t *testing.T) {
	prog := parse(t, `\x .x x`)
	root, err := Resolve("test", prog)
	assert.NoError(t, err)
	assert.Equal(t, term.KLam, root.Kind)

	body := root.Rhs
	assert.Equal(t, term.KApp, body.Kind)
	assert.Same(t, root.Lhs, body.Lhs)
	assert.Same(t, root.Lhs, body.Rhs)
}

func TestResolveInnerBinderShadowsOuter(t *testing.T) {
	prog := parse(t, `\x \x x`)
	root, err := Resolve("test", prog)
	assert.NoError(t, err)

	outerV := root.Lhs
	inner := root.Rhs
	assert.Equal(t, term.KLam, inner.Kind)
	innerV := inner.Lhs
	assert.NotSame(t, outerV, innerV)
	assert.Same(t, innerV, inner.Rhs)
}

func TestResolveMapsKnownIoAtoms(t *testing.T) {
	prog := parse(t, `$put`)
	root, err := Resolve("test", prog)
	assert.NoError(t, err)
	assert.Equal(t, term.KIo, root.Kind)
	assert.Equal(t, term.IoPut, root.Io)
}

func TestResolveUnboundVariableIsAnError(t *testing.T) {
	prog := parse(t, `y`)
	_, err := Resolve("test", prog)
	assert.Error(t, err)
}

func TestResolveFreeVariableInOuterScopeIsVisibleInNestedLambda(t *testing.T) {
	prog := parse(t, `\x \y x`)
	root, err := Resolve("test", prog)
	assert.NoError(t, err)
	outerV := root.Lhs
	inner := root.Rhs
	assert.Same(t, outerV, inner.Rhs)
}
