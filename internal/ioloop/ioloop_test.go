package ioloop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"blc/internal/resolve"
	"blc/internal/syntax"
	"blc/internal/term"
)

func build(t *testing.T, src string) *term.Node {
	t.Helper()
	prog, err := syntax.ParseSource("test", src)
	assert.NoError(t, err)
	root, err := resolve.Resolve("test", prog)
	assert.NoError(t, err)
	return root
}

func TestRunImmediateExit(t *testing.T) {
	root := build(t, `$exit`)
	var out, errb bytes.Buffer
	err := Run(root, strings.NewReader(""), &out, &errb)
	assert.NoError(t, err)
	assert.Empty(t, out.Bytes())
}

func TestRunErrAtTopLevelIsFatal(t *testing.T) {
	root := build(t, `$err`)
	var out, errb bytes.Buffer
	err := Run(root, strings.NewReader(""), &out, &errb)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "err at top level")
}

func TestRunIrreducibleValueIsFatal(t *testing.T) {
	root := build(t, `\x x`)
	var out, errb bytes.Buffer
	err := Run(root, strings.NewReader(""), &out, &errb)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "top level is irreducible")
}

func TestRunCopiesOneBitDiscardingPartialByte(t *testing.T) {
	root := build(t, `.$get \b ..$put b $exit`)
	in := bytes.NewReader([]byte{0x80})
	var out, errb bytes.Buffer
	err := Run(root, in, &out, &errb)
	assert.NoError(t, err)
	assert.Empty(t, out.Bytes())
}

func TestRunMalformedPutArgumentIsFatal(t *testing.T) {
	root := build(t, `..$put \a \b .a a $exit`)
	var out, errb bytes.Buffer
	err := Run(root, strings.NewReader(""), &out, &errb)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "put argument is malformed")
}

func TestRunEOFOnGetCoincidesWithFalseWhenForcedAsABit(t *testing.T) {
	// .$get \b ..$put b $exit on an empty stream: b is bound to the
	// Scott `none` term λs.λn.n, which happens to have the exact
	// shape of Church `false` λt.λf.f. Forcing it through put's
	// TRUE/FALSE sentinels therefore yields a clean false bit and a
	// normal exit rather than a malformed-argument error.
	root := build(t, `.$get \b ..$put b $exit`)
	var out, errb bytes.Buffer
	err := Run(root, strings.NewReader(""), &out, &errb)
	assert.NoError(t, err)
	assert.Empty(t, out.Bytes())
}
