package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocRefcounts(t *testing.T) {
	v := NewVar("x")
	assert.Equal(t, 1, v.Refcount())
	assert.Equal(t, 0, v.Bindcount())

	lam := NewLam(v, v) // \x x: v's original reference becomes the body edge, plus a new binder edge
	assert.Equal(t, 2, v.Refcount())
	assert.Equal(t, 1, v.Bindcount())
	assert.Equal(t, 1, lam.Refcount())

	Decref(lam)
	assert.Equal(t, 0, v.Refcount())
	assert.Equal(t, 0, v.Bindcount())
}

func TestDecrefFreesChildrenRecursively(t *testing.T) {
	a := NewIo(IoExit)
	b := NewIo(IoErr)
	app := NewApp(a, b)
	assert.Equal(t, 1, a.Refcount())
	assert.Equal(t, 1, b.Refcount())

	Decref(app)
	assert.Equal(t, 0, a.Refcount())
	assert.Equal(t, 0, b.Refcount())
}

func TestIncrefSharesOwnership(t *testing.T) {
	v := NewVar("y")
	shared := Incref(v)
	assert.Same(t, v, shared)
	assert.Equal(t, 2, v.Refcount())
	Decref(shared)
	Decref(v)
	assert.Equal(t, 0, v.Refcount())
}

func TestCacheOnlyValidForLiveEpoch(t *testing.T) {
	n := NewVar("z")
	assert.Nil(t, n.CacheGet(1))
	n.CacheSet(1, n)
	assert.Same(t, n, n.CacheGet(1))
	assert.Nil(t, n.CacheGet(2)) // epoch advanced: stale
}

func TestOverwritePreservesAddress(t *testing.T) {
	hole := NewIo(IoExit)
	a := NewIo(IoExit)
	b := NewIo(IoErr)
	replacement := NewApp(a, b)

	hole.Overwrite(replacement)
	assert.Equal(t, KApp, hole.Kind)
	assert.Same(t, a, hole.Lhs)
	assert.Same(t, b, hole.Rhs)
	assert.Equal(t, 2, a.Refcount()) // one from replacement, one adopted by hole
	Decref(replacement)
	Decref(hole)
	assert.Equal(t, 0, a.Refcount())
	assert.Equal(t, 0, b.Refcount())
}

func TestMultipleLamsCanShareOneVar(t *testing.T) {
	v := NewVar("shared")
	l1 := NewLam(v, v)
	l2 := NewLam(v, v)
	assert.Equal(t, 2, v.Bindcount())
	Decref(l1)
	assert.Equal(t, 1, v.Bindcount())
	Decref(l2)
	assert.Equal(t, 0, v.Bindcount())
}
