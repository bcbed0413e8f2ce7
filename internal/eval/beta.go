// Package eval implements the two passes that drive reduction: a
// memoized beta substitution and the weak-head normal form reducer
// built on top of it. Both operate directly on the term.Node graph and
// follow the ownership discipline documented on each function: an
// argument is either moved (the caller must not touch it again) or
// borrowed (the caller keeps its reference).
package eval

import "blc/internal/term"

// Epoch is the monotonic counter bumped once per substitution pass so
// that term.Node.CacheGet/CacheSet only ever honor a result computed
// during the live pass. Owned by the driver (internal/ioloop), but
// substitution needs to both read and advance it, so it is threaded
// through as a pointer rather than duplicated as package state —
// duplicating it would let two packages disagree about "the" epoch.
type Epoch struct {
	n uint64
}

// Next bumps and returns the new epoch value.
func (e *Epoch) Next() uint64 {
	e.n++
	return e.n
}

// Beta consumes one reference to t and returns an owned reference to
// t[v ↦ arg]. v and arg are borrowed: the caller keeps its own
// references to both (Beta increfs arg internally wherever it
// substitutes a use of v, and never decrefs the caller's v/arg
// handles). arg must be closed — WHNF only ever calls Beta on the
// body of a redex it is about to reduce, where that invariant holds.
//
// Per-node results are memoized in the node's beta cache keyed by
// epoch, so a term with deep sharing is substituted in time linear in
// the number of transitive parents of v rather than being copied
// repeatedly.
func Beta(t, v, arg *term.Node, epoch uint64) *term.Node {
	// Across every branch below, the invariant is: if the result is t
	// itself (by identity, whether literally untouched or mutated in
	// place), this call changes nothing about t's refcount — the
	// caller's edge still points at the very same node. If the result
	// differs from t, this call has decremented t by exactly one (its
	// edge was replaced) and produced a freshly owned reference. A
	// cache hit must reproduce whichever of those two effects the
	// first visit actually had, not just hand back the memoized value.
	if cached := t.CacheGet(epoch); cached != nil {
		if cached == t {
			return t
		}
		term.Decref(t)
		return term.Incref(cached)
	}

	var result *term.Node
	switch t.Kind {
	case term.KVar:
		if t == v {
			term.Decref(t)
			result = term.Incref(arg)
		} else {
			result = t
		}

	case term.KIo:
		result = t

	case term.KLam:
		if t.Lhs == v {
			// Inner binder shadows v: stop recursing, term is unchanged.
			result = t
		} else {
			newBody := Beta(t.Rhs, v, arg, epoch)
			result = rebuildUnary(t, t.Rhs, newBody, func(body *term.Node) *term.Node {
				return term.NewLam(t.Lhs, body)
			})
		}

	case term.KApp:
		newF := Beta(t.Lhs, v, arg, epoch)
		newX := Beta(t.Rhs, v, arg, epoch)
		result = rebuildBinary(t, t.Lhs, newF, t.Rhs, newX)

	default:
		result = t
	}

	t.CacheSet(epoch, result)
	return result
}

// rebuildUnary handles the Lam case's "did the child change" decision:
// if the new body is the same node, no allocation is needed and t is
// returned unchanged (CacheSet below still records t as t's own
// result, matching the contract "set beta_cache to term itself").
// Otherwise, if t is uniquely owned it is mutated in place; otherwise
// a fresh node is built and t is released.
//
// The recursive Beta call on the child already accounted for the
// reference t held to it (that reference was either handed back
// unchanged or released internally), so rebuilding never decrefs
// oldChild itself — only t, once, in the fresh-allocation branch.
func rebuildUnary(t, oldChild, newChild *term.Node, build func(*term.Node) *term.Node) *term.Node {
	if newChild == oldChild {
		return t
	}
	if t.Refcount() == 1 {
		t.Rhs = newChild
		return t
	}
	fresh := build(newChild)
	term.Decref(t)
	return fresh
}

// rebuildBinary is App(f, x)'s analogue of rebuildUnary: both children
// are substituted independently, and a fresh App is only allocated
// when something actually changed.
func rebuildBinary(t, oldF, newF, oldX, newX *term.Node) *term.Node {
	if newF == oldF && newX == oldX {
		return t
	}
	if t.Refcount() == 1 {
		t.Lhs = newF
		t.Rhs = newX
		return t
	}
	fresh := term.NewApp(newF, newX)
	term.Decref(t)
	return fresh
}
