package eval

import "blc/internal/term"

// WHNF reduces t in place to weak-head normal form under normal-order
// (leftmost-outermost) semantics, using epoch to stamp any beta passes
// it performs. On return t's node is one of Var, Lam, Io, or an App
// whose head is not a Lam. t's address never changes, so every parent
// holding a pointer to t observes the reduced value without any work
// of its own — the single most important performance property of the
// evaluator.
func WHNF(t *term.Node, epoch *Epoch) {
	for {
		if t.Kind != term.KApp {
			return
		}
		WHNF(t.Lhs, epoch)
		if t.Lhs.Kind != term.KLam {
			return
		}

		lam := t.Lhs
		a := t.Rhs // detach t's edge to a: ownership moves to this local
		v := lam.Lhs
		b := lam.Rhs

		// Detach v and b from lam: incref both first so that releasing
		// t's now-abandoned edge to lam (which frees lam when that edge
		// was its last reference) hands ownership to these locals
		// instead of reclaiming v/b out from under us.
		term.Incref(v)
		term.Incref(b)
		term.Decref(lam)

		var result *term.Node
		if b == v && v.Bindcount() == 0 && a.Refcount() == 1 {
			// (\v.v) a, with v unused elsewhere and a uniquely owned:
			// the Var case of Beta would just decref b (== v) and
			// hand back a — skip the dispatch and cache lookup and
			// do exactly that.
			term.Decref(b)
			term.Decref(v)
			result = a
		} else {
			result = Beta(b, v, a, epoch.Next())
			term.Decref(v)
			term.Decref(a)
		}

		t.Overwrite(result)
		term.Decref(result)
	}
}
