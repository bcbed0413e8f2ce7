// Package ioloop drives a resolved term to completion: it repeatedly
// reduces the top level to weak-head normal form, inspects the head
// for one of the IO atoms, performs the corresponding effect against
// real byte streams, builds a continuation, and repeats — the "peel
// one effect, perform it, continue" loop described for the
// interpreter's top level. It owns the Epoch for the whole run, the
// same way internal/lsp.Handler owns one long-lived piece of state
// (the workspace) that every request handler touches.
package ioloop

import (
	"fmt"
	"io"

	"blc/internal/bitio"
	"blc/internal/diag"
	"blc/internal/eval"
	"blc/internal/term"
)

// sentinelRefcount is large enough that no sequence of Decref calls a
// single run could issue will ever drive a sentinel to zero; the
// sentinels are process-lifetime constants, not part of the DAG's
// ownership accounting.
const sentinelRefcount = 1 << 30

// sentinelTrue and sentinelFalse are the two opaque leaves Put forces
// its argument against. See forceBit for why recognizing them after
// reduction goes by Name rather than address.
var (
	sentinelTrue  = newSentinel("TRUE")
	sentinelFalse = newSentinel("FALSE")
)

func newSentinel(name string) *term.Node {
	n := term.NewVar(name)
	for i := 0; i < sentinelRefcount-1; i++ {
		term.Incref(n)
	}
	return n
}

// Run drives root to completion, reading from stdin and writing to
// stdout as an MSB-first bit stream, and stderr as both a bit stream
// (for $eput) and plain text (for $dump and the final error report).
// Run consumes root: on every return path ownership of the top-level
// term has been released.
func Run(root *term.Node, stdin io.Reader, stdout, stderr io.Writer) error {
	epoch := &eval.Epoch{}
	in := bitio.NewReader(stdin)
	out := bitio.NewWriter(stdout)
	errBits := bitio.NewWriter(stderr)

	top := root
	for {
		eval.WHNF(top, epoch)
		head, args := spine(top)

		if head.Kind != term.KIo {
			term.Decref(top)
			flush(out, errBits)
			return runtimeErr(diag.ErrIrreducibleTopLevel, "top level is irreducible")
		}

		switch head.Io {
		case term.IoExit:
			if err := checkArity(args, head.Io, 0); err != nil {
				term.Decref(top)
				flush(out, errBits)
				return err
			}
			term.Decref(top)
			return flush(out, errBits)

		case term.IoErr:
			term.Decref(top)
			flush(out, errBits)
			return runtimeErr(diag.ErrAtTopLevel, "err at top level")

		case term.IoGet:
			if err := checkArity(args, head.Io, 1); err != nil {
				term.Decref(top)
				flush(out, errBits)
				return err
			}
			cont := term.Incref(args[0])
			option := readOption(in)
			term.Decref(top)
			top = term.NewApp(cont, option)

		case term.IoPut, term.IoEPut:
			if err := checkArity(args, head.Io, 2); err != nil {
				term.Decref(top)
				flush(out, errBits)
				return err
			}
			bit, err := forceBit(args[0], epoch)
			if err != nil {
				term.Decref(top)
				flush(out, errBits)
				return err
			}
			cont := term.Incref(args[1])
			term.Decref(top)
			if head.Io == term.IoPut {
				if werr := out.Put(bit); werr != nil {
					term.Decref(cont)
					return werr
				}
			} else {
				if werr := errBits.Put(bit); werr != nil {
					term.Decref(cont)
					return werr
				}
			}
			top = cont

		case term.IoDump:
			if err := checkArity(args, head.Io, 2); err != nil {
				term.Decref(top)
				flush(out, errBits)
				return err
			}
			dumped := term.Incref(args[0])
			cont := term.Incref(args[1])
			term.Decref(top)
			fmt.Fprintln(stderr, eval.Norm(dumped, epoch))
			top = cont

		default:
			term.Decref(top)
			flush(out, errBits)
			return runtimeErr(diag.ErrIrreducibleTopLevel, "top level is irreducible")
		}
	}
}

// spine walks t's leftmost application spine, returning the
// non-App head and the chain of argument nodes in left-to-right
// application order. Every returned node is borrowed from t's own
// tree, not a separate owned reference.
func spine(t *term.Node) (*term.Node, []*term.Node) {
	if t.Kind != term.KApp {
		return t, nil
	}
	head, args := spine(t.Lhs)
	return head, append(args, t.Rhs)
}

// readOption reads one bit and Scott-encodes it as Option<Bool>:
// none = λs.λn. n, some(bit) = λs.λn. s bit, bit itself Church-encoded
// as λt.λf. t (for 1) or λt.λf. f (for 0).
func readOption(in *bitio.Reader) *term.Node {
	bit, ok := in.Get()
	if !ok {
		return scottNone()
	}
	return scottSome(churchBool(bit))
}

func churchBool(bit bool) *term.Node {
	tv := term.NewVar("t")
	fv := term.NewVar("f")
	if bit {
		return term.NewLam(tv, term.NewLam(fv, term.Incref(tv)))
	}
	return term.NewLam(tv, term.NewLam(fv, term.Incref(fv)))
}

func scottNone() *term.Node {
	sv := term.NewVar("s")
	nv := term.NewVar("n")
	return term.NewLam(sv, term.NewLam(nv, term.Incref(nv)))
}

func scottSome(payload *term.Node) *term.Node {
	sv := term.NewVar("s")
	nv := term.NewVar("n")
	return term.NewLam(sv, term.NewLam(nv, term.NewApp(term.Incref(sv), payload)))
}

// forceBit applies arg to the TRUE/FALSE sentinels and WHNF-reduces
// the result, reading off which sentinel (if either) the application
// selected. arg is borrowed; the forcing application and its result
// are fully released before forceBit returns.
//
// WHNF always splices its result into the node it was called on
// (term.Node.Overwrite), so the wrapper App this function builds never
// ends up literally sharing a sentinel's address even when the
// computation selects one — only a node's children survive a
// reduction by real pointer, not the entry node itself. So sentinel
// recognition here goes by name, not by address, and additionally
// requires the sentinel to be the bare, unapplied head: "TRUE TRUE"
// is head sentinelTrue with one leftover argument, and is rightly
// malformed rather than mistaken for plain TRUE.
func forceBit(arg *term.Node, epoch *eval.Epoch) (bool, error) {
	forced := term.NewApp(term.NewApp(term.Incref(arg), term.Incref(sentinelTrue)), term.Incref(sentinelFalse))
	eval.WHNF(forced, epoch)
	head, args := spine(forced)

	switch {
	case len(args) == 0 && head.Kind == term.KVar && head.Name == "TRUE":
		term.Decref(forced)
		return true, nil
	case len(args) == 0 && head.Kind == term.KVar && head.Name == "FALSE":
		term.Decref(forced)
		return false, nil
	case head.Kind == term.KIo && head.Io == term.IoErr:
		term.Decref(forced)
		return false, runtimeErr(diag.ErrInArgument, "err in put argument")
	default:
		term.Decref(forced)
		return false, runtimeErr(diag.ErrMalformedArgument, "put argument is malformed")
	}
}

func flush(out, errBits *bitio.Writer) error {
	if err := out.Close(); err != nil {
		return err
	}
	return errBits.Close()
}

// checkArity distinguishes the two ways a head's application can fail
// to match its expected arity. Too few App layers means the top level
// simply isn't reduced far enough to peel an effect yet — that is the
// same fatal condition as an unrecognized head, "top level is
// irreducible". Too many is the head fully saturated with extra
// arguments left over, which gets the more specific
// "<op> expects N arguments" message.
func checkArity(args []*term.Node, kind term.IoKind, want int) error {
	switch {
	case len(args) < want:
		return runtimeErr(diag.ErrIrreducibleTopLevel, "top level is irreducible")
	case len(args) > want:
		return runtimeErr(diag.ErrWrongArity, fmt.Sprintf("%s expects %d arguments", kind, want))
	default:
		return nil
	}
}

func runtimeErr(code, msg string) error {
	return &diag.RuntimeError{Code: code, Message: msg}
}
