// Package resolve lowers a parsed internal/syntax.Program into the
// term DAG: it resolves every identifier to either an enclosing
// lambda's bound variable or an IO atom, following the same
// parent-linked scope-chain shape as a SymbolTable, just specialized
// to one kind of symbol (a bound Var node) instead of
// functions/structs/parameters.
package resolve

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"blc/internal/diag"
	"blc/internal/syntax"
	"blc/internal/term"
)

// scope is one lexical frame: the name bound by the nearest enclosing
// lambda, the Var node it resolves to, and a link to the enclosing
// frame. Lookup walks innermost-first, the same way a chained symbol
// table walks its parent scopes.
type scope struct {
	name   string
	v      *term.Node
	parent *scope
}

func (s *scope) lookup(name string) *term.Node {
	for f := s; f != nil; f = f.parent {
		if f.name == name {
			return f.v
		}
	}
	return nil
}

var ioAtoms = map[string]term.IoKind{
	"$exit": term.IoExit,
	"$err":  term.IoErr,
	"$get":  term.IoGet,
	"$put":  term.IoPut,
	"$eput": term.IoEPut,
	"$dump": term.IoDump,
}

// Resolve lowers prog into an owned term.Node tree, the root term
// value ready to hand to eval.WHNF/eval.Norm/the IO loop. filename is
// used only to stamp diag.Position on any unbound-variable error.
func Resolve(filename string, prog *syntax.Program) (*term.Node, error) {
	return resolveTerm(filename, prog.Term, nil)
}

func resolveTerm(filename string, t *syntax.Term, sc *scope) (*term.Node, error) {
	switch {
	case t.App != nil:
		fn, err := resolveTerm(filename, t.App.Fn, sc)
		if err != nil {
			return nil, err
		}
		arg, err := resolveTerm(filename, t.App.Arg, sc)
		if err != nil {
			term.Decref(fn)
			return nil, err
		}
		return term.NewApp(fn, arg), nil

	case t.Lam != nil:
		v := term.NewVar(t.Lam.Name)
		inner := &scope{name: t.Lam.Name, v: v, parent: sc}
		body, err := resolveTerm(filename, t.Lam.Body, inner)
		if err != nil {
			term.Decref(v)
			return nil, err
		}
		lam := term.NewLam(v, body)
		// NewLam added its own binding edge to v; the allocation edge
		// created above by NewVar is no longer needed once the lambda
		// owns the bind edge and body owns whatever occurrences it held.
		term.Decref(v)
		return lam, nil

	case t.Name != nil:
		name := *t.Name
		if v := sc.lookup(name); v != nil {
			return term.Incref(v), nil
		}
		if k, ok := ioAtoms[name]; ok {
			return term.NewIo(k), nil
		}
		return nil, unboundErr(filename, t.Pos, name)

	default:
		return nil, &diag.ParseError{
			Code:    diag.ErrExpectedTerm,
			Message: "expected a term",
			Position: diag.Position{
				Filename: filename,
				Line:     t.Pos.Line,
				Column:   t.Pos.Column,
				Offset:   t.Pos.Offset,
			},
		}
	}
}

func unboundErr(filename string, pos lexer.Position, name string) error {
	return &diag.ParseError{
		Code:    diag.ErrUnboundVariable,
		Message: fmt.Sprintf("unbound variable %q", name),
		Position: diag.Position{
			Filename: filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Offset:   pos.Offset,
		},
	}
}
