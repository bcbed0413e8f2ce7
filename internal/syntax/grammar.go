// Package syntax is the out-of-scope "external collaborator" the core
// evaluator consumes: a recursive-descent grammar over the prefix-
// polish concrete syntax, built with participle the same way the
// teacher repo builds its own grammar (github.com/alecthomas/participle/v2
// over a stateful lexer), producing a raw parse tree that
// internal/resolve then lowers into the term DAG.
package syntax

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the root of a parsed source file (or concatenation of
// several, per the CLI's multi-file contract): exactly one term.
type Program struct {
	Pos  lexer.Position
	Term *Term `@@`
}

// Term is the prefix-polish grammar's single production, dispatching
// on the next token: "." for application, "\" for abstraction, or a
// bare identifier for a variable/IO-atom reference.
type Term struct {
	Pos  lexer.Position
	App  *AppTerm `  @@`
	Lam  *LamTerm `| @@`
	Name *string  `| @Ident`
}

// AppTerm is ".<fn><arg>".
type AppTerm struct {
	Pos lexer.Position
	Fn  *Term `"." @@`
	Arg *Term `@@`
}

// LamTerm is "\<name><body>".
type LamTerm struct {
	Pos  lexer.Position
	Name string `"\\" @Ident`
	Body *Term  `@@`
}
