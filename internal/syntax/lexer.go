package syntax

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the concrete prefix-polish syntax: "." application,
// "\" abstraction, "#" line comments, and any other maximal run of
// non-whitespace characters as a name. A name cannot contain ".", "\"
// or "#": each of those ends the name and starts a new token. A name
// is a variable reference or an IO atom,
// resolved later by internal/resolve — the lexer itself doesn't know
// the difference.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"Dot", `\.`, nil},
		{"Backslash", `\\`, nil},
		{"Ident", `[^\s.\\#]+`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
