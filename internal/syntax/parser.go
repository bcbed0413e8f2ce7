package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[Program] {
	p, err := participle.Build[Program](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace", "Comment"),
	)
	if err != nil {
		panic(fmt.Errorf("syntax: failed to build parser: %w", err))
	}
	return p
}

// ParseSource parses a single concatenated source (sourceName is used
// only for error positions; the CLI concatenates multiple files before
// calling this). Parse errors satisfy participle.Error, carrying a
// lexer.Position that internal/diag renders with a caret and snippet.
func ParseSource(sourceName, source string) (*Program, error) {
	return parser.ParseString(sourceName, source)
}
