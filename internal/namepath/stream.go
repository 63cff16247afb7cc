package namepath

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Stream is a forward-only cursor over lexed tokens. Newline tokens are
// skipped transparently and the stream always ends with a TokenEOF.
type Stream struct {
	tokens hclsyntax.Tokens
	pos    int
}

// Lex tokenizes src with the HCL expression lexer. Lexer diagnostics are
// not reported here: invalid characters surface as tokens and the grammar
// reading the stream decides whether they are acceptable.
func Lex(src []byte, filename string, start hcl.Pos) *Stream {
	tokens, _ := hclsyntax.LexExpression(src, filename, start)
	return NewStream(tokens)
}

// NewStream wraps already lexed tokens.
func NewStream(tokens hclsyntax.Tokens) *Stream {
	if n := len(tokens); n == 0 || tokens[n-1].Type != hclsyntax.TokenEOF {
		var rng hcl.Range
		if n > 0 {
			end := tokens[n-1].Range.End
			rng = hcl.Range{Filename: tokens[n-1].Range.Filename, Start: end, End: end}
		}
		tokens = append(tokens, hclsyntax.Token{Type: hclsyntax.TokenEOF, Range: rng})
	}
	return &Stream{tokens: tokens}
}

// Peek returns the next significant token without consuming it.
func (s *Stream) Peek() hclsyntax.Token {
	s.skipNewlines()
	return s.tokens[s.pos]
}

// Next consumes and returns the next significant token. At the end of the
// stream it keeps returning the EOF token.
func (s *Stream) Next() hclsyntax.Token {
	tok := s.Peek()
	if tok.Type != hclsyntax.TokenEOF {
		s.pos++
	}
	return tok
}

// Accept consumes the next token if it has the given type.
func (s *Stream) Accept(typ hclsyntax.TokenType) (hclsyntax.Token, bool) {
	if tok := s.Peek(); tok.Type == typ {
		return s.Next(), true
	}
	return hclsyntax.Token{}, false
}

// AtEnd reports whether only EOF remains.
func (s *Stream) AtEnd() bool {
	return s.Peek().Type == hclsyntax.TokenEOF
}

func (s *Stream) skipNewlines() {
	for s.tokens[s.pos].Type == hclsyntax.TokenNewline {
		s.pos++
	}
}
