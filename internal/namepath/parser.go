package namepath

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// sourceName labels ranges of paths parsed from a bare string.
const sourceName = "<path>"

// Parse parses a complete path from src, quoted or bare. Trailing tokens are
// an error.
func Parse(src string) (*NamePath, error) {
	return ParseBytes([]byte(src), sourceName, hcl.InitialPos)
}

// ParseBytes is Parse for a slice of a larger source file; start is the
// position of src[0] so errors point into the original file.
func ParseBytes(src []byte, filename string, start hcl.Pos) (*NamePath, error) {
	s := Lex(src, filename, start)
	path, err := ParseQuotedOrUnquoted(s)
	if err != nil {
		return nil, err
	}
	if err := expectEnd(s); err != nil {
		return nil, err
	}
	return path, nil
}

// ParseUnquoted reads `ident (:: ident)*` from s, leaving any following
// tokens unconsumed.
func ParseUnquoted(s *Stream) (*NamePath, error) {
	path := &NamePath{}
	trailingSep := true
	for trailingSep && s.Peek().Type == hclsyntax.TokenIdent {
		tok := s.Next()
		name := string(tok.Bytes)
		if strings.ContainsRune(name, '-') {
			return nil, newMalformed(tok.Range, "invalid identifier",
				fmt.Sprintf("%q is not a valid identifier; path segments may not contain '-'.", name))
		}
		path.Segments = append(path.Segments, Segment{Name: name, Range: tok.Range})
		_, trailingSep = s.Accept(hclsyntax.TokenDoubleColon)
	}

	next := s.Peek()
	if len(path.Segments) == 0 {
		return nil, newMalformed(next.Range, "expected path",
			fmt.Sprintf("A qualified name must start with an identifier, found %s.", describe(next)))
	}
	if trailingSep {
		return nil, newMalformed(next.Range, "expected path segment",
			fmt.Sprintf("An identifier must follow %q, found %s.", Separator, describe(next)))
	}
	return path, nil
}

// ParseQuotedOrUnquoted parses the contents of a string literal with
// ParseUnquoted when one comes next, and otherwise falls through to
// ParseUnquoted on s itself.
func ParseQuotedOrUnquoted(s *Stream) (*NamePath, error) {
	if s.Peek().Type != hclsyntax.TokenOQuote {
		return ParseUnquoted(s)
	}
	open := s.Next()

	var (
		contents []byte
		start    = open.Range.End
		first    = true
	)
scan:
	for {
		tok := s.Next()
		switch tok.Type {
		case hclsyntax.TokenQuotedLit:
			if first {
				start = tok.Range.Start
				first = false
			}
			contents = append(contents, tok.Bytes...)
		case hclsyntax.TokenCQuote:
			break scan
		case hclsyntax.TokenEOF:
			return nil, newMalformed(hcl.RangeBetween(open.Range, tok.Range), "unterminated string",
				"The quoted path has no closing quote.")
		default:
			return nil, newMalformed(tok.Range, "unexpected "+describe(tok),
				"A quoted path must be a plain string literal without template sequences.")
		}
	}

	inner := Lex(contents, open.Range.Filename, start)
	path, err := ParseUnquoted(inner)
	if err != nil {
		return nil, err
	}
	if err := expectEnd(inner); err != nil {
		return nil, err
	}
	return path, nil
}

func expectEnd(s *Stream) error {
	if tok := s.Peek(); tok.Type != hclsyntax.TokenEOF {
		return newMalformed(tok.Range, "unexpected "+describe(tok),
			"Nothing may follow a qualified name.")
	}
	return nil
}

func describe(tok hclsyntax.Token) string {
	switch tok.Type {
	case hclsyntax.TokenEOF:
		return "end of input"
	case hclsyntax.TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Bytes)
	case hclsyntax.TokenDoubleColon:
		return fmt.Sprintf("%q", Separator)
	case hclsyntax.TokenOQuote, hclsyntax.TokenCQuote:
		return "quote"
	}
	if len(tok.Bytes) > 0 {
		return fmt.Sprintf("%q", tok.Bytes)
	}
	return tok.Type.String()
}
