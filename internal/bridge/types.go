// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models the type expressions used by fields, params and returns.

package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/bridgegen/internal/namepath"
)

// Type is a parsed type expression such as `&mut [u8]` or `Vec<ffi::Item>`.
type Type interface {
	fmt.Stringer
	Range() hcl.Range
}

// Named is a (possibly qualified, possibly generic) type name.
type Named struct {
	Path     *namepath.NamePath
	Args     []Type
	SrcRange hcl.Range
}

// Ref is `&T` or `&mut T`.
type Ref struct {
	Mut      bool
	Inner    Type
	SrcRange hcl.Range
}

// Ptr is `*const T` or `*mut T`.
type Ptr struct {
	Mut      bool
	Inner    Type
	SrcRange hcl.Range
}

// Slice is `[T]`; it only appears behind a reference.
type Slice struct {
	Inner    Type
	SrcRange hcl.Range
}

// Array is `[T; N]`.
type Array struct {
	Inner    Type
	Len      int
	SrcRange hcl.Range
}

// Unit is `()`.
type Unit struct {
	SrcRange hcl.Range
}

func (t *Named) Range() hcl.Range { return t.SrcRange }
func (t *Ref) Range() hcl.Range   { return t.SrcRange }
func (t *Ptr) Range() hcl.Range   { return t.SrcRange }
func (t *Slice) Range() hcl.Range { return t.SrcRange }
func (t *Array) Range() hcl.Range { return t.SrcRange }
func (t *Unit) Range() hcl.Range  { return t.SrcRange }

// IsBuiltin reports whether t is the unqualified name `name`.
func (t *Named) IsBuiltin(name string) bool {
	return len(t.Path.Segments) == 1 && t.Path.Segments[0].Name == name
}

func (t *Named) String() string {
	if len(t.Args) == 0 {
		return t.Path.String()
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Path.String() + "<" + strings.Join(args, ", ") + ">"
}

func (t *Ref) String() string {
	if t.Mut {
		return "&mut " + t.Inner.String()
	}
	return "&" + t.Inner.String()
}

func (t *Ptr) String() string {
	if t.Mut {
		return "*mut " + t.Inner.String()
	}
	return "*const " + t.Inner.String()
}

func (t *Slice) String() string { return "[" + t.Inner.String() + "]" }
func (t *Array) String() string { return fmt.Sprintf("[%s; %d]", t.Inner, t.Len) }
func (t *Unit) String() string  { return "()" }

// ParseType parses a complete type expression. start is the position of
// src[0] within filename.
func ParseType(src []byte, filename string, start hcl.Pos) (Type, hcl.Diagnostics) {
	s := namepath.Lex(src, filename, start)
	typ, diags := parseType(s)
	if diags.HasErrors() {
		return nil, diags
	}
	if tok := s.Peek(); tok.Type != hclsyntax.TokenEOF {
		return nil, typeError(tok.Range, fmt.Sprintf("Unexpected %q after type %s.", tok.Bytes, typ))
	}
	return typ, nil
}

func parseType(s *namepath.Stream) (Type, hcl.Diagnostics) {
	tok := s.Peek()
	switch tok.Type {
	case hclsyntax.TokenBitwiseAnd:
		s.Next()
		mut := acceptKeyword(s, "mut")
		inner, diags := parseType(s)
		if diags.HasErrors() {
			return nil, diags
		}
		return &Ref{Mut: mut, Inner: inner, SrcRange: hcl.RangeBetween(tok.Range, inner.Range())}, nil

	case hclsyntax.TokenStar:
		s.Next()
		var mut bool
		switch {
		case acceptKeyword(s, "mut"):
			mut = true
		case acceptKeyword(s, "const"):
		default:
			return nil, typeError(s.Peek().Range, "Raw pointers must be written *const T or *mut T.")
		}
		inner, diags := parseType(s)
		if diags.HasErrors() {
			return nil, diags
		}
		return &Ptr{Mut: mut, Inner: inner, SrcRange: hcl.RangeBetween(tok.Range, inner.Range())}, nil

	case hclsyntax.TokenOBrack:
		s.Next()
		inner, diags := parseType(s)
		if diags.HasErrors() {
			return nil, diags
		}
		if closing, ok := s.Accept(hclsyntax.TokenCBrack); ok {
			return &Slice{Inner: inner, SrcRange: hcl.RangeBetween(tok.Range, closing.Range)}, nil
		}
		if _, ok := s.Accept(hclsyntax.TokenSemicolon); !ok {
			return nil, typeError(s.Peek().Range, "Expected \"]\" or \";\" in array or slice type.")
		}
		lenTok := s.Peek()
		n, err := strconv.Atoi(string(lenTok.Bytes))
		if lenTok.Type != hclsyntax.TokenNumberLit || err != nil || n < 0 {
			return nil, typeError(lenTok.Range, "Array length must be a non-negative integer literal.")
		}
		s.Next()
		closing, ok := s.Accept(hclsyntax.TokenCBrack)
		if !ok {
			return nil, typeError(s.Peek().Range, "Expected \"]\" after array length.")
		}
		return &Array{Inner: inner, Len: n, SrcRange: hcl.RangeBetween(tok.Range, closing.Range)}, nil

	case hclsyntax.TokenOParen:
		s.Next()
		closing, ok := s.Accept(hclsyntax.TokenCParen)
		if !ok {
			return nil, typeError(s.Peek().Range, "Tuple types are not supported; only () is.")
		}
		return &Unit{SrcRange: hcl.RangeBetween(tok.Range, closing.Range)}, nil

	case hclsyntax.TokenIdent:
		path, err := namepath.ParseUnquoted(s)
		if err != nil {
			return nil, pathDiags(err)
		}
		named := &Named{Path: path, SrcRange: path.Range()}
		if _, ok := s.Accept(hclsyntax.TokenLessThan); !ok {
			return named, nil
		}
		for {
			arg, diags := parseType(s)
			if diags.HasErrors() {
				return nil, diags
			}
			named.Args = append(named.Args, arg)
			if closing, ok := s.Accept(hclsyntax.TokenGreaterThan); ok {
				named.SrcRange = hcl.RangeBetween(named.SrcRange, closing.Range)
				return named, nil
			}
			if _, ok := s.Accept(hclsyntax.TokenComma); !ok {
				return nil, typeError(s.Peek().Range, "Expected \",\" or \">\" in generic argument list.")
			}
		}
	}

	if tok.Type == hclsyntax.TokenEOF {
		return nil, typeError(tok.Range, "Expected a type, found end of input.")
	}
	return nil, typeError(tok.Range, fmt.Sprintf("Expected a type, found %q.", tok.Bytes))
}

func acceptKeyword(s *namepath.Stream, kw string) bool {
	if tok := s.Peek(); tok.Type == hclsyntax.TokenIdent && string(tok.Bytes) == kw {
		s.Next()
		return true
	}
	return false
}

func typeError(rng hcl.Range, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid type",
		Detail:   detail,
		Subject:  rng.Ptr(),
	}}
}
