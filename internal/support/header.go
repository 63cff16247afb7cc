// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models the canonical support header.

package support

import (
	_ "embed"
	"strings"
)

//go:embed include/bridge.h
var bridgeHeader string

var defaultHeader = NewHeader(bridgeHeader)

// Header is an immutable canonical support header. It is safe for
// concurrent use.
type Header struct {
	text string
}

// NewHeader wraps text as a canonical header.
func NewHeader(text string) *Header {
	return &Header{text: text}
}

// Default returns the embedded canonical header.
func Default() *Header {
	return defaultHeader
}

// Text returns the complete header.
func (h *Header) Text() string {
	return h.text
}

// Guards lists the guard names declared in the header, in order of first
// appearance. A name is listed only if some `#ifndef G` line is directly
// followed by `#define G`.
func (h *Header) Guards() []string {
	var guards []string
	seen := make(map[string]struct{})
	lines := strings.Split(h.text, "\n")
	for i := 0; i+1 < len(lines); i++ {
		name, ok := strings.CutPrefix(strings.TrimRight(lines[i], "\r"), ifndefPrefix)
		if !ok || name == "" || strings.TrimRight(lines[i+1], "\r") != definePrefix+name {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		guards = append(guards, name)
	}
	return guards
}
