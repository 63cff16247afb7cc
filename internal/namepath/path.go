// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file provides the accessors and renderings of a parsed name path.

package namepath

import (
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Separator joins segments in both the declaration and the C++ syntax.
const Separator = "::"

// Names returns the identifier text of every segment.
func (p *NamePath) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		names[i] = seg.Name
	}
	return names
}

// String renders the path as `a::b::c`.
func (p *NamePath) String() string {
	return strings.Join(p.Names(), Separator)
}

// Cxx renders the path fully qualified from the global namespace, `::a::b::c`.
func (p *NamePath) Cxx() string {
	if p == nil || len(p.Segments) == 0 {
		return ""
	}
	return Separator + p.String()
}

// Equal compares segment names only; source ranges are ignored.
func (p *NamePath) Equal(other *NamePath) bool {
	if p == nil || other == nil {
		return p == other
	}
	return slices.Equal(p.Names(), other.Names())
}

// Last returns the final segment's name.
func (p *NamePath) Last() string {
	if p == nil || len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Name
}

// Parent returns the path without its last segment, or nil for a
// single-segment path.
func (p *NamePath) Parent() *NamePath {
	if p == nil || len(p.Segments) < 2 {
		return nil
	}
	return &NamePath{Segments: slices.Clone(p.Segments[:len(p.Segments)-1])}
}

// Append returns a new path with name added as the last segment. A nil
// receiver yields a single-segment path.
func (p *NamePath) Append(name string) *NamePath {
	var segs []Segment
	if p != nil {
		segs = slices.Clone(p.Segments)
	}
	return &NamePath{Segments: append(segs, Segment{Name: name})}
}

// Range spans every segment of the path.
func (p *NamePath) Range() hcl.Range {
	if p == nil || len(p.Segments) == 0 {
		return hcl.Range{}
	}
	return hcl.RangeBetween(p.Segments[0].Range, p.Segments[len(p.Segments)-1].Range)
}
