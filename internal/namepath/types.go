// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the segments a name path is built from.

package namepath

import "github.com/hashicorp/hcl/v2"

// Segment is a single identifier of a qualified path.
type Segment struct {
	Name  string
	Range hcl.Range
}

// NamePath is an ordered, non-empty sequence of identifier segments, e.g.
// `org::blobstore::Client`.
type NamePath struct {
	Segments []Segment
}

// New builds a NamePath from bare names. Source ranges are left empty.
// It panics if no names are given.
func New(names ...string) *NamePath {
	if len(names) == 0 {
		panic("namepath: a path needs at least one segment")
	}
	p := &NamePath{Segments: make([]Segment, 0, len(names))}
	for _, name := range names {
		p.Segments = append(p.Segments, Segment{Name: name})
	}
	return p
}
