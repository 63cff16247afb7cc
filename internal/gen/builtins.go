// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models the support guards and their dependencies.

package gen

import (
	"slices"

	"github.com/vk/bridgegen/internal/include"
)

// Guard names of the canonical support header.
const (
	guardBitcopy      = "BRIDGE1_RUST_BITCOPY_T"
	guardImpl         = "BRIDGE1_IMPL"
	guardPanic        = "BRIDGE1_PANIC"
	guardString       = "BRIDGE1_RUST_STRING"
	guardStr          = "BRIDGE1_RUST_STR"
	guardSlice        = "BRIDGE1_RUST_SLICE"
	guardBox          = "BRIDGE1_RUST_BOX"
	guardVec          = "BRIDGE1_RUST_VEC"
	guardFn           = "BRIDGE1_RUST_FN"
	guardError        = "BRIDGE1_RUST_ERROR"
	guardIsize        = "BRIDGE1_RUST_ISIZE"
	guardOpaque       = "BRIDGE1_RUST_OPAQUE"
	guardIsComplete   = "BRIDGE1_IS_COMPLETE"
	guardLayout       = "BRIDGE1_LAYOUT"
	guardRelocatable  = "BRIDGE1_RELOCATABLE"
	guardManuallyDrop = "BRIDGE1_MANUALLY_DROP"
	guardMaybeUninit  = "BRIDGE1_MAYBE_UNINIT"
	guardTry          = "BRIDGE1_TRY"
)

// guardOrder is the order guards are extracted in. Every entry must exist
// in the canonical header.
var guardOrder = []string{
	guardBitcopy,
	guardImpl,
	guardPanic,
	guardString,
	guardStr,
	guardSlice,
	guardBox,
	guardVec,
	guardFn,
	guardError,
	guardIsize,
	guardOpaque,
	guardIsComplete,
	guardLayout,
	guardRelocatable,
	guardManuallyDrop,
	guardMaybeUninit,
	guardTry,
}

type guardDeps struct {
	guards []string
	caps   []include.Capability
}

// dependencies lists what the body of each guard refers to.
var dependencies = map[string]guardDeps{
	guardPanic: {caps: []include.Capability{include.Exception}},
	guardString: {
		guards: []string{guardBitcopy, guardImpl, guardStr},
		caps:   []include.Capability{include.Array, include.Cstddef, include.Cstdint, include.String},
	},
	guardStr: {
		guards: []string{guardImpl, guardString},
		caps:   []include.Capability{include.Array, include.Cstddef, include.Cstdint, include.String},
	},
	guardSlice: {
		guards: []string{guardPanic},
		caps:   []include.Capability{include.Array, include.Cstddef, include.Cstdint},
	},
	guardBox: {caps: []include.Capability{include.TypeTraits}},
	guardVec: {
		guards: []string{guardBitcopy, guardPanic, guardSlice},
		caps:   []include.Capability{include.Array, include.Cstddef, include.Cstdint, include.Utility},
	},
	guardError: {
		guards: []string{guardImpl},
		caps:   []include.Capability{include.Cstddef, include.Exception},
	},
	guardIsize:      {caps: []include.Capability{include.Basetsd}},
	guardIsComplete: {caps: []include.Capability{include.Cstddef, include.TypeTraits}},
	guardLayout: {
		guards: []string{guardIsComplete, guardOpaque},
		caps:   []include.Capability{include.Cstddef, include.TypeTraits},
	},
	guardRelocatable:  {caps: []include.Capability{include.TypeTraits}},
	guardManuallyDrop: {caps: []include.Capability{include.Utility}},
	guardMaybeUninit:  {caps: []include.Capability{include.Cstddef, include.PlacementNew}},
	guardTry:          {caps: []include.Capability{include.Exception, include.TypeTraits, include.Utility}},
}

// Builtins is the set of support guards and standard headers a run needs.
// Adding a guard adds everything its body depends on.
type Builtins struct {
	guards map[string]bool
	caps   map[include.Capability]bool
}

func newBuiltins() *Builtins {
	return &Builtins{
		guards: make(map[string]bool),
		caps:   make(map[include.Capability]bool),
	}
}

// Need marks guard, and transitively its dependencies, as needed.
func (b *Builtins) Need(guard string) {
	if b.guards[guard] {
		return
	}
	b.guards[guard] = true
	deps := dependencies[guard]
	for _, c := range deps.caps {
		b.caps[c] = true
	}
	for _, g := range deps.guards {
		b.Need(g)
	}
}

// Require marks standard headers as needed.
func (b *Builtins) Require(caps ...include.Capability) {
	for _, c := range caps {
		b.caps[c] = true
	}
}

// Needed reports whether guard is needed.
func (b *Builtins) Needed(guard string) bool {
	return b.guards[guard]
}

// Guards returns the needed guards in extraction order.
func (b *Builtins) Guards() []string {
	var needed []string
	for _, g := range guardOrder {
		if b.guards[g] {
			needed = append(needed, g)
		}
	}
	return needed
}

// Capabilities returns the needed standard headers in render order.
func (b *Builtins) Capabilities() []include.Capability {
	var caps []include.Capability
	for _, c := range include.Capabilities() {
		if b.caps[c] {
			caps = append(caps, c)
		}
	}
	return caps
}

// KnownGuards returns every guard the generator extracts, in order.
func KnownGuards() []string {
	return slices.Clone(guardOrder)
}
