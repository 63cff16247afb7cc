// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the in-memory model of a bridge declaration.
package bridge

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/bridgegen/internal/include"
	"github.com/vk/bridgegen/internal/namepath"
)

// Bridge is one `bridge` block: a set of items generated into one header.
type Bridge struct {
	Name string
	// Namespace is nil for the global namespace.
	Namespace *namepath.NamePath
	Includes  []include.Include
	Requires  []include.Capability

	Structs     []*Struct
	Enums       []*Enum
	ExternTypes []*Item
	OpaqueTypes []*Item
	Functions   []*Function

	FSInformation *FSInfo
	DefRange      hcl.Range
}

// Item is the part common to every declared entity.
type Item struct {
	Name string
	// Namespace defaults to the bridge namespace.
	Namespace *namepath.NamePath
	DefRange  hcl.Range
}

// Path returns the fully qualified path of the item.
func (it *Item) Path() *namepath.NamePath {
	return it.Namespace.Append(it.Name)
}

// Struct is a shared struct whose layout both sides agree on.
type Struct struct {
	Item
	Fields []*Field
}

// Field is a struct field.
type Field struct {
	Name string
	Type Type
}

// Enum is a shared C-like enum.
type Enum struct {
	Item
	// Repr is the underlying integer type, "u8" through "i64".
	Repr     string
	Variants []string
}

// Function is a function callable across the bridge.
type Function struct {
	Item
	Params []*Param
	// Returns is nil for functions returning nothing.
	Returns Type
}

// Param is a function parameter.
type Param struct {
	Name string
	Type Type
}

// Throws reports whether the function returns Result<T>.
func (f *Function) Throws() bool {
	n, ok := f.Returns.(*Named)
	return ok && n.IsBuiltin("Result")
}

// FSInfo links a bridge back to the file it was declared in.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates FSInfo for filePath.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{FilePath: filePath}
}

// Items returns every declared item in a stable order: extern types, opaque
// types, enums, structs, functions.
func (b *Bridge) Items() []*Item {
	var items []*Item
	items = append(items, b.ExternTypes...)
	items = append(items, b.OpaqueTypes...)
	for _, e := range b.Enums {
		items = append(items, &e.Item)
	}
	for _, s := range b.Structs {
		items = append(items, &s.Item)
	}
	for _, f := range b.Functions {
		items = append(items, &f.Item)
	}
	return items
}
