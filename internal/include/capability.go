// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models the standard headers a generated header can switch on.

package include

import (
	"fmt"
	"strings"
)

// Capability is a well-known standard header the generated code may need.
type Capability int

// The declaration order is the render order.
const (
	Array Capability = iota
	Cstddef
	Cstdint
	Cstring
	Exception
	Memory
	PlacementNew
	String
	TypeTraits
	Utility
	Vector
	Basetsd

	numCapabilities
)

type capabilitySpec struct {
	name   string
	header string
	// cond wraps the directive in `#if cond` when set.
	cond string
}

var capabilities = [numCapabilities]capabilitySpec{
	Array:        {name: "array", header: "array"},
	Cstddef:      {name: "cstddef", header: "cstddef"},
	Cstdint:      {name: "cstdint", header: "cstdint"},
	Cstring:      {name: "cstring", header: "cstring"},
	Exception:    {name: "exception", header: "exception"},
	Memory:       {name: "memory", header: "memory"},
	PlacementNew: {name: "new", header: "new"},
	String:       {name: "string", header: "string"},
	TypeTraits:   {name: "type_traits", header: "type_traits"},
	Utility:      {name: "utility", header: "utility"},
	Vector:       {name: "vector", header: "vector"},
	Basetsd:      {name: "basetsd", header: "basetsd.h", cond: "defined(_WIN32)"},
}

// Capabilities returns every capability in render order.
func Capabilities() []Capability {
	all := make([]Capability, numCapabilities)
	for i := range all {
		all[i] = Capability(i)
	}
	return all
}

func (c Capability) valid() bool {
	return c >= 0 && c < numCapabilities
}

func (c Capability) String() string {
	if !c.valid() {
		return fmt.Sprintf("Capability(%d)", int(c))
	}
	return capabilities[c].name
}

// ParseCapability looks a capability up by its name, e.g. "type_traits".
func ParseCapability(name string) (Capability, error) {
	name = strings.TrimSpace(name)
	for i, entry := range capabilities {
		if entry.name == name {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q", name)
}
