package gen

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/bridgegen/internal/bridge"
	"github.com/vk/bridgegen/internal/include"
)

// use is the position a type is rendered in.
type use int

const (
	useInner use = iota // generic argument, pointee or array element
	useField
	useParam
	useReturn
)

// builtinType describes a name every bridge understands without declaring it.
type builtinType struct {
	cxx string
	// arity is the number of generic arguments; -1 means one or more.
	arity  int
	guards []string
	caps   []include.Capability
	// trivial types are passed by value without any wrapping.
	trivial bool
}

var builtinTypes = map[string]builtinType{
	"bool":   {cxx: "bool", trivial: true},
	"u8":     {cxx: "::std::uint8_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"u16":    {cxx: "::std::uint16_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"u32":    {cxx: "::std::uint32_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"u64":    {cxx: "::std::uint64_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"i8":     {cxx: "::std::int8_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"i16":    {cxx: "::std::int16_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"i32":    {cxx: "::std::int32_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"i64":    {cxx: "::std::int64_t", caps: []include.Capability{include.Cstdint}, trivial: true},
	"usize":  {cxx: "::std::size_t", caps: []include.Capability{include.Cstddef}, trivial: true},
	"isize":  {cxx: "::rust::isize", guards: []string{guardIsize}, trivial: true},
	"f32":    {cxx: "float", trivial: true},
	"f64":    {cxx: "double", trivial: true},
	"c_char": {cxx: "char", trivial: true},

	"String":    {cxx: "::rust::String", guards: []string{guardString}},
	"str":       {cxx: "::rust::Str", guards: []string{guardStr}},
	"CxxString": {cxx: "::std::string", caps: []include.Capability{include.String}},

	"Box":       {cxx: "::rust::Box", arity: 1, guards: []string{guardBox}},
	"Vec":       {cxx: "::rust::Vec", arity: 1, guards: []string{guardVec}},
	"Fn":        {cxx: "::rust::Fn", arity: -1, guards: []string{guardFn}},
	"UniquePtr": {cxx: "::std::unique_ptr", arity: 1, caps: []include.Capability{include.Memory}},
	"SharedPtr": {cxx: "::std::shared_ptr", arity: 1, caps: []include.Capability{include.Memory}},
	"WeakPtr":   {cxx: "::std::weak_ptr", arity: 1, caps: []include.Capability{include.Memory}},
	"CxxVector": {cxx: "::std::vector", arity: 1, caps: []include.Capability{include.Vector}},
	"Result":    {arity: 1, guards: []string{guardError, guardTry}},
}

// resolver renders declaration types as C++ and records the builtins the
// rendered code needs. Problems are collected, not returned early.
type resolver struct {
	syms     *symbols
	builtins *Builtins
	diags    hcl.Diagnostics

	// relocatable lists extern types passed by value, in first-use order.
	relocatable []*bridge.Item
	seenReloc   map[*bridge.Item]bool
}

func newResolver(b *bridge.Bridge) *resolver {
	r := &resolver{
		syms:      newSymbols(b),
		builtins:  newBuiltins(),
		seenReloc: make(map[*bridge.Item]bool),
	}
	r.builtins.Require(b.Requires...)
	return r
}

func (r *resolver) errorf(rng hcl.Range, summary, format string, args ...any) string {
	r.diags = append(r.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	})
	return "void"
}

// cxx renders t for position u.
func (r *resolver) cxx(t bridge.Type, u use) string {
	switch t := t.(type) {
	case *bridge.Unit:
		if u != useReturn {
			return r.errorf(t.Range(), "Invalid use of ()", "The unit type is only allowed as a return type.")
		}
		return "void"

	case *bridge.Ref:
		if slice, ok := t.Inner.(*bridge.Slice); ok {
			r.builtins.Need(guardSlice)
			elem := r.cxx(slice.Inner, useInner)
			if !t.Mut {
				elem = "const " + elem
			}
			return "::rust::Slice<" + elem + ">"
		}
		if n, ok := t.Inner.(*bridge.Named); ok && n.IsBuiltin("str") {
			if t.Mut {
				return r.errorf(t.Range(), "Invalid reference", "&mut str is not supported; use &mut String.")
			}
			r.builtins.Need(guardStr)
			return "::rust::Str"
		}
		inner := r.cxx(t.Inner, useInner)
		if t.Mut {
			return inner + " &"
		}
		return "const " + inner + " &"

	case *bridge.Ptr:
		inner := r.cxx(t.Inner, useInner)
		if t.Mut {
			return inner + " *"
		}
		return "const " + inner + " *"

	case *bridge.Slice:
		return r.errorf(t.Range(), "Invalid use of slice", "A slice type must appear behind a reference, e.g. &[%s].", t.Inner)

	case *bridge.Array:
		r.builtins.Require(include.Array)
		return fmt.Sprintf("::std::array<%s, %d>", r.cxx(t.Inner, useInner), t.Len)

	case *bridge.Named:
		return r.named(t, u)
	}
	return r.errorf(t.Range(), "Unsupported type", "The type %s cannot be represented in C++.", t)
}

func (r *resolver) named(t *bridge.Named, u use) string {
	if len(t.Path.Segments) == 1 {
		if bt, ok := builtinTypes[t.Path.Last()]; ok {
			return r.builtin(t, bt, u)
		}
	}

	sym, ambiguous := r.syms.lookup(t.Path)
	switch {
	case ambiguous:
		return r.errorf(t.Range(), "Ambiguous type", "%s names more than one declared type; qualify it with its namespace.", t.Path)
	case sym == nil:
		return r.errorf(t.Range(), "Unknown type", "%s is neither a builtin nor declared in this bridge.", t.Path)
	case len(t.Args) > 0:
		return r.errorf(t.Range(), "Unexpected generic arguments", "%s is not generic.", t.Path)
	}

	if u != useInner {
		switch sym.kind {
		case kindOpaque:
			return r.errorf(t.Range(), "Opaque type by value",
				"%s is opaque and can only be used behind a reference, pointer or smart pointer.", t.Path)
		case kindExtern:
			r.builtins.Need(guardRelocatable)
			if !r.seenReloc[sym.item] {
				r.seenReloc[sym.item] = true
				r.relocatable = append(r.relocatable, sym.item)
			}
		}
		r.byValue(u, sym.kind != kindEnum)
	}
	return sym.item.Path().Cxx()
}

func (r *resolver) builtin(t *bridge.Named, bt builtinType, u use) string {
	name := t.Path.Last()
	switch {
	case bt.arity == 0 && len(t.Args) > 0:
		return r.errorf(t.Range(), "Unexpected generic arguments", "%s is not generic.", name)
	case bt.arity > 0 && len(t.Args) != bt.arity:
		return r.errorf(t.Range(), "Wrong number of generic arguments", "%s takes %d generic argument(s), found %d.", name, bt.arity, len(t.Args))
	case bt.arity < 0 && len(t.Args) == 0:
		return r.errorf(t.Range(), "Wrong number of generic arguments", "%s takes at least one generic argument.", name)
	case name == "str":
		return r.errorf(t.Range(), "Invalid use of str", "str must appear behind a shared reference, e.g. &str.")
	case name == "Result" && u != useReturn:
		return r.errorf(t.Range(), "Invalid use of Result", "Result is only allowed as a function return type.")
	}

	for _, g := range bt.guards {
		r.builtins.Need(g)
	}
	r.builtins.Require(bt.caps...)

	switch name {
	case "Result":
		// Errors travel as ::rust::Error exceptions; the value type is
		// returned directly.
		if _, unit := t.Args[0].(*bridge.Unit); unit {
			return "void"
		}
		return r.cxx(t.Args[0], useReturn)
	case "Fn":
		ret := "void"
		if _, unit := t.Args[0].(*bridge.Unit); !unit {
			ret = r.cxx(t.Args[0], useInner)
		}
		params := make([]string, 0, len(t.Args)-1)
		for _, a := range t.Args[1:] {
			params = append(params, r.cxx(a, useInner))
		}
		return fmt.Sprintf("%s<%s(%s)>", bt.cxx, ret, strings.Join(params, ", "))
	}

	if u != useInner && !bt.trivial {
		r.byValue(u, true)
	}
	if bt.arity == 0 {
		return bt.cxx
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = r.cxx(a, useInner)
	}
	return bt.cxx + "<" + strings.Join(args, ", ") + ">"
}

// byValue records the shims needed to move a non-trivial value across the
// boundary as a parameter or return value.
func (r *resolver) byValue(u use, nonTrivial bool) {
	if !nonTrivial {
		return
	}
	switch u {
	case useParam:
		r.builtins.Need(guardManuallyDrop)
	case useReturn:
		r.builtins.Need(guardMaybeUninit)
	}
}
