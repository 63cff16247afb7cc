// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file assembles generated headers and runs bridges concurrently.

package gen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/bridgegen/internal/bridge"
	"github.com/vk/bridgegen/internal/ctxlog"
	"github.com/vk/bridgegen/internal/include"
	"github.com/vk/bridgegen/internal/namepath"
	"github.com/vk/bridgegen/internal/out"
	"github.com/vk/bridgegen/internal/support"
	"golang.org/x/sync/errgroup"
)

// Preamble is the first line of every generated header.
const Preamble = "// Code generated by bridgegen. DO NOT EDIT."

// DefaultWorkers bounds GenerateAll when Options.Workers is unset.
const DefaultWorkers = 4

// Options configures generation.
type Options struct {
	// Header is the canonical support header; nil selects support.Default().
	Header *support.Header
	// Workers bounds the number of bridges generated at once.
	Workers int
}

func (o Options) header() *support.Header {
	if o.Header == nil {
		return support.Default()
	}
	return o.Header
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return DefaultWorkers
	}
	return o.Workers
}

// Output is one generated header.
type Output struct {
	Bridge *bridge.Bridge
	// Path is the file name of the header, relative to the output directory.
	Path    string
	Content []byte
	// Guards are the support guards the header contains.
	Guards []string
}

// Analyze resolves every type b uses and reports the builtins its header
// needs.
func Analyze(b *bridge.Bridge) (*Builtins, hcl.Diagnostics) {
	r := newResolver(b)
	writeDecls(out.New(), b, r)
	return r.builtins, r.diags
}

// Generate produces the header for b. Declaration problems are returned as
// hcl.Diagnostics wrapped in the error; a guard missing from the support
// header is returned as a *support.MissingGuardError.
func Generate(ctx context.Context, b *bridge.Bridge, opts Options) (*Output, error) {
	logger := ctxlog.FromContext(ctx).With("bridge", b.Name)
	logger.Debug("Generating bridge header.")

	r := newResolver(b)
	decls := out.New()
	writeDecls(decls, b, r)
	if r.diags.HasErrors() {
		return nil, fmt.Errorf("bridge %q: %w", b.Name, r.diags)
	}

	header := opts.header()
	builtins := out.New()
	for _, guard := range guardOrder {
		if err := header.Write(builtins, guard, r.builtins.Needed(guard)); err != nil {
			return nil, fmt.Errorf("bridge %q: %w", b.Name, err)
		}
	}

	includes := include.New()
	includes.Extend(b.Includes...)
	includes.Set(r.builtins.Capabilities()...)

	o := out.New()
	o.Writeln(Preamble)
	if b.FSInformation != nil {
		o.Writef("// Source: %s\n", filepath.ToSlash(b.FSInformation.FilePath))
	}
	o.Writeln("#pragma once")

	o.NextSection()
	_, _ = io.WriteString(o, includes.Render())

	if builtins.Len() > 0 {
		o.NextSection()
		o.Writeln("namespace rust {")
		o.Writeln("inline namespace bridge1 {")
		_, _ = o.Write(builtins.Bytes())
		o.Writeln("} // namespace bridge1")
		o.Writeln("} // namespace rust")
	}

	o.NextSection()
	_, _ = o.Write(decls.Bytes())

	guards := r.builtins.Guards()
	logger.Debug("Bridge header generated.", "bytes", o.Len(), "guards", len(guards))
	return &Output{
		Bridge:  b,
		Path:    b.Name + ".h",
		Content: o.Bytes(),
		Guards:  guards,
	}, nil
}

// GenerateAll generates every bridge, at most opts.Workers at a time.
// Outputs are returned in the order of bridges. Declaration diagnostics of
// all bridges are gathered into one error; any other failure, such as a
// missing support guard, cancels the remaining work.
func GenerateAll(ctx context.Context, bridges []*bridge.Bridge, opts Options) ([]*Output, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Generation started.", "bridges", len(bridges), "workers", opts.workers())

	outputs := make([]*Output, len(bridges))
	diagsByBridge := make([]hcl.Diagnostics, len(bridges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, b := range bridges {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			output, err := Generate(gctx, b, opts)
			var diags hcl.Diagnostics
			switch {
			case errors.As(err, &diags):
				diagsByBridge[i] = diags
				return nil
			case err != nil:
				return err
			}
			outputs[i] = output
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var diags hcl.Diagnostics
	for _, d := range diagsByBridge {
		diags = append(diags, d...)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("generation failed: %w", diags)
	}
	logger.Debug("Generation finished.", "outputs", len(outputs))
	return outputs, nil
}

// nsGroup holds the emitted items of one namespace, in declaration order.
type nsGroup struct {
	ns        *namepath.NamePath
	enums     []*bridge.Enum
	opaques   []*bridge.Item
	structs   []*bridge.Struct
	functions []*bridge.Function
}

func groupByNamespace(b *bridge.Bridge) []*nsGroup {
	var groups []*nsGroup
	index := make(map[string]*nsGroup)
	group := func(ns *namepath.NamePath) *nsGroup {
		key := ns.String()
		if g, ok := index[key]; ok {
			return g
		}
		g := &nsGroup{ns: ns}
		index[key] = g
		groups = append(groups, g)
		return g
	}
	for _, it := range b.OpaqueTypes {
		g := group(it.Namespace)
		g.opaques = append(g.opaques, it)
	}
	for _, e := range b.Enums {
		g := group(e.Namespace)
		g.enums = append(g.enums, e)
	}
	for _, s := range b.Structs {
		g := group(s.Namespace)
		g.structs = append(g.structs, s)
	}
	for _, f := range b.Functions {
		g := group(f.Namespace)
		g.functions = append(g.functions, f)
	}
	return groups
}

// writeDecls renders the user declarations of b. Rendering records the
// builtins the declarations need in r.
func writeDecls(o *out.OutFile, b *bridge.Bridge, r *resolver) {
	groups := groupByNamespace(b)

	for _, g := range groups {
		if len(g.structs)+len(g.opaques) == 0 {
			continue
		}
		o.NextSection()
		openNamespace(o, g.ns)
		for _, s := range g.structs {
			o.Writef("struct %s;\n", s.Name)
		}
		for _, it := range g.opaques {
			o.Writef("class %s;\n", it.Name)
		}
		closeNamespace(o, g.ns)
	}

	for _, g := range groups {
		o.NextSection()
		openNamespace(o, g.ns)
		first := true
		next := func() {
			if !first {
				o.NextSection()
			}
			first = false
		}
		for _, e := range g.enums {
			next()
			writeEnum(o, e, r)
		}
		for _, it := range g.opaques {
			next()
			writeOpaque(o, it, r)
		}
		for _, s := range g.structs {
			next()
			writeStruct(o, s, r)
		}
		if len(g.functions) > 0 {
			next()
			for _, f := range g.functions {
				writeFunction(o, f, r)
			}
		}
		closeNamespace(o, g.ns)
	}

	if len(r.relocatable) > 0 {
		o.NextSection()
		for _, it := range r.relocatable {
			o.Writeln("static_assert(")
			o.Writef("    ::rust::IsRelocatable<%s>::value,\n", it.Path().Cxx())
			o.Writef("    \"type %s should be trivially move constructible and trivially destructible to be used by value across the bridge\");\n", it.Path())
		}
	}
}

func openNamespace(o *out.OutFile, ns *namepath.NamePath) {
	for _, name := range ns.Names() {
		o.Writef("namespace %s {\n", name)
	}
}

func closeNamespace(o *out.OutFile, ns *namepath.NamePath) {
	names := ns.Names()
	for i := len(names) - 1; i >= 0; i-- {
		o.Writef("} // namespace %s\n", names[i])
	}
}

func writeEnum(o *out.OutFile, e *bridge.Enum, r *resolver) {
	repr := builtinTypes[e.Repr]
	r.builtins.Require(repr.caps...)
	o.Writef("enum class %s : %s {\n", e.Name, repr.cxx)
	for i, v := range e.Variants {
		o.Writef("  %s = %d,\n", v, i)
	}
	o.Writeln("};")
}

func writeOpaque(o *out.OutFile, it *bridge.Item, r *resolver) {
	r.builtins.Need(guardOpaque)
	r.builtins.Need(guardLayout)
	r.builtins.Require(include.Cstddef)
	o.Writef("class %s final : public ::rust::Opaque {\n", it.Name)
	o.Writeln("public:")
	o.Writef("  ~%s() = delete;\n", it.Name)
	o.Writeln("")
	o.Writeln("private:")
	o.Writeln("  friend ::rust::layout;")
	o.Writeln("  struct layout {")
	o.Writeln("    static ::std::size_t size() noexcept;")
	o.Writeln("    static ::std::size_t align() noexcept;")
	o.Writeln("  };")
	o.Writeln("};")
}

func writeStruct(o *out.OutFile, s *bridge.Struct, r *resolver) {
	o.Writef("struct %s final {\n", s.Name)
	for _, f := range s.Fields {
		o.Writef("  %s;\n", declare(r.cxx(f.Type, useField), f.Name))
	}
	o.Writeln("};")
}

func writeFunction(o *out.OutFile, f *bridge.Function, r *resolver) {
	ret := "void"
	if f.Returns != nil {
		ret = r.cxx(f.Returns, useReturn)
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = declare(r.cxx(p.Type, useParam), p.Name)
	}
	suffix := " noexcept"
	if f.Throws() {
		suffix = ""
	}
	o.Writef("%s %s(%s)%s;\n", ret, f.Name, strings.Join(params, ", "), suffix)
}

// declare joins a C++ type and a name, attaching the name to a trailing
// `&` or `*`.
func declare(typ, name string) string {
	if strings.HasSuffix(typ, "&") || strings.HasSuffix(typ, "*") {
		return typ + name
	}
	return typ + " " + name
}
