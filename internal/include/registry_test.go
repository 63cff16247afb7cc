package include

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncludes_RenderEmpty(t *testing.T) {
	assert.Equal(t, "", New().Render())
}

func TestIncludes_CustomKeepsOrderAndDuplicates(t *testing.T) {
	in := New()
	blob := Include{Path: "demo/include/blobstore.h", Kind: Quoted}
	in.Insert(blob)
	in.Insert(Include{Path: "cstdio", Kind: Bracketed})
	in.Insert(blob)

	expected := "#include \"demo/include/blobstore.h\"\n" +
		"#include <cstdio>\n" +
		"#include \"demo/include/blobstore.h\"\n"
	assert.Equal(t, expected, in.Render())
}

func TestIncludes_ExtendPreservesOrder(t *testing.T) {
	in := New()
	in.Insert(Include{Path: "first.h"})
	in.Extend(Include{Path: "second.h"}, Include{Path: "third.h"})

	custom := in.Custom()
	require.Len(t, custom, 3)
	assert.Equal(t, []string{"first.h", "second.h", "third.h"},
		[]string{custom[0].Path, custom[1].Path, custom[2].Path})
}

func TestIncludes_QuotedPathIsEscaped(t *testing.T) {
	in := New()
	in.Insert(Include{Path: `dir\"odd".h`, Kind: Quoted})
	assert.Equal(t, "#include \"dir\\\\\\\"odd\\\".h\"\n", in.Render())
}

func TestIncludes_QuotedPathUsesCEscapes(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "tab", path: "a\tb.h", expected: `#include "a\011b.h"`},
		{name: "control before digit", path: "a\x011.h", expected: `#include "a\0011.h"`},
		{name: "delete", path: "a\x7f.h", expected: `#include "a\177.h"`},
		{name: "utf-8 passes through", path: "données/é.h", expected: `#include "données/é.h"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Include{Path: tc.path, Kind: Quoted}.Directive())
		})
	}
}

func TestIncludes_BracketedPathIsVerbatim(t *testing.T) {
	in := New()
	in.Insert(Include{Path: `sys\odd.h`, Kind: Bracketed})
	assert.Equal(t, "#include <sys\\odd.h>\n", in.Render())
}

func TestIncludes_CapabilitySetTwiceRendersOnce(t *testing.T) {
	in := New()
	in.Set(Vector)
	in.Set(Vector)

	assert.True(t, in.Has(Vector))
	assert.Equal(t, "#include <vector>\n", in.Render())
}

func TestIncludes_CapabilitiesRenderInFixedOrder(t *testing.T) {
	in := New()
	in.Set(Vector, Cstdint, Basetsd, Array, TypeTraits)
	in.Insert(Include{Path: "user.h"})

	expected := "#include \"user.h\"\n" +
		"#include <array>\n" +
		"#include <cstdint>\n" +
		"#include <type_traits>\n" +
		"#include <vector>\n" +
		"#if defined(_WIN32)\n" +
		"#include <basetsd.h>\n" +
		"#endif\n"
	assert.Equal(t, expected, in.Render())
}

func TestIncludes_RenderIsPure(t *testing.T) {
	in := New()
	in.Insert(Include{Path: "a.h"})
	in.Set(Memory, Utility)

	first := in.Render()
	assert.Equal(t, first, in.Render())
	assert.Equal(t, first, in.String())
}

func TestIncludes_AllCapabilities(t *testing.T) {
	in := New()
	in.Set(Capabilities()...)

	expected := "#include <array>\n" +
		"#include <cstddef>\n" +
		"#include <cstdint>\n" +
		"#include <cstring>\n" +
		"#include <exception>\n" +
		"#include <memory>\n" +
		"#include <new>\n" +
		"#include <string>\n" +
		"#include <type_traits>\n" +
		"#include <utility>\n" +
		"#include <vector>\n" +
		"#if defined(_WIN32)\n" +
		"#include <basetsd.h>\n" +
		"#endif\n"
	assert.Equal(t, expected, in.Render())
}

func TestIncludes_SetInvalidCapabilityPanics(t *testing.T) {
	assert.Panics(t, func() { New().Set(Capability(99)) })
	assert.False(t, New().Has(Capability(-1)))
}

func TestParseInclude(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  Include
		expectErr bool
	}{
		{name: "quoted bare", input: "demo/blob.h", expected: Include{Path: "demo/blob.h", Kind: Quoted}},
		{name: "quoted with quotes", input: `"demo/blob.h"`, expected: Include{Path: "demo/blob.h", Kind: Quoted}},
		{name: "bracketed", input: "<cstdio>", expected: Include{Path: "cstdio", Kind: Bracketed}},
		{name: "error - empty", input: "", expectErr: true},
		{name: "error - empty quotes", input: `""`, expectErr: true},
		{name: "error - empty brackets", input: "<>", expectErr: true},
		{name: "error - unclosed bracket", input: "<cstdio", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inc, err := ParseInclude(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, inc)
		})
	}
}

func TestParseCapability(t *testing.T) {
	for _, c := range Capabilities() {
		parsed, err := ParseCapability(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCapability("iostream")
	assert.Error(t, err)
}
