package support

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedGuards = []string{
	"BRIDGE1_RUST_BITCOPY_T",
	"BRIDGE1_IMPL",
	"BRIDGE1_RUST_STRING",
	"BRIDGE1_RUST_ERROR",
	"BRIDGE1_PANIC",
	"BRIDGE1_RUST_STR",
	"BRIDGE1_RUST_SLICE",
	"BRIDGE1_RUST_BOX",
	"BRIDGE1_RUST_VEC",
	"BRIDGE1_RUST_FN",
	"BRIDGE1_RUST_ISIZE",
	"BRIDGE1_RUST_OPAQUE",
	"BRIDGE1_IS_COMPLETE",
	"BRIDGE1_LAYOUT",
	"BRIDGE1_RELOCATABLE",
	"BRIDGE1_MANUALLY_DROP",
	"BRIDGE1_MAYBE_UNINIT",
	"BRIDGE1_TRY",
}

func TestDefault_Guards(t *testing.T) {
	assert.Equal(t, expectedGuards, Default().Guards())
}

func TestDefault_EveryGuardExtractsBalanced(t *testing.T) {
	h := Default()
	for _, guard := range h.Guards() {
		t.Run(guard, func(t *testing.T) {
			got, err := Extract(h.Text(), guard, true)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(got, "#ifndef "+guard+"\n#define "+guard+"\n"))
			assert.True(t, strings.HasSuffix(got, "#endif // "+guard+"\n"))
			assert.Equal(t, 1, strings.Count(got, "#define "+guard+"\n"))
			assert.Equal(t, 1, strings.Count(got, "#endif // "+guard+"\n"))
			assert.Equal(t, strings.Count(got, "#if"), strings.Count(got, "#endif"),
				"nested conditionals must stay balanced")
			for _, line := range strings.Split(got, "\n") {
				assert.False(t, strings.HasPrefix(strings.TrimSpace(line), "//"), "comment line leaked: %q", line)
			}
		})
	}
}

func TestDefault_StringHasForwardDeclarationAndDefinition(t *testing.T) {
	got, err := Extract(Default().Text(), "BRIDGE1_RUST_STRING", true)
	require.NoError(t, err)

	forward := strings.Index(got, "class String;")
	definition := strings.Index(got, "class String final {")
	require.GreaterOrEqual(t, forward, 0)
	require.Greater(t, definition, forward)
	strForward := strings.Index(got, "class Str;")
	require.GreaterOrEqual(t, strForward, 0, "String(Str) needs Str declared")
	require.Less(t, strForward, strings.Index(got, "String(Str);"))
	assert.NotContains(t, got, "class Str final", "BRIDGE1_RUST_STR must not leak into BRIDGE1_RUST_STRING")
}

func TestDefault_StrDoesNotMatchString(t *testing.T) {
	got, err := Extract(Default().Text(), "BRIDGE1_RUST_STR", true)
	require.NoError(t, err)

	assert.Contains(t, got, "class Str final {")
	assert.NotContains(t, got, "class String final {")
}

func TestMissingGuardError_Suggestion(t *testing.T) {
	err := Default().Write(nil, "BRIDGE1_RUST_STRNG", true)
	var missing *MissingGuardError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "BRIDGE1_RUST_STRING", missing.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "BRIDGE1_RUST_STRING"`)

	err = Default().Write(nil, "UNRELATED", false)
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, missing.Suggestion)
}

func TestDefault_ConcurrentExtraction(t *testing.T) {
	h := Default()
	want := make(map[string]string)
	for _, guard := range h.Guards() {
		got, err := Extract(h.Text(), guard, true)
		require.NoError(t, err)
		want[guard] = got
	}

	var wg sync.WaitGroup
	results := make([]map[string]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := make(map[string]string)
			for _, guard := range h.Guards() {
				got, err := Extract(h.Text(), guard, true)
				if err == nil {
					res[guard] = got
				}
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, want, res)
	}
}
