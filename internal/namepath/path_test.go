package namepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamePath_String(t *testing.T) {
	testCases := []struct {
		name        string
		path        *NamePath
		expectedStr string
		expectedCxx string
	}{
		{
			name:        "single segment",
			path:        New("ffi"),
			expectedStr: "ffi",
			expectedCxx: "::ffi",
		},
		{
			name:        "nested",
			path:        New("org", "blobstore", "Client"),
			expectedStr: "org::blobstore::Client",
			expectedCxx: "::org::blobstore::Client",
		},
		{
			name:        "nil path",
			path:        nil,
			expectedStr: "",
			expectedCxx: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.path.String())
			assert.Equal(t, tc.expectedCxx, tc.path.Cxx())
		})
	}
}

func TestNamePath_RoundTrip(t *testing.T) {
	for _, src := range []string{"a", "a::b::c", "rust::bridge1::Str"} {
		t.Run(src, func(t *testing.T) {
			path, err := Parse(src)
			assert.NoError(t, err)
			assert.Equal(t, src, path.String())

			again, err := Parse(`"` + path.String() + `"`)
			assert.NoError(t, err)
			assert.True(t, path.Equal(again))
		})
	}
}

func TestNamePath_Equal(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("a", "b")))
	assert.False(t, New("a", "b").Equal(New("a", "c")))
	assert.False(t, New("a", "b").Equal(New("a")))
	assert.False(t, New("a").Equal(nil))
	assert.False(t, (*NamePath)(nil).Equal(New("a")))
	assert.True(t, (*NamePath)(nil).Equal(nil))
}

func TestNamePath_ParentAndAppend(t *testing.T) {
	p := New("org", "blobstore")

	child := p.Append("Client")
	assert.Equal(t, "org::blobstore::Client", child.String())
	assert.Equal(t, "org::blobstore", p.String(), "Append must not modify the receiver")
	assert.Equal(t, "Client", child.Last())
	assert.True(t, child.Parent().Equal(p))

	assert.Nil(t, New("top").Parent())
	assert.Equal(t, "x", (*NamePath)(nil).Append("x").String())
}

func TestNew_PanicsWithoutSegments(t *testing.T) {
	assert.Panics(t, func() { New() })
}
