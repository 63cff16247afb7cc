package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/bridgegen/internal/testutil"
)

const platformDecl = `
bridge "platform" {
  namespace = "org::platform"

  function "common" {}

  function "windows_only" {
    cfg = var.os == "windows"
  }

  struct "Handle" {
    cfg = var.os != "windows"
    field "fd" { type = "i32" }
  }
}`

// Test for: cfg conditions select items from the defines
func TestHclFeatures_CfgCondition(t *testing.T) {
	tests := []struct {
		os          string
		wantWindows bool
	}{
		{os: "windows", wantWindows: true},
		{os: "linux", wantWindows: false},
	}

	for _, tc := range tests {
		t.Run(tc.os, func(t *testing.T) {
			// --- Act ---
			result := testutil.RunIntegrationTest(t,
				map[string]string{"platform.hcl": platformDecl},
				testutil.WithDefines(map[string]string{"os": tc.os}),
			)

			// --- Assert ---
			testutil.AssertGenerated(t, result, "platform")
			header := result.ReadHeader(t, "platform")
			assert.Contains(t, header, "void common() noexcept;")
			if tc.wantWindows {
				assert.Contains(t, header, "void windows_only() noexcept;")
				assert.NotContains(t, header, "struct Handle")
			} else {
				assert.NotContains(t, header, "windows_only")
				assert.Contains(t, header, "struct Handle final {\n  ::std::int32_t fd;\n};")
			}
		})
	}
}

// Test for: referencing an undefined variable is an error
func TestHclFeatures_CfgUndefinedVariable(t *testing.T) {
	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"platform.hcl": platformDecl})

	// --- Assert ---
	testutil.AssertDiagnostic(t, result, "platform.hcl line 8")
}
