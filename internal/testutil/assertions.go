package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/bridgegen/internal/app"
)

// AssertGenerated checks that the run succeeded and wrote a header for
// every named bridge.
func AssertGenerated(t *testing.T, result *HarnessResult, bridges ...string) {
	t.Helper()

	require.NoError(t, result.Err, "run failed, logs:\n%s", result.Logs)
	for _, name := range bridges {
		_, err := os.Stat(filepath.Join(result.OutputDir, name+".h"))
		require.NoError(t, err, "expected header for bridge %q", name)
	}
}

// AssertDiagnostic checks that the run failed on declaration problems and
// that the rendered diagnostics mention every fragment.
func AssertDiagnostic(t *testing.T, result *HarnessResult, fragments ...string) {
	t.Helper()

	require.ErrorIs(t, result.Err, app.ErrDiagnostics)
	for _, f := range fragments {
		require.Contains(t, result.Logs, f)
	}
}

// AssertNothingWritten checks that no header reached the output directory.
func AssertNothingWritten(t *testing.T, result *HarnessResult) {
	t.Helper()

	entries, err := os.ReadDir(result.OutputDir)
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)
	require.Empty(t, entries, "no header should be written")
}
