package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/bridgegen/internal/app"
	"github.com/vk/bridgegen/internal/support"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Out is the informational output (-header, -list-guards).
	Out string
	// Logs holds log lines and rendered diagnostics.
	Logs      string
	Err       error
	OutputDir string
}

// Option adjusts the configuration or app of a harness run.
type Option func(*harness)

type harness struct {
	cfg    *app.Config
	header *support.Header
}

// WithDefines sets the cfg variables of the run.
func WithDefines(defines map[string]string) Option {
	return func(h *harness) { h.cfg.Defines = defines }
}

// WithHeader replaces the canonical support header.
func WithHeader(header *support.Header) Option {
	return func(h *harness) { h.header = header }
}

// WithConfig lets the test modify the configuration directly.
func WithConfig(fn func(*app.Config)) Option {
	return func(h *harness) { fn(h.cfg) }
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts...)
}

// RunIntegrationTestWithContext writes files below a temporary declarations
// directory, runs the app over it and collects what it produced.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	declDir := filepath.Join(root, "decls")
	outDir := filepath.Join(root, "include")
	require.NoError(t, os.MkdirAll(declDir, 0o755))

	// Names may contain subdirectories, e.g. "nested/extra.hcl".
	for name, content := range files {
		path := filepath.Join(declDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := app.DefaultConfig()
	cfg.Paths = []string{declDir}
	cfg.OutputDir = outDir
	h := &harness{cfg: cfg}
	for _, opt := range opts {
		opt(h)
	}
	require.NoError(t, cfg.Validate())

	testApp, out, logs := app.SetupAppTest(t, cfg)
	if h.header != nil {
		testApp.WithHeader(h.header)
	}
	runErr := testApp.Run(ctx)

	return &HarnessResult{
		Out:       out.String(),
		Logs:      logs.String(),
		Err:       runErr,
		OutputDir: outDir,
	}
}

// ReadHeader returns the generated header for the named bridge.
func (r *HarnessResult) ReadHeader(t *testing.T, bridge string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.OutputDir, bridge+".h"))
	require.NoError(t, err, "header for bridge %q was not written", bridge)
	return string(data)
}
