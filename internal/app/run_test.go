package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bridgegen/internal/gen"
	"github.com/vk/bridgegen/internal/support"
)

const blobstoreDecl = `
bridge "blobstore" {
  namespace = "org::blobstore"
  include   = ["demo/include/blobstore.h"]

  extern_type "BlobstoreClient" {}

  function "new_blobstore_client" {
    returns = "UniquePtr<BlobstoreClient>"
  }

  function "tag" {
    cfg = var.with_tags == "yes"
    param "client" { type = "&BlobstoreClient" }
    param "tag"    { type = "&str" }
  }
}

bridge "metrics" {
  namespace = "org::metrics"

  struct "Sample" {
    field "name"  { type = "String" }
    field "value" { type = "f64" }
  }
}
`

func writeDecl(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestRun_GeneratesHeaders(t *testing.T) {
	declDir := filepath.Join(t.TempDir(), "decls")
	outDir := filepath.Join(t.TempDir(), "include")
	writeDecl(t, declDir, "blobstore.hcl", blobstoreDecl)

	cfg := DefaultConfig()
	cfg.Paths = []string{declDir}
	cfg.OutputDir = outDir
	cfg.Defines = map[string]string{"with_tags": "yes"}
	testApp, out, logs := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Empty(t, out.String())

	blob, err := os.ReadFile(filepath.Join(outDir, "blobstore.h"))
	require.NoError(t, err)
	content := string(blob)
	assert.True(t, strings.HasPrefix(content, gen.Preamble+"\n"))
	assert.Contains(t, content, `#include "demo/include/blobstore.h"`)
	assert.Contains(t, content, "void tag(const ::org::blobstore::BlobstoreClient &client, ::rust::Str tag) noexcept;")

	metrics, err := os.ReadFile(filepath.Join(outDir, "metrics.h"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "  ::rust::String name;\n")

	assert.Contains(t, logs.String(), "Header written.")
}

func TestRun_CfgDisablesItems(t *testing.T) {
	declDir := t.TempDir()
	outDir := t.TempDir()
	writeDecl(t, declDir, "blobstore.hcl", blobstoreDecl)

	cfg := DefaultConfig()
	cfg.Paths = []string{declDir}
	cfg.OutputDir = outDir
	cfg.Defines = map[string]string{"with_tags": "no"}
	testApp, _, _ := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background()))
	blob, err := os.ReadFile(filepath.Join(outDir, "blobstore.h"))
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "tag(")
	assert.NotContains(t, string(blob), "BRIDGE1_RUST_STR\n")
}

func TestRun_ReportsDiagnostics(t *testing.T) {
	declDir := t.TempDir()
	writeDecl(t, declDir, "bad.hcl", `
bridge "bad" {
  namespace = "org::"
  struct "S" {
    field "a" { type = "Nope" }
  }
}
`)

	cfg := DefaultConfig()
	cfg.Paths = []string{declDir}
	cfg.OutputDir = t.TempDir()
	testApp, _, logs := SetupAppTest(t, cfg)

	err := testApp.Run(context.Background())
	require.ErrorIs(t, err, ErrDiagnostics)
	assert.Contains(t, err.Error(), "1 problem(s) reported")

	rendered := logs.String()
	assert.Contains(t, rendered, "Malformed path: expected path segment")
	assert.Contains(t, rendered, `namespace = "org::"`, "diagnostics include the source snippet")
}

func TestRun_ReportsGenerationDiagnostics(t *testing.T) {
	declDir := t.TempDir()
	writeDecl(t, declDir, "bad.hcl", `
bridge "bad" {
  struct "S" {
    field "a" { type = "Nope" }
  }
}
`)

	cfg := DefaultConfig()
	cfg.Paths = []string{declDir}
	cfg.OutputDir = t.TempDir()
	testApp, _, logs := SetupAppTest(t, cfg)

	err := testApp.Run(context.Background())
	require.ErrorIs(t, err, ErrDiagnostics)
	assert.Contains(t, logs.String(), "Unknown type")
}

func TestRun_MissingGuard(t *testing.T) {
	declDir := t.TempDir()
	writeDecl(t, declDir, "ok.hcl", `bridge "ok" {}`)

	cfg := DefaultConfig()
	cfg.Paths = []string{declDir}
	cfg.OutputDir = t.TempDir()
	testApp, _, _ := SetupAppTest(t, cfg)
	testApp.WithHeader(support.NewHeader("#pragma once\n"))

	err := testApp.Run(context.Background())
	var missing *support.MissingGuardError
	require.ErrorAs(t, err, &missing)
	assert.NotErrorIs(t, err, ErrDiagnostics)
}

func TestRun_NoDeclarations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths = []string{t.TempDir()}
	cfg.OutputDir = t.TempDir()
	testApp, _, logs := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, logs.String(), "nothing to generate")
}

func TestRun_PrintHeader(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrintHeader = true
	testApp, out, _ := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, support.Default().Text(), out.String())
}

func TestRun_ListGuards(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListGuards = true
	testApp, out, _ := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, support.Default().Guards(), lines)
}

func TestNewLogger_Format(t *testing.T) {
	var buf SafeBuffer
	logger := newLogger(&Config{LogFormat: "json", LogLevel: "warn"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
