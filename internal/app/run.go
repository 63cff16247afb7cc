package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/bridgegen/internal/bridge"
	"github.com/vk/bridgegen/internal/ctxlog"
	"github.com/vk/bridgegen/internal/fsutil"
	"github.com/vk/bridgegen/internal/gen"
)

// ErrDiagnostics marks a run that failed on declaration problems. The
// problems have already been written to the diagnostics writer.
var ErrDiagnostics = errors.New("bridge declarations have errors")

// diagWidth is the wrap width of rendered diagnostics.
const diagWidth = 100

// Run executes the main application logic based on the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	switch {
	case a.config.PrintHeader:
		_, err := io.WriteString(a.outW, a.header.Text())
		return err
	case a.config.ListGuards:
		for _, g := range a.header.Guards() {
			if _, err := fmt.Fprintln(a.outW, g); err != nil {
				return err
			}
		}
		return nil
	}

	loader := bridge.NewLoader(a.config.Defines)
	bridges, err := loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return a.report(err, loader.Files())
	}
	logger.Info("Bridge declarations loaded.", "bridges", len(bridges))
	if len(bridges) == 0 {
		logger.Warn("No bridge declarations found, nothing to generate.")
		return nil
	}

	outputs, err := gen.GenerateAll(ctx, bridges, gen.Options{
		Header:  a.header,
		Workers: a.config.Workers,
	})
	if err != nil {
		return a.report(err, loader.Files())
	}

	for _, o := range outputs {
		path := filepath.Join(a.config.OutputDir, o.Path)
		if err := fsutil.WriteFileAtomic(path, o.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("Header written.", "bridge", o.Bridge.Name, "path", path, "guards", len(o.Guards))
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// report renders declaration diagnostics with source snippets. Other errors
// are returned unchanged.
func (a *App) report(err error, files map[string]*hcl.File) error {
	var diags hcl.Diagnostics
	if !errors.As(err, &diags) {
		return err
	}
	wr := hcl.NewDiagnosticTextWriter(a.errW, files, diagWidth, false)
	if werr := wr.WriteDiagnostics(diags); werr != nil {
		return errors.Join(err, werr)
	}
	return fmt.Errorf("%w: %d problem(s) reported", ErrDiagnostics, len(diags))
}
