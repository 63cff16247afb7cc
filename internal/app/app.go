package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/bridgegen/internal/ctxlog"
	"github.com/vk/bridgegen/internal/support"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	header *support.Header
}

// NewApp is the constructor for the main application. Informational output
// (-header, -list-guards) goes to outW; logs and diagnostics go to errW.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg, errW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
		header: support.Default(),
	}
}

// WithHeader replaces the canonical support header. It is used by tests.
func (a *App) WithHeader(h *support.Header) *App {
	a.header = h
	return a
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
