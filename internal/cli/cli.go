package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/bridgegen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// defineFlags collects repeated -D key=value flags.
type defineFlags map[string]string

func (d defineFlags) String() string {
	pairs := make([]string, 0, len(d))
	for k, v := range d {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (d defineFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return errors.New("define must have the form key=value")
	}
	d[key] = value
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Precedence is flags, then the -config file, then defaults.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bridgegen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
bridgegen - generates C++ bridge headers from HCL bridge declarations.

Usage:
  bridgegen [options] PATH...

Arguments:
  PATH
    A declaration file, or a directory searched recursively for .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	defines := defineFlags{}
	outFlag := flagSet.String("o", "", "Output directory for generated headers. (default \".\")")
	configFlag := flagSet.String("config", "", "Path to a TOML config file.")
	workersFlag := flagSet.Int("workers", 0, "Number of bridges generated concurrently. (default 4)")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. (default \"text\")")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. (default \"info\")")
	headerFlag := flagSet.Bool("header", false, "Print the canonical support header and exit.")
	listGuardsFlag := flagSet.Bool("list-guards", false, "Print the guard names of the canonical support header and exit.")
	flagSet.Var(defines, "D", "Define a cfg variable as key=value. May be repeated.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := app.DefaultConfig()
	if *configFlag != "" {
		if err := cfg.LoadTOML(*configFlag); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		slog.Debug("Config file loaded.", "path", *configFlag)
	}

	if flagSet.NArg() > 0 {
		cfg.Paths = flagSet.Args()
	}
	if *outFlag != "" {
		cfg.OutputDir = *outFlag
	}
	if *workersFlag != 0 {
		cfg.Workers = *workersFlag
	}
	if *logFormatFlag != "" {
		cfg.LogFormat = strings.ToLower(*logFormatFlag)
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = strings.ToLower(*logLevelFlag)
	}
	if len(defines) > 0 {
		if cfg.Defines == nil {
			cfg.Defines = make(map[string]string, len(defines))
		}
		for k, v := range defines {
			cfg.Defines[k] = v
		}
	}
	cfg.PrintHeader = *headerFlag
	cfg.ListGuards = *listGuardsFlag

	if len(cfg.Paths) == 0 && !cfg.PrintHeader && !cfg.ListGuards {
		slog.Debug("No declaration path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
