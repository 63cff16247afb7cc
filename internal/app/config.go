package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are declaration files or directories searched for .hcl files.
	Paths     []string          `toml:"paths" validate:"required_without_all=PrintHeader ListGuards,dive,required"`
	OutputDir string            `toml:"output_dir" validate:"required"`
	Defines   map[string]string `toml:"defines"`
	Workers   int               `toml:"workers" validate:"gte=1,lte=256"`

	LogFormat string `toml:"log_format" validate:"oneof=text json"`
	LogLevel  string `toml:"log_level" validate:"oneof=debug info warn error"`

	// PrintHeader and ListGuards select an informational mode instead of
	// generation. They are CLI only.
	PrintHeader bool `toml:"-"`
	ListGuards  bool `toml:"-"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		Workers:   4,
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// LoadTOML overlays the settings of a TOML file onto c. Unknown keys are an
// error so that typos do not pass silently.
func (c *Config) LoadTOML(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.StructNamespace()
	switch fe.Tag() {
	case "required_without_all":
		return "at least one declaration path is required"
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of %s", field, fe.Value(), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("invalid %s %v: must be between 1 and 256", field, fe.Value())
	}
	return fmt.Sprintf("invalid %s: failed %q constraint", field, fe.Tag())
}
