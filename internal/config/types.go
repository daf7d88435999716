// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/lineutils/lineutils/internal/extract"
	"github.com/lineutils/lineutils/internal/offset"
	"github.com/lineutils/lineutils/internal/textutil"
)

var (
	// ErrInvalidHeadLines is the sentinel error wrapped by InvalidHeadLinesError.
	ErrInvalidHeadLines = errors.New("invalid head line count")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// InvalidHeadLinesError is returned when head.lines is negative.
	InvalidHeadLinesError struct {
		Value int
	}

	// InvalidConfigError collects the field-level errors of a Config.
	// It wraps ErrInvalidConfig and each field error.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
		// Head configures head's defaults.
		Head HeadConfig `json:"head" mapstructure:"head" toml:"head"`
		// Tail configures tail's defaults.
		Tail TailConfig `json:"tail" mapstructure:"tail" toml:"tail"`
		// Decode configures lenient decoding.
		Decode DecodeConfig `json:"decode" mapstructure:"decode" toml:"decode"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Color decides grep highlighting when --color is absent.
		Color textutil.ColorMode `json:"color" mapstructure:"color" toml:"color"`
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// HeadConfig configures head.
	HeadConfig struct {
		Lines int `json:"lines" mapstructure:"lines" toml:"lines"`
	}

	// TailConfig configures tail.
	TailConfig struct {
		// Lines is an offset in tail's -n syntax.
		Lines string `json:"lines" mapstructure:"lines" toml:"lines"`
	}

	// DecodeConfig configures lenient decoding.
	DecodeConfig struct {
		InvalidLines extract.InvalidLinePolicy `json:"invalid_lines" mapstructure:"invalid_lines" toml:"invalid_lines"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	s := textutil.DefaultSettings()
	return &Config{
		UI: UIConfig{
			Color:   s.Color,
			Verbose: false,
		},
		Head:   HeadConfig{Lines: s.HeadLines},
		Tail:   TailConfig{Lines: s.TailLines},
		Decode: DecodeConfig{InvalidLines: s.InvalidLines},
	}
}

// Settings converts the configuration into the defaults the utilities consult.
func (c *Config) Settings() textutil.Settings {
	return textutil.Settings{
		HeadLines:    c.Head.Lines,
		TailLines:    c.Tail.Lines,
		InvalidLines: c.Decode.InvalidLines,
		Color:        c.UI.Color,
	}
}

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	if _, err := textutil.ParseColorMode(string(c.Color)); err != nil {
		return false, []error{fmt.Errorf("ui.color: %w", err)}
	}
	return true, nil
}

// IsValid returns whether the HeadConfig has valid fields.
func (c HeadConfig) IsValid() (bool, []error) {
	if c.Lines < 0 {
		return false, []error{&InvalidHeadLinesError{Value: c.Lines}}
	}
	return true, nil
}

// IsValid returns whether the TailConfig has valid fields.
func (c TailConfig) IsValid() (bool, []error) {
	if _, err := offset.Parse(c.Lines); err != nil {
		return false, []error{fmt.Errorf("tail.lines: %w", err)}
	}
	return true, nil
}

// IsValid returns whether the DecodeConfig has valid fields.
func (c DecodeConfig) IsValid() (bool, []error) {
	if err := c.InvalidLines.Validate(); err != nil {
		return false, []error{fmt.Errorf("decode.invalid_lines: %w", err)}
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields, delegating to each section.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, section := range []interface{ IsValid() (bool, []error) }{c.UI, c.Head, c.Tail, c.Decode} {
		if valid, fieldErrs := section.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHeadLinesError.
func (e *InvalidHeadLinesError) Error() string {
	return fmt.Sprintf("head.lines: %d is negative", e.Value)
}

// Unwrap returns ErrInvalidHeadLines for errors.Is() compatibility.
func (e *InvalidHeadLinesError) Unwrap() error { return ErrInvalidHeadLines }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
