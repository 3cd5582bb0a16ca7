// Package convert defines the converter contract used by the mapping engines
// and provides the built-in converters.
//
// A Converter turns a single value into its metadata string and back. It does
// not need to be nil-safe: the engines never pass nil values in either
// direction. Converters that need per-field configuration implement Formatter
// or BoolLiterals in addition to Converter.
package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrInvalidLiteral     = errors.New("value matches none of the configured literals")
	ErrUnsupportedValue   = errors.New("value type is not supported by this converter")
	ErrNotConfigurable    = errors.New("converter does not accept this configuration")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrEmptyLiteralList   = errors.New("literal list must not be empty")
	ErrIncompleteLiterals = errors.New("both true and false literals are required")
)

// Converter converts values of one type to and from strings.
type Converter interface {
	// Type is the type FromString produces.
	Type() reflect.Type
	FromString(s string) (any, error)
	ToString(v any) (string, error)
}

// Formatter is a temporal converter whose textual layout is configurable.
type Formatter interface {
	Converter
	SetFormat(layout string) error
}

// BoolLiterals is a boolean converter with configurable literal pairs. The
// first literal of each list is the canonical output form; matching is case
// insensitive.
type BoolLiterals interface {
	Converter
	SetTrueFalseLiterals(trueLiterals, falseLiterals []string) error
}

// Config is the per-field converter configuration.
type Config struct {
	Format        string
	TrueLiterals  []string
	FalseLiterals []string
}

// IsZero reports whether no configuration is set.
func (c Config) IsZero() bool {
	return c.Format == "" && len(c.TrueLiterals) == 0 && len(c.FalseLiterals) == 0
}

// Key returns a string identifying the configuration, usable as a cache key.
func (c Config) Key() string {
	return c.Format + "\x00" + strings.Join(c.TrueLiterals, "\x1f") + "\x00" + strings.Join(c.FalseLiterals, "\x1f")
}

// Configure applies cfg to c. A zero Config is always accepted.
func Configure(c Converter, cfg Config) error {
	if cfg.Format != "" {
		f, ok := c.(Formatter)
		if !ok {
			return fmt.Errorf("%w: format %q on %s", ErrNotConfigurable, cfg.Format, c.Type())
		}
		if err := f.SetFormat(cfg.Format); err != nil {
			return err
		}
	}

	if len(cfg.TrueLiterals) > 0 || len(cfg.FalseLiterals) > 0 {
		b, ok := c.(BoolLiterals)
		if !ok {
			return fmt.Errorf("%w: boolean literals on %s", ErrNotConfigurable, c.Type())
		}
		if len(cfg.TrueLiterals) == 0 || len(cfg.FalseLiterals) == 0 {
			return ErrIncompleteLiterals
		}
		if err := b.SetTrueFalseLiterals(cfg.TrueLiterals, cfg.FalseLiterals); err != nil {
			return err
		}
	}

	return nil
}

// indirect dereferences a non-nil pointer so converters accept both T and *T.
func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Elem()
	}
	return rv
}

func unsupported(c Converter, v any) error {
	return fmt.Errorf("%w: %T for %s", ErrUnsupportedValue, v, c.Type())
}
