// Package fault defines the error kinds reported by the converter registry
// and the mapping engines.
//
// Every error kind satisfies errors.Is(err, ErrMapper), so callers can test for
// "any metamap failure" without enumerating the concrete types.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMapper is the base of every metamap error kind.
var ErrMapper = errors.New("metamap")

// ConverterInitializationError reports that the registry could not produce a
// usable converter for a type.
type ConverterInitializationError struct {
	Type    string // type identity the converter was requested for
	Impl    string // implementation name, when discovery got that far
	Message string
	Err     error
}

func (e *ConverterInitializationError) Error() string {
	var b strings.Builder
	b.WriteString("converter initialization failed for ")
	b.WriteString(quoteOr(e.Type, "<nil>"))
	if e.Impl != "" {
		fmt.Fprintf(&b, " (impl %q)", e.Impl)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConverterInitializationError) Unwrap() error { return e.Err }

func (e *ConverterInitializationError) Is(target error) bool { return target == ErrMapper }

// MappingError reports a failure while mapping an object to metadata or
// unmapping metadata into an object.
type MappingError struct {
	Field string   // struct field name
	Type  string   // declaring type of the field
	Key   string   // metadata key, if relevant
	Keys  []string // available metadata keys, set for missing mandatory data
	// Suggestion is the available key closest to Key, if any is close enough.
	Suggestion string
	Message    string
	Err        error
}

func (e *MappingError) Error() string {
	var b strings.Builder
	b.WriteString("mapping error")
	if e.Field != "" || e.Type != "" {
		fmt.Fprintf(&b, " at %s.%s", quoteOr(e.Type, "?"), quoteOr(e.Field, "?"))
	}
	if e.Key != "" {
		fmt.Fprintf(&b, " (key %q)", e.Key)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Keys != nil {
		fmt.Fprintf(&b, "; available keys: [%s]", strings.Join(e.Keys, ", "))
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "; did you mean %q?", e.Suggestion)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MappingError) Unwrap() error { return e.Err }

func (e *MappingError) Is(target error) bool { return target == ErrMapper }

// UnknownTypeError reports a lookup of a name that was never registered in a
// catalogue (nested implementation types, handlers, converter implementations).
type UnknownTypeError struct {
	Catalogue string
	Name      string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s identifier %q", e.Catalogue, e.Name)
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrMapper }

func quoteOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
